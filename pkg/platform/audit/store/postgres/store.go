package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/google/uuid"

	audit "github.com/pewpola/dao-condominium/pkg/platform/audit"
)

//go:embed schema.sql
var schemaSQL string

// Store implements audit.Store on the audit_events table.
// Appends are idempotent on event ID so a retried event is stored once.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the audit_events table when it is missing.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply audit schema: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID, err := uuid.Parse(event.ID)
	if err != nil {
		eventID = uuid.New()
	}
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}

	query := `
		INSERT INTO audit_events (
			id, category, timestamp, action, actor_id, subject, residence, decision, request_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		eventID,
		string(category),
		event.Timestamp,
		event.Action,
		event.ActorID,
		event.Subject,
		event.Residence,
		event.Decision,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, category, timestamp, action, actor_id, subject, residence, decision, request_id
	FROM audit_events
`

// ListAll returns all audit events, oldest first.
func (s *Store) ListAll(ctx context.Context) ([]audit.Event, error) {
	return s.query(ctx, selectColumns+` ORDER BY timestamp, id`)
}

func (s *Store) ListByActor(ctx context.Context, actorID string) ([]audit.Event, error) {
	return s.query(ctx, selectColumns+` WHERE actor_id = $1 ORDER BY timestamp, id`, actorID)
}

// ListRecent returns the N most recent events, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	return s.query(ctx, selectColumns+` ORDER BY timestamp DESC, id LIMIT $1`, limit)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			eventID  uuid.UUID
			category string
			event    audit.Event
		)
		if err := rows.Scan(
			&eventID,
			&category,
			&event.Timestamp,
			&event.Action,
			&event.ActorID,
			&event.Subject,
			&event.Residence,
			&event.Decision,
			&event.RequestID,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.ID = eventID.String()
		event.Category = audit.EventCategory(category)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
