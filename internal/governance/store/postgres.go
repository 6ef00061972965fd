package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/pewpola/dao-condominium/internal/governance/models"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
	txcontext "github.com/pewpola/dao-condominium/pkg/platform/tx"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// PostgresResidents persists the identity to residence mapping.
type PostgresResidents struct {
	db *sql.DB
}

func NewPostgresResidents(db *sql.DB) *PostgresResidents {
	return &PostgresResidents{db: db}
}

func (s *PostgresResidents) FindResidence(ctx context.Context, identity id.Identity) (id.ResidenceID, error) {
	var residence int
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT residence_id FROM residents WHERE identity = $1`, identity.String()).Scan(&residence)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("resident not found: %w", sentinel.ErrNotFound)
		}
		return 0, fmt.Errorf("find residence: %w", err)
	}
	return id.ResidenceID(residence), nil
}

func (s *PostgresResidents) Save(ctx context.Context, identity id.Identity, residence id.ResidenceID) error {
	query := `
		INSERT INTO residents (identity, residence_id)
		VALUES ($1, $2)
		ON CONFLICT (identity) DO UPDATE SET
			residence_id = EXCLUDED.residence_id
	`
	if _, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query, identity.String(), int(residence)); err != nil {
		return fmt.Errorf("save resident: %w", err)
	}
	return nil
}

func (s *PostgresResidents) Delete(ctx context.Context, identity id.Identity) error {
	res, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx,
		`DELETE FROM residents WHERE identity = $1`, identity.String())
	if err != nil {
		return fmt.Errorf("delete resident: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("resident not found: %w", sentinel.ErrNotFound)
	}
	return nil
}

// PostgresRoles persists the manager singleton and the council.
type PostgresRoles struct {
	db *sql.DB
}

func NewPostgresRoles(db *sql.DB) *PostgresRoles {
	return &PostgresRoles{db: db}
}

// EnsureManager seeds the manager row on first boot. An existing manager is kept.
func (s *PostgresRoles) EnsureManager(ctx context.Context, identity id.Identity) error {
	query := `
		INSERT INTO governance_manager (id, identity)
		VALUES (1, $1)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query, identity.String()); err != nil {
		return fmt.Errorf("seed manager: %w", err)
	}
	return nil
}

func (s *PostgresRoles) Manager(ctx context.Context) (id.Identity, error) {
	var identity string
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT identity FROM governance_manager WHERE id = 1`).Scan(&identity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("manager not set: %w", sentinel.ErrNotFound)
		}
		return "", fmt.Errorf("find manager: %w", err)
	}
	return id.Identity(identity), nil
}

func (s *PostgresRoles) SetManager(ctx context.Context, identity id.Identity) error {
	query := `
		INSERT INTO governance_manager (id, identity, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET
			identity = EXCLUDED.identity,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query, identity.String()); err != nil {
		return fmt.Errorf("set manager: %w", err)
	}
	return nil
}

func (s *PostgresRoles) IsCounselor(ctx context.Context, identity id.Identity) (bool, error) {
	var exists bool
	err := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM counselors WHERE identity = $1)`, identity.String()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check counselor: %w", err)
	}
	return exists, nil
}

func (s *PostgresRoles) SetCounselor(ctx context.Context, identity id.Identity, enabled bool) error {
	exec := txcontext.ExecutorFrom(ctx, s.db)
	var err error
	if enabled {
		_, err = exec.ExecContext(ctx,
			`INSERT INTO counselors (identity) VALUES ($1) ON CONFLICT (identity) DO NOTHING`, identity.String())
	} else {
		_, err = exec.ExecContext(ctx, `DELETE FROM counselors WHERE identity = $1`, identity.String())
	}
	if err != nil {
		return fmt.Errorf("set counselor: %w", err)
	}
	return nil
}

// PostgresTopics persists topics and their per-residence ballots.
type PostgresTopics struct {
	db *sql.DB
}

func NewPostgresTopics(db *sql.DB) *PostgresTopics {
	return &PostgresTopics{db: db}
}

const topicColumns = `
	t.name, t.description, t.status, t.created_by, t.created_at, t.started_at, t.ended_at,
	t.yes_count, t.no_count, t.abstention_count,
	ARRAY(SELECT v.residence_id FROM topic_voters v WHERE v.topic_name = t.name ORDER BY v.residence_id)
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTopic(row rowScanner) (*models.Topic, error) {
	var (
		name, description, createdBy string
		status                       int
		createdAt                    time.Time
		startedAt, endedAt           sql.NullTime
		yes, no, abstention          int
		voters                       pq.Int64Array
	)
	if err := row.Scan(&name, &description, &status, &createdBy, &createdAt, &startedAt, &endedAt,
		&yes, &no, &abstention, &voters); err != nil {
		return nil, err
	}
	topic := &models.Topic{
		Name:        id.TopicName(name),
		Description: description,
		Status:      models.TopicStatus(status),
		CreatedBy:   id.Identity(createdBy),
		CreatedAt:   createdAt,
		Tally:       models.Tally{Yes: yes, No: no, Abstention: abstention},
		Voters:      make(map[id.ResidenceID]struct{}, len(voters)),
	}
	if startedAt.Valid {
		t := startedAt.Time
		topic.StartedAt = &t
	}
	if endedAt.Valid {
		t := endedAt.Time
		topic.EndedAt = &t
	}
	for _, v := range voters {
		topic.Voters[id.ResidenceID(v)] = struct{}{}
	}
	return topic, nil
}

func (s *PostgresTopics) CreateIfNameAvailable(ctx context.Context, topic *models.Topic) error {
	query := `
		INSERT INTO topics (name, description, status, created_by, created_at, yes_count, no_count, abstention_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := txcontext.ExecutorFrom(ctx, s.db).ExecContext(ctx, query,
		string(topic.Name), topic.Description, int(topic.Status), topic.CreatedBy.String(), topic.CreatedAt,
		topic.Tally.Yes, topic.Tally.No, topic.Tally.Abstention)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("topic %q: %w", topic.Name, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

func (s *PostgresTopics) FindByName(ctx context.Context, name id.TopicName) (*models.Topic, error) {
	row := txcontext.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+topicColumns+` FROM topics t WHERE t.name = $1`, string(name))
	topic, err := scanTopic(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("topic %q: %w", name, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find topic: %w", err)
	}
	return topic, nil
}

func (s *PostgresTopics) List(ctx context.Context) ([]*models.Topic, error) {
	rows, err := txcontext.ExecutorFrom(ctx, s.db).QueryContext(ctx,
		`SELECT `+topicColumns+` FROM topics t ORDER BY t.created_at, t.name`)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var out []*models.Topic
	for rows.Next() {
		topic, err := scanTopic(rows)
		if err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		out = append(out, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}
	return out, nil
}

// Execute locks the topic row, runs validate and mutate, and writes the result back.
// New entries in topic.Voters are inserted into topic_voters.
func (s *PostgresTopics) Execute(ctx context.Context, name id.TopicName, validate func(*models.Topic) error, mutate func(*models.Topic)) (*models.Topic, error) {
	var result *models.Topic
	err := s.withTx(ctx, func(ctx context.Context, exec txcontext.Executor) error {
		row := exec.QueryRowContext(ctx,
			`SELECT `+topicColumns+` FROM topics t WHERE t.name = $1 FOR UPDATE OF t`, string(name))
		topic, err := scanTopic(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("topic %q: %w", name, sentinel.ErrNotFound)
			}
			return fmt.Errorf("lock topic: %w", err)
		}
		if err := validate(topic); err != nil {
			return err
		}
		before := make(map[id.ResidenceID]struct{}, len(topic.Voters))
		for r := range topic.Voters {
			before[r] = struct{}{}
		}
		mutate(topic)

		update := `
			UPDATE topics SET
				status = $2,
				started_at = $3,
				ended_at = $4,
				yes_count = $5,
				no_count = $6,
				abstention_count = $7
			WHERE name = $1
		`
		if _, err := exec.ExecContext(ctx, update, string(name), int(topic.Status),
			nullTime(topic.StartedAt), nullTime(topic.EndedAt),
			topic.Tally.Yes, topic.Tally.No, topic.Tally.Abstention); err != nil {
			return fmt.Errorf("update topic: %w", err)
		}

		var added []int64
		for r := range topic.Voters {
			if _, ok := before[r]; !ok {
				added = append(added, int64(r))
			}
		}
		if len(added) > 0 {
			insert := `
				INSERT INTO topic_voters (topic_name, residence_id)
				SELECT $1, unnest($2::integer[])
			`
			if _, err := exec.ExecContext(ctx, insert, string(name), pq.Array(added)); err != nil {
				if isUniqueViolation(err) {
					return fmt.Errorf("record ballot: %w", sentinel.ErrAlreadyUsed)
				}
				return fmt.Errorf("record ballot: %w", err)
			}
		}
		result = topic
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresTopics) DeleteIf(ctx context.Context, name id.TopicName, validate func(*models.Topic) error) error {
	return s.withTx(ctx, func(ctx context.Context, exec txcontext.Executor) error {
		row := exec.QueryRowContext(ctx,
			`SELECT `+topicColumns+` FROM topics t WHERE t.name = $1 FOR UPDATE OF t`, string(name))
		topic, err := scanTopic(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("topic %q: %w", name, sentinel.ErrNotFound)
			}
			return fmt.Errorf("lock topic: %w", err)
		}
		if err := validate(topic); err != nil {
			return err
		}
		if _, err := exec.ExecContext(ctx, `DELETE FROM topics WHERE name = $1`, string(name)); err != nil {
			return fmt.Errorf("delete topic: %w", err)
		}
		return nil
	})
}

// withTx reuses the transaction carried by ctx or opens a short one.
func (s *PostgresTopics) withTx(ctx context.Context, fn func(context.Context, txcontext.Executor) error) error {
	if tx, ok := txcontext.From(ctx); ok {
		return fn(ctx, tx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := fn(txcontext.WithTx(ctx, tx), tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
