package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/pewpola/dao-condominium/internal/governance/access"
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
	"github.com/pewpola/dao-condominium/pkg/platform/audit"
	"github.com/pewpola/dao-condominium/pkg/platform/sentinel"
)

// ResidenceExists is a pure function of the layout.
func (e *Engine) ResidenceExists(_ context.Context, residence id.ResidenceID) (bool, error) {
	return e.layout.Contains(residence), nil
}

func (e *Engine) IsResident(ctx context.Context, identity id.Identity) (bool, error) {
	return e.isResident(ctx, identity)
}

// ResidenceOf returns the residence an identity occupies.
func (e *Engine) ResidenceOf(ctx context.Context, identity id.Identity) (id.ResidenceID, error) {
	residence, err := e.residents.FindResidence(ctx, identity)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return 0, dErrors.New(dErrors.CodeNotAResident, "the address is not a resident")
		}
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load resident")
	}
	return residence, nil
}

// AddResident registers identity at residence, replacing any previous residence.
// Allowed for the manager and the council.
func (e *Engine) AddResident(ctx context.Context, identity id.Identity, residence id.ResidenceID) (err error) {
	ctx, done := e.observe(ctx, "add_resident",
		attribute.String("governance.identity", identity.String()),
		attribute.Int("governance.residence", int(residence)),
	)
	defer done(&err)

	var isNew bool
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := e.authorize(txCtx, "add_resident", access.ManagerOrCouncil); err != nil {
			return err
		}
		if identity.IsNil() {
			return dErrors.New(dErrors.CodeInvalidAddress, "the address must be valid")
		}
		if !e.layout.Contains(residence) {
			return dErrors.New(dErrors.CodeInvalidResidence, "this residence does not exist")
		}
		existed, err := e.isResident(txCtx, identity)
		if err != nil {
			return err
		}
		if err := e.residents.Save(txCtx, identity, residence); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save resident")
		}
		isNew = !existed
		return nil
	})
	if err != nil {
		return err
	}

	if isNew && e.metrics != nil {
		e.metrics.ResidentAdded()
	}
	e.record(ctx, audit.EventResidentAdded,
		audit.Event{Subject: identity.String(), Residence: int(residence)},
		"identity", identity.String(),
		"residence", int(residence),
	)
	return nil
}

// RemoveResident deletes the identity's registration. Manager only; council
// members must have their role revoked first.
func (e *Engine) RemoveResident(ctx context.Context, identity id.Identity) (err error) {
	ctx, done := e.observe(ctx, "remove_resident",
		attribute.String("governance.identity", identity.String()),
	)
	defer done(&err)

	var residence id.ResidenceID
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := e.authorize(txCtx, "remove_resident", access.ManagerOnly); err != nil {
			return err
		}
		counselor, err := e.roles.IsCounselor(txCtx, identity)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load council membership")
		}
		if counselor {
			return dErrors.New(dErrors.CodeProtectedRole, "a counselor cannot be removed")
		}
		residence, err = e.ResidenceOf(txCtx, identity)
		if err != nil {
			return err
		}
		if err := e.residents.Delete(txCtx, identity); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotAResident, "the address is not a resident")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete resident")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if e.metrics != nil {
		e.metrics.ResidentRemoved()
	}
	e.record(ctx, audit.EventResidentRemoved,
		audit.Event{Subject: identity.String(), Residence: int(residence)},
		"identity", identity.String(),
		"residence", int(residence),
	)
	return nil
}

// SetCounselor grants or revokes council membership. Manager only; the
// target must be a resident either way. Repeating a call is a no-op.
func (e *Engine) SetCounselor(ctx context.Context, identity id.Identity, enabled bool) (err error) {
	ctx, done := e.observe(ctx, "set_counselor",
		attribute.String("governance.identity", identity.String()),
		attribute.Bool("governance.enabled", enabled),
	)
	defer done(&err)

	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := e.authorize(txCtx, "set_counselor", access.ManagerOnly); err != nil {
			return err
		}
		if identity.IsNil() {
			return dErrors.New(dErrors.CodeInvalidAddress, "the address must be valid")
		}
		resident, err := e.isResident(txCtx, identity)
		if err != nil {
			return err
		}
		if !resident {
			return dErrors.New(dErrors.CodeNotAResident, "the counselor must be a resident")
		}
		if err := e.roles.SetCounselor(txCtx, identity, enabled); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update council")
		}
		return nil
	})
	if err != nil {
		return err
	}

	decision := "disabled"
	if enabled {
		decision = "enabled"
	}
	e.record(ctx, audit.EventCounselorSet,
		audit.Event{Subject: identity.String(), Decision: decision},
		"identity", identity.String(),
		"enabled", enabled,
	)
	return nil
}

func (e *Engine) IsCounselor(ctx context.Context, identity id.Identity) (bool, error) {
	ok, err := e.roles.IsCounselor(ctx, identity)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load council membership")
	}
	return ok, nil
}

// SetManager hands the manager role to identity. Only the current manager may call it.
func (e *Engine) SetManager(ctx context.Context, identity id.Identity) (err error) {
	ctx, done := e.observe(ctx, "set_manager",
		attribute.String("governance.identity", identity.String()),
	)
	defer done(&err)

	var previous id.Identity
	err = e.tx.RunInTx(ctx, func(txCtx context.Context) error {
		roles, err := e.authorize(txCtx, "set_manager", access.ManagerOnly)
		if err != nil {
			return err
		}
		if identity.IsNil() {
			return dErrors.New(dErrors.CodeInvalidAddress, "the address must be valid")
		}
		if err := e.roles.SetManager(txCtx, identity); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update manager")
		}
		previous = roles.Manager
		return nil
	})
	if err != nil {
		return err
	}

	e.record(ctx, audit.EventManagerChanged,
		audit.Event{Subject: identity.String(), Decision: previous.String()},
		"previous_manager", previous.String(),
		"manager", identity.String(),
	)
	return nil
}

func (e *Engine) Manager(ctx context.Context) (id.Identity, error) {
	manager, err := e.roles.Manager(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeNotFound, "the manager is not set")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load manager")
	}
	return manager, nil
}
