// Package access holds the permission predicates that gate governance mutations.
//
// Predicates are pure functions of a Roles snapshot so they can be tested without
// any store. The engine builds the snapshot for the caller, evaluates the policy
// for the operation, and only then touches state.
package access

import (
	id "github.com/pewpola/dao-condominium/pkg/domain"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
)

// Roles is what the engine knows about a caller at the time of a call.
type Roles struct {
	Caller    id.Identity
	Manager   id.Identity
	Counselor bool
	Resident  bool
}

// IsManager reports whether the caller is the current manager.
func (r Roles) IsManager() bool {
	return !r.Caller.IsNil() && r.Caller == r.Manager
}

// Policy names a permission category.
type Policy uint8

const (
	ManagerOnly Policy = iota
	ManagerOrCouncil
	ManagerOrResident
)

var deniedMessages = map[Policy]string{
	ManagerOnly:       "only the manager can do this",
	ManagerOrCouncil:  "only the manager or the council can do this",
	ManagerOrResident: "only the manager or the residents can do this",
}

// Allows evaluates the policy against the roles snapshot.
func (p Policy) Allows(r Roles) bool {
	if r.Caller.IsNil() {
		return false
	}
	switch p {
	case ManagerOnly:
		return r.IsManager()
	case ManagerOrCouncil:
		return r.IsManager() || r.Counselor
	case ManagerOrResident:
		return r.IsManager() || r.Resident
	default:
		return false
	}
}

// Check returns CodeUnauthorized when the policy does not hold.
func (p Policy) Check(r Roles) error {
	if p.Allows(r) {
		return nil
	}
	return dErrors.New(dErrors.CodeUnauthorized, deniedMessages[p])
}

func (p Policy) String() string {
	switch p {
	case ManagerOnly:
		return "manager_only"
	case ManagerOrCouncil:
		return "manager_or_council"
	case ManagerOrResident:
		return "manager_or_resident"
	default:
		return "unknown"
	}
}
