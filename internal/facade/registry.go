package facade

import (
	"slices"
	"strings"
	"sync"

	"github.com/pewpola/dao-condominium/internal/governance/ports"
	dErrors "github.com/pewpola/dao-condominium/pkg/domain-errors"
)

// Registry maps implementation handles to in-process governance
// implementations. A handle must be registered before the facade can be
// upgraded to it.
type Registry struct {
	mu    sync.RWMutex
	impls map[string]ports.Governance
}

func NewRegistry() *Registry {
	return &Registry{impls: make(map[string]ports.Governance)}
}

// Register makes impl reachable under handle. Registering an existing handle
// replaces the implementation behind it.
func (r *Registry) Register(handle string, impl ports.Governance) error {
	handle = strings.TrimSpace(handle)
	if handle == "" || impl == nil {
		return dErrors.New(dErrors.CodeInvalidAddress, "invalid address")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.impls[handle] = impl
	return nil
}

// Lookup returns the implementation registered under handle.
func (r *Registry) Lookup(handle string) (ports.Governance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	impl, ok := r.impls[handle]
	return impl, ok
}

// Handles lists registered handles in lexical order.
func (r *Registry) Handles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handles := make([]string, 0, len(r.impls))
	for h := range r.impls {
		handles = append(handles, h)
	}
	slices.Sort(handles)
	return handles
}
