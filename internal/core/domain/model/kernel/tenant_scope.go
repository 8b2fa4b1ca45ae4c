package kernel

import (
	"errors"

	"docflow/internal/pkg/guard"
)

var ErrTenantScopeIsNotConstructed = errors.New(
	"TenantScope must be created via NewTenantScope or NewSystemScope",
)

// SystemActorID identifies writes performed by the engine itself, such as the
// expiration sweep.
var SystemActorID = UUID{id: [16]byte{0, 0, 0, 0, 0, 0, 0x40, 0, 0x80, 0, 0, 0, 0, 0, 0, 1}}

// TenantScope carries the tenant and the acting user of a request. Every
// repository call takes one; there is no unscoped access path.
type TenantScope struct {
	tenantID UUID
	actorID  UUID
	guard    guard.ConstructorGuard
}

func NewTenantScope(tenantID, actorID UUID) (TenantScope, error) {
	if err := tenantID.Validate(); err != nil {
		return TenantScope{}, err
	}
	if err := actorID.Validate(); err != nil {
		return TenantScope{}, err
	}
	return TenantScope{
		tenantID: tenantID,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewSystemScope scopes engine-initiated work to one tenant.
func NewSystemScope(tenantID UUID) (TenantScope, error) {
	return NewTenantScope(tenantID, SystemActorID)
}

func (s TenantScope) TenantID() UUID {
	return s.tenantID
}

func (s TenantScope) ActorID() UUID {
	return s.actorID
}

func (s TenantScope) IsSystem() bool {
	return s.actorID.IsEqual(SystemActorID)
}

func (s TenantScope) Validate() error {
	return s.guard.Validate(ErrTenantScopeIsNotConstructed)
}
