package service

import (
	"fmt"

	"github.com/aussiebroadwan/trustgate/internal/trust/domain"
	"github.com/aussiebroadwan/trustgate/pkg/rolex"
)

// Authorizer applies the role hierarchy and narrows failures to
// domain.ErrInsufficientRole.
type Authorizer struct {
	Hierarchy *rolex.Hierarchy
}

func (a *Authorizer) hierarchy() *rolex.Hierarchy {
	if a.Hierarchy != nil {
		return a.Hierarchy
	}
	return rolex.Default()
}

// Authorize satisfies httpx.RoleChecker.
func (a *Authorizer) Authorize(subject rolex.Role, required []rolex.Role, mode rolex.Mode) error {
	if err := a.hierarchy().Authorize(subject, required, mode); err != nil {
		return domain.Wrap(domain.KindInsufficientRole, err)
	}
	return nil
}

// RequireOwnerOrAdmin allows the owner of a resource or any admin.
func (a *Authorizer) RequireOwnerOrAdmin(id domain.Identity, ownerID int64) error {
	if a.hierarchy().IsOwnerOrAdmin(id.SubjectID, id.Role, ownerID) {
		return nil
	}
	return domain.Wrap(domain.KindInsufficientRole,
		fmt.Errorf("%w: subject %d is not owner %d", rolex.ErrInsufficientRole, id.SubjectID, ownerID))
}

// Levels exposes the level table.
func (a *Authorizer) Levels() map[string]int {
	return a.hierarchy().Levels()
}
