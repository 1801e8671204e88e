// Package directory keeps an in-memory view of which users may speak at or
// attend events, loaded from the user repository.
package directory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"multitrackscheduling/internal/domain"
)

// roles the scheduling engine asks about.
var trackedRoles = []domain.Role{domain.RoleSpeaker, domain.RoleAttendee, domain.RoleOrganizer}

// Directory implements domain.UserDirectory over a role snapshot.
type Directory struct {
	mu     sync.RWMutex
	byRole map[domain.Role][]string
	index  map[domain.Role]map[string]struct{}
}

// New returns a directory seeded with the given role memberships.
func New(members map[domain.Role][]string) *Directory {
	d := &Directory{}
	d.replace(members)
	return d
}

// Load builds a directory from the repository's current role assignments.
func Load(ctx context.Context, repo domain.UserRepository) (*Directory, error) {
	d := New(nil)
	if err := d.Refresh(ctx, repo); err != nil {
		return nil, err
	}
	return d, nil
}

// Refresh reloads every tracked role from repo. On error the previous view is kept.
func (d *Directory) Refresh(ctx context.Context, repo domain.UserRepository) error {
	members := make(map[domain.Role][]string, len(trackedRoles))
	for _, role := range trackedRoles {
		ids, err := repo.ListIDsByRole(ctx, role)
		if err != nil {
			return fmt.Errorf("list %s ids: %w", role, err)
		}
		members[role] = ids
	}
	d.replace(members)
	return nil
}

func (d *Directory) replace(members map[domain.Role][]string) {
	byRole := make(map[domain.Role][]string, len(members))
	index := make(map[domain.Role]map[string]struct{}, len(members))
	for role, ids := range members {
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		byRole[role] = slices.Clone(ids)
		index[role] = set
	}
	d.mu.Lock()
	d.byRole = byRole
	d.index = index
	d.mu.Unlock()
}

func (d *Directory) has(role domain.Role, id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.index[role][id]
	return ok
}

// IsKnownSpeaker reports whether id holds the speaker role.
func (d *Directory) IsKnownSpeaker(id string) bool { return d.has(domain.RoleSpeaker, id) }

// IsKnownAttendee reports whether id holds the attendee role.
func (d *Directory) IsKnownAttendee(id string) bool { return d.has(domain.RoleAttendee, id) }

// ListIDsByRole returns the ids holding role, in repository order.
func (d *Directory) ListIDsByRole(role domain.Role) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.byRole[role])
}
