package identity

import (
	"fmt"
	"strings"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/infrastructure/config"
	"github.com/google/uuid"
)

var validRoles = map[identity.Role]bool{
	identity.RoleSuperAdmin: true,
	identity.RoleFinance:    true,
	identity.RoleSupport:    true,
	identity.RoleClient:     true,
}

// StaticUserStore is a read-only user table built from configuration at
// startup. It is never mutated afterwards, so lookups need no locking.
type StaticUserStore struct {
	byEmail map[string]identity.User
}

// NewStaticUserStore builds the store from provisioned accounts. User ids are
// derived from the email so they stay stable across restarts.
func NewStaticUserStore(users []config.UserConfig) (*StaticUserStore, error) {
	store := &StaticUserStore{byEmail: make(map[string]identity.User, len(users))}
	for _, u := range users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		role := identity.Role(u.Role)
		if !validRoles[role] {
			return nil, fmt.Errorf("user %s: unknown role %q", email, u.Role)
		}
		if _, dup := store.byEmail[email]; dup {
			return nil, fmt.Errorf("duplicate user %s", email)
		}
		store.byEmail[email] = identity.User{
			ID:           uuid.NewSHA1(uuid.NameSpaceURL, []byte("billing://users/"+email)),
			Email:        email,
			Name:         u.Name,
			Role:         role,
			PasswordHash: u.PasswordHash,
		}
	}
	return store, nil
}

// FindByEmail looks up a user by its normalized email
func (s *StaticUserStore) FindByEmail(email string) (*identity.User, bool) {
	u, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, false
	}
	return &u, true
}

// Len returns the number of provisioned users
func (s *StaticUserStore) Len() int {
	return len(s.byEmail)
}
