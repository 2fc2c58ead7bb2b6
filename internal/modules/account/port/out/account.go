package out

import (
	"context"

	"unitrack/internal/modules/account/domain"
)

// SessionStore persists the single active session. A missing or unreadable
// stored session loads as the anonymous session.
type SessionStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}

// RegistryStore persists the known-accounts list. List must hit the backing
// store on every call so credential checks never act on a stale registry.
type RegistryStore interface {
	List(ctx context.Context) ([]domain.Account, error)
	Append(ctx context.Context, account domain.Account) error
}
