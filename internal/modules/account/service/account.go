package service

import (
	"context"
	"fmt"

	apperrors "unitrack/internal/platform/errors"

	"unitrack/internal/modules/account/domain"
	"unitrack/internal/modules/account/port/out"
)

// AccountService holds the registry rules: unique emails on registration and
// exact email+password match on authentication. The registry is re-read from
// the store on every call, so accounts created elsewhere in the same data dir
// are visible immediately.
type AccountService struct {
	registry out.RegistryStore
}

func NewAccountService(registry out.RegistryStore) *AccountService {
	return &AccountService{registry: registry}
}

func (s *AccountService) Register(ctx context.Context, account domain.Account) (domain.Account, error) {
	if err := account.Validate(); err != nil {
		return domain.Account{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	accounts, err := s.registry.List(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("list accounts: %w", err)
	}
	for _, existing := range accounts {
		if existing.Email == account.Email {
			return domain.Account{}, fmt.Errorf("%w: account %q", apperrors.ErrAlreadyExists, account.Email)
		}
	}
	if err := s.registry.Append(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("append account: %w", err)
	}
	return account, nil
}

func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	accounts, err := s.registry.List(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("list accounts: %w", err)
	}
	for _, account := range accounts {
		if account.Email == email && account.Password == password {
			return account, nil
		}
	}
	return domain.Account{}, apperrors.ErrInvalidCredentials
}
