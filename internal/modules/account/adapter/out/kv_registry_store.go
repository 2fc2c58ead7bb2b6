package out

import (
	"context"
	"encoding/json"
	"fmt"

	"unitrack/internal/platform/kv"
	"unitrack/internal/platform/logging"

	"unitrack/internal/modules/account/domain"
	"unitrack/internal/modules/account/port/out"
)

const accountsKey = "accounts"

// KVRegistryStore keeps all registered accounts as one JSON array. An
// unreadable array is logged and treated as empty, so the next append
// rebuilds the registry from scratch.
type KVRegistryStore struct {
	store *kv.Store
	log   logging.Logger
}

func NewKVRegistryStore(store *kv.Store, log logging.Logger) out.RegistryStore {
	return &KVRegistryStore{store: store, log: log}
}

func (s *KVRegistryStore) List(ctx context.Context) ([]domain.Account, error) {
	raw, ok, err := s.store.Get(ctx, accountsKey)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", accountsKey, err)
	}
	if !ok {
		return []domain.Account{}, nil
	}
	accounts := []domain.Account{}
	if err := json.Unmarshal(raw, &accounts); err != nil {
		s.log.Warn("stored account registry is unreadable, starting empty", "error", err)
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *KVRegistryStore) Append(ctx context.Context, account domain.Account) error {
	accounts, err := s.List(ctx)
	if err != nil {
		return err
	}
	accounts = append(accounts, account)
	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("marshal accounts: %w", err)
	}
	if err := s.store.Put(ctx, accountsKey, raw); err != nil {
		return fmt.Errorf("put %s: %w", accountsKey, err)
	}
	return nil
}
