package out

import (
	"context"
	"encoding/json"
	"fmt"

	"unitrack/internal/platform/kv"
	"unitrack/internal/platform/logging"

	"unitrack/internal/modules/tracker/domain"
	"unitrack/internal/modules/tracker/port/out"
)

const recordKeyPrefix = "applications:"

// KVRecordStore keeps each account's record set under its own key, serialized
// as one JSON array. An unreadable set is logged and loaded as empty; the
// account's next save replaces it.
type KVRecordStore struct {
	store *kv.Store
	log   logging.Logger
}

func NewKVRecordStore(store *kv.Store, log logging.Logger) out.RecordStore {
	return &KVRecordStore{store: store, log: log}
}

func recordKey(email string) string {
	return recordKeyPrefix + email
}

func (s *KVRecordStore) LoadSet(ctx context.Context, email string) ([]domain.Application, error) {
	key := recordKey(email)
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if !ok {
		return []domain.Application{}, nil
	}
	records := []domain.Application{}
	if err := json.Unmarshal(raw, &records); err != nil {
		s.log.Warn("stored record set is unreadable, starting empty", "key", key, "error", err)
		return []domain.Application{}, nil
	}
	return records, nil
}

func (s *KVRecordStore) SaveSet(ctx context.Context, email string, records []domain.Application) error {
	if records == nil {
		records = []domain.Application{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	key := recordKey(email)
	if err := s.store.Put(ctx, key, raw); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}
