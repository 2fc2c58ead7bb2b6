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

const sessionKey = "session"

// KVSessionStore keeps the active session under a single key. Corrupt stored
// data is logged and replaced with the anonymous session rather than
// surfaced; the next save overwrites whatever was there.
type KVSessionStore struct {
	store *kv.Store
	log   logging.Logger
}

func NewKVSessionStore(store *kv.Store, log logging.Logger) out.SessionStore {
	return &KVSessionStore{store: store, log: log}
}

func (s *KVSessionStore) Load(ctx context.Context) (domain.Session, error) {
	raw, ok, err := s.store.Get(ctx, sessionKey)
	if err != nil {
		return domain.Session{}, fmt.Errorf("get %s: %w", sessionKey, err)
	}
	if !ok {
		return domain.Anonymous(), nil
	}
	session := domain.Session{}
	if err := json.Unmarshal(raw, &session); err != nil {
		s.log.Warn("stored session is unreadable, starting signed out", "error", err)
		return domain.Anonymous(), nil
	}
	return session, nil
}

func (s *KVSessionStore) Save(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.store.Put(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("put %s: %w", sessionKey, err)
	}
	return nil
}
