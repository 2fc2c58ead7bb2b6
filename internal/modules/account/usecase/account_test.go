package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	apperrors "unitrack/internal/platform/errors"
	"unitrack/internal/platform/kv"
	"unitrack/internal/platform/logging"

	adapterout "unitrack/internal/modules/account/adapter/out"
	"unitrack/internal/modules/account/domain"
	"unitrack/internal/modules/account/dto"
	"unitrack/internal/modules/account/port/in"
	"unitrack/internal/modules/account/port/out"
	"unitrack/internal/modules/account/service"
)

func newStore(t *testing.T) *kv.Store {
	t.Helper()
	store, err := kv.Open(filepath.Join(t.TempDir(), "unitrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newUsecase(store *kv.Store) in.Usecase {
	registry := adapterout.NewKVRegistryStore(store, logging.Nop{})
	sessions := adapterout.NewKVSessionStore(store, logging.Nop{})
	return NewInteractor(service.NewAccountService(registry), sessions, 0)
}

func signUpAna(t *testing.T, uc in.Usecase) dto.SessionOutput {
	t.Helper()
	session, err := uc.SignUp(context.Background(), dto.SignUpInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	return session
}

func TestSignUpAuthenticatesImmediately(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newStore(t))

	session := signUpAna(t, uc)
	if !session.Authenticated {
		t.Fatalf("expected authenticated session after sign up")
	}
	if session.Name != "Ana" || session.Email != "ana@example.com" {
		t.Fatalf("unexpected session identity: %+v", session)
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newStore(t))
	signUpAna(t, uc)

	_, err := uc.SignUp(context.Background(), dto.SignUpInput{
		Name:     "Another Ana",
		Email:    "ana@example.com",
		Password: "different",
	})
	if !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestSignUpRejectsMissingFields(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newStore(t))

	_, err := uc.SignUp(context.Background(), dto.SignUpInput{Name: "Ana"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSignInExactMatchOnly(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newStore(t))
	signUpAna(t, uc)
	if _, err := uc.SignOut(context.Background()); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	_, err := uc.SignIn(context.Background(), dto.SignInInput{Email: "ana@example.com", Password: "wrong"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Email matching is exact, no case folding.
	_, err = uc.SignIn(context.Background(), dto.SignInInput{Email: "Ana@example.com", Password: "secret"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for case-changed email, got %v", err)
	}

	session, err := uc.SignIn(context.Background(), dto.SignInInput{Email: "ana@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if !session.Authenticated || session.Name != "Ana" {
		t.Fatalf("unexpected session after sign in: %+v", session)
	}
}

func TestFailedSignInLeavesSessionUntouched(t *testing.T) {
	t.Parallel()
	uc := newUsecase(newStore(t))
	signUpAna(t, uc)

	session, err := uc.SignIn(context.Background(), dto.SignInInput{Email: "nobody@example.com", Password: "x"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if !session.Authenticated || session.Email != "ana@example.com" {
		t.Fatalf("failed attempt must not disturb the active session, got %+v", session)
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	signUpAna(t, newUsecase(store))

	// A fresh interactor over the same store models a process restart.
	session, err := newUsecase(store).Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !session.Authenticated || session.Email != "ana@example.com" {
		t.Fatalf("expected restored session, got %+v", session)
	}
}

func TestSignOutResetsToAnonymous(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	uc := newUsecase(store)
	signUpAna(t, uc)

	session, err := uc.SignOut(context.Background())
	if err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if session.Authenticated || session.Name != "" || session.Email != "" {
		t.Fatalf("expected anonymous session, got %+v", session)
	}

	restored, err := newUsecase(store).Current(context.Background())
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if restored.Authenticated {
		t.Fatalf("sign out must persist, got %+v", restored)
	}
}

// blockingRegistry parks List until released, keeping an attempt in flight.
type blockingRegistry struct {
	entered  chan struct{}
	released chan struct{}
}

func (r *blockingRegistry) List(context.Context) ([]domain.Account, error) {
	close(r.entered)
	<-r.released
	return []domain.Account{}, nil
}

func (r *blockingRegistry) Append(context.Context, domain.Account) error { return nil }

type memorySession struct {
	session domain.Session
}

func (s *memorySession) Load(context.Context) (domain.Session, error) { return s.session, nil }

func (s *memorySession) Save(_ context.Context, session domain.Session) error {
	s.session = session
	return nil
}

var _ out.RegistryStore = (*blockingRegistry)(nil)
var _ out.SessionStore = (*memorySession)(nil)

func TestSecondSignInWhilePendingIsRejected(t *testing.T) {
	t.Parallel()
	registry := &blockingRegistry{entered: make(chan struct{}), released: make(chan struct{})}
	uc := NewInteractor(service.NewAccountService(registry), &memorySession{}, 0)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = uc.SignIn(context.Background(), dto.SignInInput{Email: "a@example.com", Password: "p"})
	}()
	<-registry.entered

	_, err := uc.SignIn(context.Background(), dto.SignInInput{Email: "b@example.com", Password: "p"})
	if !errors.Is(err, apperrors.ErrSignInPending) {
		t.Fatalf("expected ErrSignInPending while first attempt is in flight, got %v", err)
	}

	close(registry.released)
	<-firstDone

	// Slot is free again once the first attempt settles.
	_, err = uc.SignOut(context.Background())
	if err != nil {
		t.Fatalf("sign out after settled attempt: %v", err)
	}
}

func TestCorruptStoresRecoverEmpty(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	if err := store.Put(ctx, "session", []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt session: %v", err)
	}
	if err := store.Put(ctx, "accounts", []byte("[broken")); err != nil {
		t.Fatalf("seed corrupt accounts: %v", err)
	}

	uc := newUsecase(store)
	session, err := uc.Current(ctx)
	if err != nil {
		t.Fatalf("current over corrupt session: %v", err)
	}
	if session.Authenticated {
		t.Fatalf("corrupt session must load as anonymous, got %+v", session)
	}

	// A corrupt registry reads as empty, so the first sign-up succeeds.
	signUpAna(t, uc)
}
