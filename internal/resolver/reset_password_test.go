package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/dennis-koster/dlf-graphql-example/internal/auth"
	"github.com/dennis-koster/dlf-graphql-example/internal/domain"
	"github.com/dennis-koster/dlf-graphql-example/internal/events"
	"github.com/dennis-koster/dlf-graphql-example/pkg/util/errorutil"
)

const knownUserID = "6f1c1b8e-3f5a-4a36-9d43-2b0f7c0b9e11"

func newResetFixture() (*PasswordResetResolver, *stubUserRepository, *fixedPasswords, *recordingDispatcher) {
	repo := &stubUserRepository{users: map[string]domain.User{
		knownUserID: {ID: knownUserID, Email: "jan@example.com", PasswordHash: "old-digest"},
	}}
	passwords := &fixedPasswords{password: "Ab3dEf7h"}
	dispatcher := &recordingDispatcher{}
	res := NewPasswordResetResolver(PasswordResetDependencies{
		Users:      repo,
		Hasher:     auth.NewBcryptHasher(bcrypt.MinCost),
		Passwords:  passwords,
		Dispatcher: dispatcher,
	})
	return res, repo, passwords, dispatcher
}

func TestResetUserPasswordWithGivenPassword(t *testing.T) {
	res, repo, passwords, _ := newResetFixture()

	got, err := res.Resolve(context.Background(), Args{"id": knownUserID, "password": "secret1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if !strings.Contains(got.(string), "secret1") {
		t.Fatalf("expected confirmation to contain password, got %q", got)
	}
	if passwords.calls != 0 {
		t.Fatal("generator must not run when a password is given")
	}
	if len(repo.updates) != 1 || repo.updates[0].id != knownUserID {
		t.Fatalf("expected one update for %s, got %+v", knownUserID, repo.updates)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.users[knownUserID].PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match secret1: %v", err)
	}
}

func TestResetUserPasswordEchoesPassword(t *testing.T) {
	res, _, _, _ := newResetFixture()

	got, err := res.ResetUserPassword(context.Background(), ResetPasswordArgs{ID: knownUserID, Password: ptr("secret1")})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got != "Wachtwoord is gereset naar secret1." {
		t.Fatalf("unexpected confirmation %q", got)
	}
}

func TestResetUserPasswordGeneratesPassword(t *testing.T) {
	res, repo, passwords, _ := newResetFixture()

	got, err := res.Resolve(context.Background(), Args{"id": knownUserID})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if passwords.calls != 1 {
		t.Fatalf("expected one generated password, got %d", passwords.calls)
	}
	if len(passwords.password) != 8 || !strings.Contains(got.(string), passwords.password) {
		t.Fatalf("expected confirmation to contain %q, got %q", passwords.password, got)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.users[knownUserID].PasswordHash), []byte(passwords.password)); err != nil {
		t.Fatalf("stored hash does not match generated password: %v", err)
	}
}

func TestResetUserPasswordWithRealGenerator(t *testing.T) {
	repo := &stubUserRepository{users: map[string]domain.User{knownUserID: {ID: knownUserID}}}
	res := NewPasswordResetResolver(PasswordResetDependencies{
		Users:     repo,
		Hasher:    auth.NewBcryptHasher(bcrypt.MinCost),
		Passwords: auth.NewRandomPasswordGenerator(8),
	})

	got, err := res.ResetUserPassword(context.Background(), ResetPasswordArgs{ID: knownUserID})
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	password := strings.TrimSuffix(strings.TrimPrefix(got, "Wachtwoord is gereset naar "), ".")
	if len(password) != 8 {
		t.Fatalf("expected 8-character password in %q", got)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.users[knownUserID].PasswordHash), []byte(password)); err != nil {
		t.Fatalf("stored hash does not match %q: %v", password, err)
	}
}

func TestResetUserPasswordUnknownUser(t *testing.T) {
	for _, id := range []string{"0b7e4c2a-9a8d-4c55-8f6f-1e2d3c4b5a69", "42", ""} {
		res, repo, passwords, dispatcher := newResetFixture()

		_, err := res.Resolve(context.Background(), Args{"id": id, "password": "secret1"})
		if !errorutil.IsNotFound(err) {
			t.Fatalf("id %q: expected NOT_FOUND, got %v", id, err)
		}
		if len(repo.updates) != 0 {
			t.Fatalf("id %q: store must not be mutated", id)
		}
		if repo.users[knownUserID].PasswordHash != "old-digest" {
			t.Fatalf("id %q: existing credential changed", id)
		}
		if passwords.calls != 0 || len(dispatcher.published) != 0 {
			t.Fatalf("id %q: no generation or notification expected", id)
		}
	}
}

func TestResetUserPasswordRequiresID(t *testing.T) {
	res, _, _, _ := newResetFixture()
	_, err := res.Resolve(context.Background(), Args{"password": "secret1"})
	if de := errorutil.ToDomainError(err); de.Code != errorutil.CodeValidationFailed {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResetUserPasswordRejectsOverlongPassword(t *testing.T) {
	res, repo, passwords, dispatcher := newResetFixture()

	_, err := res.Resolve(context.Background(), Args{"id": knownUserID, "password": strings.Repeat("x", 80)})
	if de := errorutil.ToDomainError(err); de == nil || de.Code != errorutil.CodeValidationFailed {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.updates) != 0 || repo.users[knownUserID].PasswordHash != "old-digest" {
		t.Fatal("store must not be mutated")
	}
	if passwords.calls != 0 || len(dispatcher.published) != 0 {
		t.Fatal("no generation or notification expected")
	}
}

func TestResetUserPasswordAcceptsMaximumLength(t *testing.T) {
	res, repo, _, _ := newResetFixture()

	if _, err := res.Resolve(context.Background(), Args{"id": knownUserID, "password": strings.Repeat("x", 72)}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(repo.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(repo.updates))
	}
}

func TestResetUserPasswordStoreFailure(t *testing.T) {
	res, repo, _, _ := newResetFixture()
	repo.updateErr = errStore

	_, err := res.ResetUserPassword(context.Background(), ResetPasswordArgs{ID: knownUserID, Password: ptr("secret1")})
	if !errors.Is(err, errStore) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if de := errorutil.ToDomainError(err); de.Code != errorutil.CodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %s", de.Code)
	}
}

func TestResetUserPasswordPublishesEventWithoutPassword(t *testing.T) {
	res, _, _, dispatcher := newResetFixture()

	if _, err := res.ResetUserPassword(context.Background(), ResetPasswordArgs{ID: knownUserID}); err != nil {
		t.Fatalf("reset: %v", err)
	}

	if len(dispatcher.published) != 1 {
		t.Fatalf("expected one event, got %d", len(dispatcher.published))
	}
	event := dispatcher.published[0]
	if event.Type != events.EventUserPasswordReset || event.UserID != knownUserID {
		t.Fatalf("unexpected event %+v", event)
	}
	if payload, ok := event.Payload.(events.UserPasswordResetPayload); !ok || !payload.Generated {
		t.Fatalf("unexpected payload %+v", event.Payload)
	}
}

func TestResetUserPasswordSurvivesNotificationFailure(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	repo := &stubUserRepository{users: map[string]domain.User{knownUserID: {ID: knownUserID}}}
	res := NewPasswordResetResolver(PasswordResetDependencies{
		Users:      repo,
		Hasher:     auth.NewBcryptHasher(bcrypt.MinCost),
		Passwords:  &fixedPasswords{password: "Ab3dEf7h"},
		Dispatcher: &recordingDispatcher{err: errors.New("redis down")},
		Logger:     zap.New(core),
	})

	if _, err := res.ResetUserPassword(context.Background(), ResetPasswordArgs{ID: knownUserID}); err != nil {
		t.Fatalf("reset must succeed when notification fails: %v", err)
	}
	if logs.FilterMessage("password reset notification failed").Len() != 1 {
		t.Fatal("expected notification failure to be logged")
	}
	for _, entry := range logs.All() {
		for _, v := range entry.ContextMap() {
			if s, ok := v.(string); ok && strings.Contains(s, "Ab3dEf7h") {
				t.Fatalf("password leaked into log entry %q", entry.Message)
			}
		}
	}
}

func ptr(s string) *string { return &s }
