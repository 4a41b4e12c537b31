package resolver

import (
	"context"
	"errors"

	"github.com/dennis-koster/dlf-graphql-example/internal/domain"
	"github.com/dennis-koster/dlf-graphql-example/internal/events"
	"github.com/dennis-koster/dlf-graphql-example/internal/repository"
)

type passwordUpdate struct {
	id   string
	hash string
}

type stubUserRepository struct {
	users     map[string]domain.User
	updates   []passwordUpdate
	getErr    error
	updateErr error
}

func (s *stubUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (s *stubUserRepository) UpdatePassword(_ context.Context, id, hash string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	user, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = hash
	s.users[id] = user
	s.updates = append(s.updates, passwordUpdate{id: id, hash: hash})
	return nil
}

func (s *stubUserRepository) Find(_ context.Context, q repository.UserQuery, _ repository.Page) ([]domain.User, error) {
	var out []domain.User
	for _, u := range s.users {
		if q.Matches(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fixedPasswords struct {
	password string
	err      error
	calls    int
}

func (f *fixedPasswords) Generate() (string, error) {
	f.calls++
	return f.password, f.err
}

type stubManifest struct {
	manifest domain.VersionManifest
	err      error
}

func (s stubManifest) Read() (domain.VersionManifest, error) {
	return s.manifest, s.err
}

type recordingDispatcher struct {
	published []events.Event
	err       error
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return d.err
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

var errStore = errors.New("connection reset by peer")
