package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dennis-koster/dlf-graphql-example/internal/auth"
	"github.com/dennis-koster/dlf-graphql-example/internal/events"
	"github.com/dennis-koster/dlf-graphql-example/internal/repository"
	"github.com/dennis-koster/dlf-graphql-example/pkg/util/errorutil"
)

// resetMessage is the mutation's confirmation. It echoes the plaintext
// password; the password is never logged or published.
const resetMessage = "Wachtwoord is gereset naar %s."

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// ResetPasswordArgs are the arguments of the resetUserPassword field.
type ResetPasswordArgs struct {
	ID       string
	Password *string
}

func bindResetPasswordArgs(args Args) (ResetPasswordArgs, error) {
	id, err := requiredString(args, "id")
	if err != nil {
		return ResetPasswordArgs{}, err
	}
	password, err := optionalString(args, "password")
	if err != nil {
		return ResetPasswordArgs{}, err
	}
	return ResetPasswordArgs{ID: id, Password: password}, nil
}

// PasswordResetDependencies encapsulates collaborators for the reset mutation.
type PasswordResetDependencies struct {
	Users      repository.UserRepository
	Hasher     auth.Hasher
	Passwords  auth.PasswordGenerator
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// PasswordResetResolver overwrites a user's credential.
type PasswordResetResolver struct {
	users      repository.UserRepository
	hasher     auth.Hasher
	passwords  auth.PasswordGenerator
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPasswordResetResolver constructs the resolver.
func NewPasswordResetResolver(deps PasswordResetDependencies) *PasswordResetResolver {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PasswordResetResolver{
		users:      deps.Users,
		hasher:     deps.Hasher,
		passwords:  deps.Passwords,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// ResetUserPassword stores a digest of the given password, or of a generated
// one when Password is nil, and returns a confirmation naming it.
func (r *PasswordResetResolver) ResetUserPassword(ctx context.Context, args ResetPasswordArgs) (string, error) {
	if _, err := uuid.Parse(args.ID); err != nil {
		return "", userNotFound(args.ID)
	}
	if args.Password != nil && len(*args.Password) > maxPasswordBytes {
		return "", errorutil.NewValidationError(
			fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes),
			map[string]any{"password": "too long"})
	}

	user, err := r.users.GetByID(ctx, args.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", userNotFound(args.ID)
		}
		return "", errorutil.NewInternalError(fmt.Errorf("load user: %w", err))
	}

	generated := args.Password == nil
	var password string
	if generated {
		if password, err = r.passwords.Generate(); err != nil {
			return "", errorutil.NewInternalError(fmt.Errorf("generate password: %w", err))
		}
	} else {
		password = *args.Password
	}

	hash, err := r.hasher.Hash(password)
	if err != nil {
		return "", errorutil.NewInternalError(fmt.Errorf("hash password: %w", err))
	}

	if err := r.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", userNotFound(args.ID)
		}
		return "", errorutil.NewInternalError(fmt.Errorf("update password: %w", err))
	}

	r.logger.Info("user password reset", zap.String("user_id", user.ID), zap.Bool("generated", generated))
	r.publishReset(ctx, user.ID, generated)

	return fmt.Sprintf(resetMessage, password), nil
}

// publishReset notifies subscribers. The credential is already stored, so a
// failing subscriber is logged rather than failing the mutation.
func (r *PasswordResetResolver) publishReset(ctx context.Context, userID string, generated bool) {
	if r.dispatcher == nil {
		return
	}
	event := events.NewEvent(events.EventUserPasswordReset, userID, events.UserPasswordResetPayload{Generated: generated})
	if err := r.dispatcher.Publish(ctx, event); err != nil {
		r.logger.Warn("password reset notification failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// Resolve implements Resolver.
func (r *PasswordResetResolver) Resolve(ctx context.Context, raw Args) (any, error) {
	args, err := bindResetPasswordArgs(raw)
	if err != nil {
		return nil, err
	}
	return r.ResetUserPassword(ctx, args)
}

func userNotFound(id string) error {
	return errorutil.NewNotFound("user", map[string]any{"id": id})
}
