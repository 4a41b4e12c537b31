package resolver

import (
	"context"
	"time"

	"github.com/dennis-koster/dlf-graphql-example/internal/repository"
)

// UsersArgs are the arguments of the users field.
type UsersArgs struct {
	CreatedAfter *time.Time
}

func bindUsersArgs(args Args) (UsersArgs, error) {
	createdAfter, err := optionalTimestamp(args, "createdAfter")
	if err != nil {
		return UsersArgs{}, err
	}
	return UsersArgs{CreatedAfter: createdAfter}, nil
}

// UserFilterResolver builds the query behind the users list. It returns the
// handle unexecuted; fetching and paging belong to the executor.
type UserFilterResolver struct{}

// NewUserFilterResolver constructs the resolver.
func NewUserFilterResolver() *UserFilterResolver {
	return &UserFilterResolver{}
}

// Users narrows the collection to created_at >= CreatedAfter when given.
func (r *UserFilterResolver) Users(_ context.Context, args UsersArgs) (repository.UserQuery, error) {
	query := repository.NewUserQuery()
	if args.CreatedAfter != nil {
		query = query.WhereCreatedAtOrAfter(*args.CreatedAfter)
	}
	return query, nil
}

// Resolve implements Resolver.
func (r *UserFilterResolver) Resolve(ctx context.Context, raw Args) (any, error) {
	args, err := bindUsersArgs(raw)
	if err != nil {
		return nil, err
	}
	return r.Users(ctx, args)
}
