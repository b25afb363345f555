package chatbot

import (
	"context"
	"errors"
	"fmt"

	"github.com/acadassist/acadassist/store"
)

// Resolver converts an extracted identifier into exactly one user record.
// Name lookups that match several users surface MultipleMatchesError so the
// caller can disambiguate.
type Resolver struct {
	store *store.Store
}

func NewResolver(s *store.Store) *Resolver {
	return &Resolver{store: s}
}

// Resolve looks up the user for an identifier with the kind-specific
// strategy. Zero matches yields NotFoundError; a name matching multiple users
// yields MultipleMatchesError.
func (r *Resolver) Resolve(ctx context.Context, id *Identifier) (*store.User, error) {
	switch id.Kind {
	case IdentifierEmail:
		user, err := r.store.GetUserByEmail(ctx, id.Value)
		return r.one(id, user, err)
	case IdentifierStudentCode:
		user, err := r.store.GetUserByStudentCode(ctx, id.Value)
		return r.one(id, user, err)
	case IdentifierUsername:
		user, err := r.store.GetUserByUsername(ctx, id.Value)
		return r.one(id, user, err)
	case IdentifierPersonName:
		users, err := r.store.FindUsersByName(ctx, id.First, id.Last)
		if err != nil {
			return nil, err
		}
		switch len(users) {
		case 0:
			return nil, notFound(id)
		case 1:
			return users[0], nil
		default:
			return nil, &MultipleMatchesError{Identifier: id.String(), Candidates: users}
		}
	default:
		return nil, notFound(id)
	}
}

// ResolveFirst is Resolve with first-match-wins semantics for ambiguous
// names, for parity with clients that expect a single answer.
func (r *Resolver) ResolveFirst(ctx context.Context, id *Identifier) (*store.User, error) {
	user, err := r.Resolve(ctx, id)
	var multiple *MultipleMatchesError
	if errors.As(err, &multiple) {
		return multiple.Candidates[0], nil
	}
	return user, err
}

func (r *Resolver) one(id *Identifier, user *store.User, err error) (*store.User, error) {
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound(id)
	}
	return user, nil
}

func notFound(id *Identifier) error {
	return &NotFoundError{Msg: fmt.Sprintf("No user found with identifier '%s'", id.String())}
}
