package session

import (
	"context"
	"reflect"

	"triad/internal/domain"
)

const (
	envKey   = "env"
	stateKey = "state"
)

// Spec parameterises Restore for one session kind.
type Spec[S any] struct {
	Kind  domain.SessionKind
	Store domain.Store
	Env   domain.EnvResolver
	Build func(ctx context.Context, env domain.Environment) (S, error)
}

// Restore resolves the persisted environment for spec.Kind, writes it back
// when the resolver changed it, then builds the session.
func Restore[S any](ctx context.Context, spec Spec[S]) (S, error) {
	var zero S

	var old domain.Environment
	if _, err := spec.Store.Get(ctx, envKey, &old); err != nil {
		return zero, err
	}

	next := old
	if spec.Env != nil {
		next = spec.Env(old)
	}
	if !reflect.DeepEqual(old, next) {
		if err := spec.Store.Set(ctx, envKey, next); err != nil {
			return zero, err
		}
	}
	return spec.Build(ctx, next)
}
