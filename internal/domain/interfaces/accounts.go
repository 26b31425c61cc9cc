package interfaces

import (
	"context"

	domaintypes "triad/internal/domain/types"
)

// Authenticator talks to the remote service's auth endpoints.
type Authenticator interface {
	Login(ctx context.Context, req domaintypes.LoginRequest) (domaintypes.Tokens, error)
	Refresh(ctx context.Context, refreshToken string) (domaintypes.Tokens, error)
}
