// Package credentials resolves the login bundle shared by an account's
// sessions, either from explicit caller input or from the account store.
package credentials

import (
	"context"
	"errors"
	"strings"

	"triad/internal/domain"
)

// StoreKey is the key under which the credential tuple lives in the
// account root namespace.
const StoreKey = "credentials"

// ErrMissingCredentials is matched by every MissingCredentialsError.
var ErrMissingCredentials = errors.New("missing login or password")

// MissingCredentialsError reports which mandatory fields were empty after
// resolution.
type MissingCredentialsError struct {
	Login    bool
	Password bool
}

func (e *MissingCredentialsError) Error() string {
	var missing []string
	if e.Login {
		missing = append(missing, "login")
	}
	if e.Password {
		missing = append(missing, "password")
	}
	if len(missing) == 0 {
		return ErrMissingCredentials.Error()
	}
	return ErrMissingCredentials.Error() + ": " + strings.Join(missing, ", ")
}

func (e *MissingCredentialsError) Unwrap() error { return ErrMissingCredentials }

// Resolve returns the credentials to bootstrap with. Explicit credentials are
// used as-is; otherwise the stored tuple is read once from st. An absent
// tuple resolves to all-empty fields, which then fails validation.
func Resolve(ctx context.Context, st domain.Store, explicit *domain.Credentials) (domain.Credentials, error) {
	var creds domain.Credentials
	if explicit != nil {
		creds = *explicit
	} else if _, err := st.Get(ctx, StoreKey, &creds); err != nil {
		return domain.Credentials{}, err
	}

	if err := Validate(creds); err != nil {
		return domain.Credentials{}, err
	}
	return creds, nil
}

// Validate fails with *MissingCredentialsError when login or password is empty.
func Validate(c domain.Credentials) error {
	if c.Login != "" && c.Password != "" {
		return nil
	}
	return &MissingCredentialsError{Login: c.Login == "", Password: c.Password == ""}
}

// Save writes c to st as the ordered tuple [login, password, shared, identity].
func Save(ctx context.Context, st domain.Store, c domain.Credentials) error {
	if err := Validate(c); err != nil {
		return err
	}
	return st.Set(ctx, StoreKey, c)
}
