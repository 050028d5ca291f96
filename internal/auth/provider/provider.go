package provider

import (
	"context"

	"github.com/police-1111/cmf/internal/auth"
)

// OAuthProvider defines the contract the external identity provider
// must implement. Implementations return identity facts only and must
// not make allow/deny decisions or touch session state.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider credentials
	// and returns a normalized identity. A replayed code fails here,
	// enforced provider-side.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.Identity, error)
}
