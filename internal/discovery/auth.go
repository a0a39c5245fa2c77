package discovery

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// EnvAuthToken is consulted when no --auth-token flag is given.
const EnvAuthToken = "FIXTUREGEN_AUTH_TOKEN"

// DefaultGoogleScopes are requested for service-account keys when none are given.
var DefaultGoogleScopes = []string{"https://www.googleapis.com/auth/cloud-platform"}

// LookupToken resolves a bearer token: the flag value if non-empty, else
// the FIXTUREGEN_AUTH_TOKEN environment variable.
func LookupToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	return os.Getenv(EnvAuthToken)
}

// Credentials selects how HTTP discovery authenticates.
type Credentials struct {
	Token         string   // static bearer token
	GoogleKeyFile string   // service-account JSON key; wins over Token
	Scopes        []string // for GoogleKeyFile; defaults to DefaultGoogleScopes
}

// TokenSource returns the token source for creds, or nil when no
// credentials are configured.
func TokenSource(ctx context.Context, creds Credentials) (oauth2.TokenSource, error) {
	if creds.GoogleKeyFile != "" {
		keyData, err := os.ReadFile(creds.GoogleKeyFile)
		if err != nil {
			return nil, fmt.Errorf("discovery: read service account key file %s: %w", creds.GoogleKeyFile, err)
		}
		scopes := creds.Scopes
		if len(scopes) == 0 {
			scopes = DefaultGoogleScopes
		}
		cfg, err := google.JWTConfigFromJSON(keyData, scopes...)
		if err != nil {
			return nil, fmt.Errorf("discovery: parse service account key: %w", err)
		}
		return cfg.TokenSource(ctx), nil
	}
	if creds.Token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token, TokenType: "Bearer"}), nil
	}
	return nil, nil
}

// AuthHeaders fetches a token from ts and returns the Authorization header.
// A nil ts yields no headers.
func AuthHeaders(ts oauth2.TokenSource) (map[string]string, error) {
	if ts == nil {
		return nil, nil
	}
	token, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("discovery: fetch token: %w", err)
	}
	return map[string]string{"Authorization": token.Type() + " " + token.AccessToken}, nil
}
