package interfaces

import "golang.org/x/oauth2"

// TokenStore persists the OAuth2 token between runs.
type TokenStore interface {
	// Load returns false when no usable token is stored.
	Load() (*oauth2.Token, bool)
	Save(token *oauth2.Token) error
}
