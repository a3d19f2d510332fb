package sheets

import (
	"context"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Credentials identifies the service account used to reach the spreadsheet.
type Credentials struct {
	ClientEmail string
	// PrivateKey is the PEM key as stored in the environment, where newlines
	// are usually written as the two characters `\n`.
	PrivateKey string
}

func (c Credentials) empty() bool {
	return strings.TrimSpace(c.ClientEmail) == "" || strings.TrimSpace(c.PrivateKey) == ""
}

// UnescapedKey returns the PEM key with escaped newlines restored.
func (c Credentials) UnescapedKey() string {
	return strings.ReplaceAll(c.PrivateKey, `\n`, "\n")
}

// JWTConfig builds the two-legged OAuth config scoped to spreadsheet
// read/write.
func (c Credentials) JWTConfig() *jwt.Config {
	return &jwt.Config{
		Email:      strings.TrimSpace(c.ClientEmail),
		PrivateKey: []byte(c.UnescapedKey()),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
}

// TokenSource returns a caching token source for the service account.
func (c Credentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	return c.JWTConfig().TokenSource(ctx)
}
