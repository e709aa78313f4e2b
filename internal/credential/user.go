// Package credential holds the API token used to authenticate against Todoist.
package credential

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const (
	// Redacted replaces the token in every printed or encoded form of a User.
	Redacted = "REDACTED"

	// tokenType is the scheme a transport pairs with the token.
	tokenType = "Bearer"
)

// User holds an opaque API token. The token is set once by New and cannot be
// changed afterwards.
type User struct {
	token string
}

// New returns a User holding token. The token is not validated.
func New(token string) *User {
	return &User{token: token}
}

// Token returns the raw token for use in an Authorization header.
func (u *User) Token() string {
	return u.token
}

// TokenSource exposes the token as a static oauth2 token source, suitable for
// oauth2.NewClient. The token never expires and is never refreshed.
func (u *User) TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: u.token,
		TokenType:   tokenType,
	})
}

// The printing methods use value receivers so that a copied User, or a
// struct holding one by value, is redacted as well.

// String implements fmt.Stringer without revealing the token.
func (u User) String() string {
	return "credential.User{token:" + Redacted + "}"
}

// GoString implements fmt.GoStringer without revealing the token.
func (u User) GoString() string {
	return u.String()
}

// Format makes every fmt verb print the redacted form, including %d and %x
// which would otherwise walk the struct fields.
func (u User) Format(f fmt.State, verb rune) {
	if verb == 'v' && f.Flag('#') {
		io.WriteString(f, u.GoString())
		return
	}
	io.WriteString(f, u.String())
}

// MarshalJSON encodes the User as the redacted placeholder.
func (u User) MarshalJSON() ([]byte, error) {
	return []byte(`"` + Redacted + `"`), nil
}

// Field returns a zap field that logs u in redacted form.
func Field(u *User) zap.Field {
	if u == nil {
		return zap.Skip()
	}
	return zap.Stringer("credential", u)
}
