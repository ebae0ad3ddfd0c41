package jsonwebtoken

import (
	"encoding/json"

	"github.com/cybergodev/jsonwebtoken/internal/jws"
	"github.com/cybergodev/jsonwebtoken/internal/signing"
)

// SigningMethod is a JWS "alg" value.
type SigningMethod string

const (
	SigningMethodHS256 SigningMethod = "HS256"
	SigningMethodHS384 SigningMethod = "HS384"
	SigningMethodHS512 SigningMethod = "HS512"

	SigningMethodRS256 SigningMethod = "RS256"
	SigningMethodRS384 SigningMethod = "RS384"
	SigningMethodRS512 SigningMethod = "RS512"

	SigningMethodES256 SigningMethod = "ES256"
	SigningMethodES384 SigningMethod = "ES384"
	SigningMethodES512 SigningMethod = "ES512"

	// SigningMethodNone marks an unsecured token. It is accepted by Create and
	// Validate only when asked for explicitly, and never by a Processor.
	SigningMethodNone SigningMethod = jws.None
)

func (m SigningMethod) algorithm() (signing.Algorithm, error) {
	return signing.ParseAlgorithm(string(m))
}

// IsHMAC reports whether m uses a shared secret.
func (m SigningMethod) IsHMAC() bool {
	alg, err := m.algorithm()
	return err == nil && alg.Family == signing.HMAC
}

// Audience is the "aud" claim. It decodes from either a single string or an
// array of strings, as RFC 7519 allows both.
type Audience []string

func (a *Audience) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*a = Audience{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return err
	}
	*a = many
	return nil
}

// RegisteredClaims are the RFC 7519 registered claim names.
type RegisteredClaims struct {
	Issuer    string      `json:"iss,omitempty"`
	Subject   string      `json:"sub,omitempty"`
	Audience  Audience    `json:"aud,omitempty"`
	ExpiresAt NumericDate `json:"exp,omitzero"`
	NotBefore NumericDate `json:"nbf,omitzero"`
	IssuedAt  NumericDate `json:"iat,omitzero"`
	ID        string      `json:"jti,omitempty"`
}

// Claims is the claim set issued and validated by a Processor.
type Claims struct {
	UserID      string         `json:"user_id,omitempty"`
	Username    string         `json:"username,omitempty"`
	Role        string         `json:"role,omitempty"`
	Permissions []string       `json:"permissions,omitempty"`
	Scopes      []string       `json:"scopes,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
	SessionID   string         `json:"session_id,omitempty"`
	ClientID    string         `json:"client_id,omitempty"`
	RegisteredClaims
}

func (c *Claims) clone() *Claims {
	out := *c
	out.Permissions = append([]string(nil), c.Permissions...)
	out.Scopes = append([]string(nil), c.Scopes...)
	out.Audience = append(Audience(nil), c.Audience...)
	if c.Extra != nil {
		out.Extra = make(map[string]any, len(c.Extra))
		for k, v := range c.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}
