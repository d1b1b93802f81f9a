// Package auth verifies bearer tokens. Token issuance lives with the
// identity provider; this service only checks signatures and claims.
package auth

import (
	"crypto"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken means no bearer token was presented.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken means the token failed signature or claim checks.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is what handlers learn about the caller.
type Claims struct {
	// Subject identifies the user. It is never persisted as-is.
	Subject string
}

// Verifier checks a raw bearer token.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// tokenClaims accepts both ID tokens (sub) and providers that put the user
// in "username".
type tokenClaims struct {
	Username string `json:"username,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates JWTs signed with a shared secret (HS256) or a
// public key (RS256 / ES256).
type JWTVerifier struct {
	key     interface{}
	methods []string
	opts    []jwt.ParserOption
}

// Options configures a JWTVerifier. Exactly one of Secret or PublicKeyPEM
// is required.
type Options struct {
	Secret       string
	PublicKeyPEM string
	Issuer       string
	Audience     string
}

// NewJWTVerifier builds a verifier from opts.
func NewJWTVerifier(o Options) (*JWTVerifier, error) {
	v := &JWTVerifier{}

	switch {
	case o.Secret != "" && o.PublicKeyPEM != "":
		return nil, errors.New("configure either a secret or a public key, not both")
	case o.Secret != "":
		v.key = []byte(o.Secret)
		v.methods = []string{jwt.SigningMethodHS256.Alg()}
	case o.PublicKeyPEM != "":
		key, methods, err := parsePublicKey(o.PublicKeyPEM)
		if err != nil {
			return nil, err
		}
		v.key = key
		v.methods = methods
	default:
		return nil, errors.New("no token verification key configured")
	}

	v.opts = []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
	}
	if o.Issuer != "" {
		v.opts = append(v.opts, jwt.WithIssuer(o.Issuer))
	}
	if o.Audience != "" {
		v.opts = append(v.opts, jwt.WithAudience(o.Audience))
	}
	return v, nil
}

// Verify parses and validates token.
func (v *JWTVerifier) Verify(token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, ErrMissingToken
	}

	claims := new(tokenClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	}, v.opts...)
	if err != nil || !parsed.Valid {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.Username
	}
	if subject == "" {
		return Claims{}, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}
	return Claims{Subject: subject}, nil
}

func parsePublicKey(pem string) (crypto.PublicKey, []string, error) {
	if key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem)); err == nil {
		return key, []string{jwt.SigningMethodRS256.Alg()}, nil
	}
	if key, err := jwt.ParseECPublicKeyFromPEM([]byte(pem)); err == nil {
		return key, []string{jwt.SigningMethodES256.Alg()}, nil
	}
	return nil, nil, errors.New("AUTH_JWT_PUBLIC_KEY is not an RSA or EC public key")
}
