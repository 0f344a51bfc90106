package auth

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookie = "__session"

// SessionClaims are the claims of an identity-provider session token.
type SessionClaims struct {
	AuthorizedParty string `json:"azp,omitempty"`
	SessionID       string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

type Verifier interface {
	Verify(token string) (*SessionClaims, error)
}

// SessionVerifier checks RS256 session tokens against a single public key.
type SessionVerifier struct {
	key     *rsa.PublicKey
	parties map[string]struct{}
	parser  *jwt.Parser
}

// NewSessionVerifier parses a PEM encoded RSA public key. Escaped "\n"
// sequences, as commonly found in env files, are accepted. When
// authorizedParties is non-empty, a token's azp claim must be one of them.
func NewSessionVerifier(pemKey string, authorizedParties []string) (*SessionVerifier, error) {
	pemKey = strings.ReplaceAll(pemKey, `\n`, "\n")
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("parse session public key: %w", err)
	}

	parties := make(map[string]struct{}, len(authorizedParties))
	for _, p := range authorizedParties {
		parties[p] = struct{}{}
	}

	return &SessionVerifier{
		key:     key,
		parties: parties,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(5*time.Second),
		),
	}, nil
}

func (v *SessionVerifier) Verify(raw string) (*SessionClaims, error) {
	if raw == "" {
		return nil, ErrMissingToken
	}

	claims := &SessionClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	if len(v.parties) > 0 && claims.AuthorizedParty != "" {
		if _, ok := v.parties[claims.AuthorizedParty]; !ok {
			return nil, fmt.Errorf("%w: unauthorized party %q", ErrInvalidToken, claims.AuthorizedParty)
		}
	}

	return claims, nil
}

// TokenFromRequest reads the session token from the Authorization bearer
// header, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			return strings.TrimSpace(header[7:])
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
