package middleware

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/api_context"
	"github.com/fhuszti/cms-uploads-go/internal/handler/api"
	"github.com/golang-jwt/jwt/v4"
)

const (
	tokenIssuer   = "core"
	tokenAudience = "uploads"
	// clock skew tolerated between core and this service
	iatLeeway = 30 * time.Second
)

var errForbidden = errors.New("missing required role")

type dstClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

type dstVerifier struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
	now    func() time.Time
}

// WithDSTAuth validates a short-lived Bearer JWT (DST only) issued by core for
// the uploads audience. The token subject becomes the request's user ID.
// When requiredRole is set the token must also carry it.
func WithDSTAuth(jwtPublicKeyPEM, requiredRole string) func(http.Handler) http.Handler {
	// Passthrough if no public key is provided
	if jwtPublicKeyPEM == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(jwtPublicKeyPEM))
	if err != nil {
		panic(fmt.Sprintf("invalid core RSA public key: %v", err))
	}
	v := &dstVerifier{
		key: pubKey,
		// time-based claims are checked by verify, with leeway
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				api.WriteError(w, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			claims, err := v.verify(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
			if err != nil {
				api.WriteError(w, http.StatusUnauthorized, "unauthorized", err)
				return
			}
			if requiredRole != "" && !slices.Contains(claims.Roles, requiredRole) {
				api.WriteError(w, http.StatusForbidden, "forbidden", fmt.Errorf("%w %q for %s", errForbidden, requiredRole, claims.Subject))
				return
			}

			ctx := api_context.WithCaller(r.Context(), api_context.Caller{UserID: claims.Subject, Roles: claims.Roles})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (v *dstVerifier) verify(raw string) (*dstClaims, error) {
	claims := &dstClaims{}
	if _, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	}); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	now := v.now()
	switch {
	case !claims.VerifyIssuer(tokenIssuer, true):
		return nil, errors.New("bad issuer")
	case !claims.VerifyAudience(tokenAudience, true):
		return nil, errors.New("bad audience")
	case !claims.VerifyExpiresAt(now, true):
		return nil, errors.New("token expired")
	case claims.IssuedAt != nil && claims.IssuedAt.After(now.Add(iatLeeway)):
		return nil, errors.New("invalid iat")
	case !claims.VerifyNotBefore(now.Add(iatLeeway), false):
		return nil, errors.New("token not valid yet")
	case claims.Subject == "":
		return nil, errors.New("missing sub")
	}
	return claims, nil
}
