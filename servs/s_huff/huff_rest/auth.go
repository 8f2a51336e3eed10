package huff_rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rskv-p/huff/constant"
	"github.com/rskv-p/huff/pkg/x_log"
)

// Claims carried by bearer tokens.
type Claims struct {
	jwt.RegisteredClaims
}

type contextKey string

const claimsContextKey = contextKey("jwt_claims")

// -------- Token issuing --------

// IssueToken signs an HS256 token for subject valid for ttl.
func IssueToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken validates tokenStr and returns its claims.
func ParseToken(secret []byte, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// -------- Middleware: bearer validation --------

// JWTMiddleware rejects requests without a valid bearer token.
func JWTMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractToken(r)
			if tokenStr == "" {
				writeError(w, constant.StatusFor(constant.ErrUnauthorized), constant.ErrUnauthorized.Error())
				return
			}

			claims, err := ParseToken(secret, tokenStr)
			if err != nil {
				x_log.From(r.Context()).Debug().Err(err).Msg("rejected token")
				writeError(w, constant.StatusFor(constant.ErrUnauthorized), fmt.Sprintf("%v: invalid or expired token", constant.ErrUnauthorized))
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the Authorization header, then the token query
// parameter (browsers cannot set headers on websocket upgrades).
func extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// SubjectFromContext returns the token subject stored by JWTMiddleware.
func SubjectFromContext(ctx context.Context) (string, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok {
		return "", false
	}
	return claims.Subject, true
}
