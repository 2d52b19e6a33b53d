package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"donationledger/internal/domain"
)

// CallerClaims identifies the caller of a request. The subject is the ledger
// address the caller acts as.
type CallerClaims struct {
	jwt.RegisteredClaims
}

type callerKey struct{}

// SignJWT issues an HS256 token for subject valid for ttl. A zero ttl means no
// expiry.
func SignJWT(secret, issuer string, subject domain.Address, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := CallerClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:  subject.String(),
		Issuer:   issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyJWT checks the signature, expiry and, when issuer is set, the issuer
// of token.
func VerifyJWT(secret, issuer, token string) (*CallerClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	claims := &CallerClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}

// AuthJWT rejects requests without a valid bearer token and stores the caller
// address in the request context.
func AuthJWT(secret, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "missing authorization")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeAuthError(w, "invalid authorization")
				return
			}
			claims, err := VerifyJWT(secret, issuer, strings.TrimSpace(parts[1]))
			if err != nil {
				writeAuthError(w, "invalid token")
				return
			}
			caller, err := domain.ParseAddress(claims.Subject)
			if err != nil {
				writeAuthError(w, "invalid subject")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithCaller(r.Context(), caller)))
		})
	}
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"unauthenticated","message":"` + msg + `"}}`))
}

func CallerFromContext(ctx context.Context) (domain.Address, bool) {
	v, ok := ctx.Value(callerKey{}).(domain.Address)
	return v, ok && v != ""
}

func ContextWithCaller(ctx context.Context, caller domain.Address) context.Context {
	if caller == "" {
		return ctx
	}
	return context.WithValue(ctx, callerKey{}, caller)
}
