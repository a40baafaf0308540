package middleware

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// unexported type prevents collisions in context
type ctxKey int

const userEmailKey ctxKey = iota

const defaultExpireMinutes = 30

func jwtKey() []byte {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		secret = "mi_clave_super_secreta_cambiar_en_produccion"
	}
	return []byte(secret)
}

func tokenTTL() time.Duration {
	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultExpireMinutes * time.Minute
}

// GenerateToken creates a signed HS256 token with the user's email as subject.
func GenerateToken(email string) (string, error) {
	return generateTokenWithTTL(email, tokenTTL())
}

func generateTokenWithTTL(email string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

// VerifyToken returns the email subject of a valid token, or "" when the token
// is malformed, badly signed or expired. Callers never learn which.
func VerifyToken(tokenStr string) string {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return ""
	}
	return claims.Subject
}

// JWTMiddleware validates the bearer token and stashes the email in ctx.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(w)
			return
		}
		email := VerifyToken(parts[1])
		if email == "" {
			unauthorized(w)
			return
		}
		ctx := context.WithValue(r.Context(), userEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"detail":"No se pudo validar el token"}`))
}

// GetEmail pulls the authenticated email out of the request context (or "").
func GetEmail(r *http.Request) string {
	if email, ok := r.Context().Value(userEmailKey).(string); ok {
		return email
	}
	return ""
}
