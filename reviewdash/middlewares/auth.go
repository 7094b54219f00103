// reviewdash/middlewares/auth.go
package middlewares

import (
	"context"
	"net/http"
	"strings"

	"reviewdash/reviewdash/config"
	"reviewdash/reviewdash/utils/logging"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const SubjectKey contextKey = "subject"

const RoleAdmin = "admin"

// AdminMiddleware requires a bearer token signed with JWT_SECRET carrying
// role=admin. With no secret configured every request passes.
func AdminMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	if cfg.JWTSecret == "" {
		logging.AppLogger.Warn("JWT_SECRET is empty, admin routes are unprotected")
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			parts := strings.Split(auth, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			tokenStr := parts[1]
			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if role, _ := claims["role"].(string); role != RoleAdmin {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			subject, _ := claims.GetSubject()
			ctx := context.WithValue(r.Context(), SubjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
