package auth

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"hospedaria/internal/errs"

	"github.com/golang-jwt/jwt/v5"
)

// AdminAuthMiddleware valida o Bearer token emitido no login de admin.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeHTTPError(w, errs.ErrUnauthorized("Unauthorized"))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			writeHTTPError(w, errs.NewHTTPError(http.StatusInternalServerError, "Server misconfigured"))
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			writeHTTPError(w, errs.ErrUnauthorized("Unauthorized"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeHTTPError(w http.ResponseWriter, httpErr *errs.HTTPError) {
	http.Error(w, httpErr.Message, httpErr.Code)
}
