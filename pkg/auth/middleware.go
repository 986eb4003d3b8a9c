package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/pkg/utils"
)

type ContextKey string

const UserIDKey ContextKey = "userID"

const bearerPrefix = "Bearer "

// Middleware puts the verified caller id under UserIDKey.
func Middleware(provider IdentityProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := provider.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				zap.L().Debug("rejected bearer token", zap.String("path", r.URL.Path), zap.Error(err))
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			userID, _ := claims.UserID()

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserIDKey, userID)))
		})
	}
}

func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(UserIDKey).(int)
	return id, ok && id != 0
}
