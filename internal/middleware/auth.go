package middleware

import (
	"context"
	"net/http"
	"strings"

	"reel_engine/pkg/token"

	"go.uber.org/zap"
)

// Auth проверяет bearer-токен оператора. С пустым секретом пропускает всех
func Auth(secretKey []byte, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(secretKey) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				reqID, _ := RequestIDFromContext(r.Context())
				log.Warn("rejected operator token", zap.String("request_id", reqID), zap.Error(err))
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), operatorKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func OperatorFromContext(ctx context.Context) (string, bool) {
	op, ok := ctx.Value(operatorKey).(string)
	return op, ok
}
