package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BUNNY1710/glassshop-backend/internal/apperr"
	"github.com/BUNNY1710/glassshop-backend/internal/httpx"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/user"
	"github.com/BUNNY1710/glassshop-backend/internal/tenant"
)

// UserLookup resolves the user behind a token.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Authenticator turns a bearer token into a tenant.Principal on the request context.
type Authenticator struct {
	tokens *TokenService
	users  UserLookup
	log    *zap.Logger
}

func NewAuthenticator(tokens *TokenService, users UserLookup, log *zap.Logger) *Authenticator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Authenticator{tokens: tokens, users: users, log: log}
}

// Middleware rejects requests without a valid token. The user is reloaded on
// every request so deleted users and role changes take effect immediately.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			httpx.WriteError(w, r, "missing or malformed authorization header", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		claims, err := a.tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			httpx.Error(w, r, a.log, err)
			return
		}

		u, err := a.users.GetUserByID(r.Context(), uuid.MustParse(claims.UserID))
		if errors.Is(err, apperr.ErrNotFound) {
			httpx.WriteError(w, r, "user not found", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}
		if err != nil {
			httpx.Error(w, r, a.log, err)
			return
		}
		if !u.ShopID.Valid {
			httpx.WriteError(w, r, "user is not linked to any shop", "FORBIDDEN", http.StatusForbidden)
			return
		}

		ctx := tenant.WithPrincipal(r.Context(), tenant.Principal{
			UserID:   u.ID,
			ShopID:   u.ShopID.UUID,
			Username: u.Username,
			Role:     u.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
