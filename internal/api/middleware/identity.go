package middleware

import (
	"context"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
)

type identityKey struct{}

// WithIdentity кладет личность вызывающего в контекст запроса
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity достает личность вызывающего, установленную Auth
func GetIdentity(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*domain.Identity)
	return identity, ok && identity != nil
}
