package provider

import (
	"context"

	"github.com/wekeepgrowing/audit-service/internal/domain/entity"
)

// AuthProvider delegates credential handling to the hosted auth service.
// The audit service never stores credentials itself.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error)
	SignUp(ctx context.Context, email, password string) (*entity.AuthUser, error)
	SignOut(ctx context.Context, accessToken string) error
	ResetPassword(ctx context.Context, email string) error
	GetUser(ctx context.Context, accessToken string) (*entity.AuthUser, error)
}
