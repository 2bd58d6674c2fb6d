package usecase

import "context"

// AuthProvider is the slice of the identity platform the auth flows need.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	DisableUser(ctx context.Context, uid string) error
	DeleteUser(ctx context.Context, uid string) error
}

// CredentialSignIn exchanges credentials for tokens over the identity
// platform's REST surface.
type CredentialSignIn interface {
	SignInWithEmailPassword(ctx context.Context, email, password string) (idToken, refreshToken string, err error)
	RefreshIDToken(ctx context.Context, refreshToken string) (idToken, newRefreshToken string, err error)
}
