package auth

import "context"

// AuthService authenticates employees and issues token pairs. Google login
// resolves the OAuth code to a verified email and requires an existing
// employee record; it never provisions accounts.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	LoginWithGoogle(ctx context.Context, code string) (LoginResponse, error)
	GoogleAuthURL(state string) string
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
	Logout(ctx context.Context, accessToken string) error
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
