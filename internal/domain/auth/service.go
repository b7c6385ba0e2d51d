package auth

import "context"

// AuthService issues and refreshes token pairs for local credentials.
type AuthService interface {
	// Login verifies credentials and returns a token pair.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh rotates a valid refresh token into a new token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string)
}
