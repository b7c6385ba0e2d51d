package user

import "context"

// UserService is the directory: admin-managed accounts and role-scoped
// listings along the reporting chain.
type UserService interface {
	// Create registers a user with a hashed password. Admin only.
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)

	// GetByID returns one user.
	GetByID(ctx context.Context, id string) (UserResponse, error)

	// ListForRequester scopes the listing by the requester's role:
	// admins see every active user, a Super TTF their TTFs, a TTF
	// their employees.
	ListForRequester(ctx context.Context, requesterID string) (ListUsersResponse, error)

	// Deactivate soft-deletes a user. Admin only.
	Deactivate(ctx context.Context, id string) error
}
