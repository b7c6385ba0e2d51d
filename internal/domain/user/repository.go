package user

import "context"

// UserRepository defines data access methods for users.
type UserRepository interface {
	// Create inserts a new user
	Create(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListActive retrieves all active users
	ListActive(ctx context.Context) ([]User, error)

	// ListEmployeesOfTTF retrieves active employees reporting to the given TTF
	ListEmployeesOfTTF(ctx context.Context, ttfID string) ([]User, error)

	// ListTTFsOfSuperTTF retrieves active TTFs reporting to the given Super TTF
	ListTTFsOfSuperTTF(ctx context.Context, sttfID string) ([]User, error)

	// Deactivate flips is_active to false
	Deactivate(ctx context.Context, id string) error
}
