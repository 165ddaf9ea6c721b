package user

import "context"

// CreateParams contains the fields for creating a new user.
type CreateParams struct {
	Email        string
	FullName     string
	PasswordHash *string
	FirebaseUID  *string
}

// Repository defines data access for users.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}
