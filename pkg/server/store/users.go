package store

import (
	"errors"

	"github.com/trustseal/trustseal-go/pkg/model"
)

var (
	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUser is returned when an insert violates the username or
	// student_id uniqueness constraint. Callers doing get-or-create treat it
	// as "lost the race, fetch again".
	ErrDuplicateUser = errors.New("user already exists")
)

// UsersStore abstracts user storage operations
type UsersStore interface {
	// CreateUser inserts a new user. Returns ErrDuplicateUser if the
	// username or student identifier is already taken.
	CreateUser(user *model.User) error

	// FetchUser retrieves a user by internal ID
	FetchUser(id int64) (*model.User, error)

	// FetchUserByStudentID retrieves a student by their institution-assigned
	// student identifier
	FetchUserByStudentID(studentID string) (*model.User, error)

	// FetchUserByUsername retrieves a user by username
	FetchUserByUsername(username string) (*model.User, error)
}
