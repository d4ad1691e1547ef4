package gorm

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/server/store"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser inserts a new user
func (s *UsersStore) CreateUser(user *model.User) error {
	if user == nil {
		return fmt.Errorf("user is required")
	}
	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user: %w", store.ErrDuplicateUser)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FetchUser retrieves a user by internal ID
func (s *UsersStore) FetchUser(id int64) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return &user, nil
}

// FetchUserByStudentID retrieves a student by their student identifier
func (s *UsersStore) FetchUserByStudentID(studentID string) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, "student_id = ?", studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user by student id: %w", err)
	}
	return &user, nil
}

// FetchUserByUsername retrieves a user by username
func (s *UsersStore) FetchUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user by username: %w", err)
	}
	return &user, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
