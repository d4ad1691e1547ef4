package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/server/store"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func (m *MockUsersStore) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUsersStore) FetchUser(id int64) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FetchUserByStudentID(studentID string) (*model.User, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUsersStore) FetchUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

var testAttrs = StudentAttributes{
	StudentID:   "STU-001",
	FullName:    "Alice Johnson",
	Email:       "alice@example.edu",
	Institution: "Example University",
}

func TestResolveOrCreateStudentExisting(t *testing.T) {
	users := &MockUsersStore{}
	existing := &model.User{ID: 7, StudentID: "STU-001", FullName: "Alice J"}
	users.On("FetchUserByStudentID", "STU-001").Return(existing, nil)

	student, err := New(users).ResolveOrCreateStudent(testAttrs)
	require.NoError(t, err)

	// The stored record wins even when the supplied attributes differ.
	assert.Equal(t, existing, student)
	users.AssertNotCalled(t, "CreateUser", mock.Anything)
}

func TestResolveOrCreateStudentFirstSight(t *testing.T) {
	users := &MockUsersStore{}
	users.On("FetchUserByStudentID", "STU-001").Return(nil, store.ErrUserNotFound)
	users.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
		return u.StudentID == "STU-001" &&
			u.Role == model.RoleStudent &&
			u.Username == "alice@example.edu" &&
			u.FullName == "Alice Johnson"
	})).Return(nil)

	student, err := New(users).ResolveOrCreateStudent(testAttrs)
	require.NoError(t, err)
	assert.Equal(t, "STU-001", student.StudentID)
	assert.Equal(t, model.RoleStudent, student.Role)
	users.AssertExpectations(t)
}

func TestResolveOrCreateStudentLosesCreateRace(t *testing.T) {
	users := &MockUsersStore{}
	winner := &model.User{ID: 12, StudentID: "STU-001"}

	users.On("FetchUserByStudentID", "STU-001").Return(nil, store.ErrUserNotFound).Once()
	users.On("CreateUser", mock.Anything).Return(store.ErrDuplicateUser)
	users.On("FetchUserByStudentID", "STU-001").Return(winner, nil).Once()

	student, err := New(users).ResolveOrCreateStudent(testAttrs)
	require.NoError(t, err)
	assert.Equal(t, winner, student)
	users.AssertExpectations(t)
}

func TestResolveOrCreateStudentStoreError(t *testing.T) {
	users := &MockUsersStore{}
	boom := errors.New("connection refused")
	users.On("FetchUserByStudentID", "STU-001").Return(nil, boom)

	_, err := New(users).ResolveOrCreateStudent(testAttrs)
	assert.ErrorIs(t, err, boom)
}

func TestResolveIssuer(t *testing.T) {
	users := &MockUsersStore{}
	issuer := &model.User{ID: 3, Role: model.RoleIssuerAdmin}
	users.On("FetchUser", int64(3)).Return(issuer, nil)

	got, err := New(users).ResolveIssuer(3)
	require.NoError(t, err)
	assert.Equal(t, issuer, got)
}

func TestResolveIssuerNotFound(t *testing.T) {
	users := &MockUsersStore{}
	users.On("FetchUser", int64(99)).Return(nil, store.ErrUserNotFound)

	_, err := New(users).ResolveIssuer(99)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
