package endpoints

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/worker"
)

// MockUsersStore implements store.UsersStore for testing using testify/mock
type MockUsersStore struct {
	mock.Mock
}

func NewMockUsersStore() *MockUsersStore {
	return &MockUsersStore{}
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

// MockCredentialsStore implements store.CredentialsStore for testing using testify/mock
type MockCredentialsStore struct {
	mock.Mock
}

func NewMockCredentialsStore() *MockCredentialsStore {
	return &MockCredentialsStore{}
}

func (m *MockCredentialsStore) SaveCredential(credential *model.Credential) error {
	args := m.Called(credential)
	return args.Error(0)
}

func (m *MockCredentialsStore) FetchCredential(id int64) (*model.Credential, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) FetchCredentialByCredentialID(credentialID string) (*model.Credential, error) {
	args := m.Called(credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) ListCredentialsByStudent(studentID string) ([]model.Credential, error) {
	args := m.Called(studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) ListCredentialsByIssuer(issuerID int64) ([]model.Credential, error) {
	args := m.Called(issuerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) ListCredentialsByInstitution(institution string) ([]model.Credential, error) {
	args := m.Called(institution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) ListCredentialsByStatus(status model.Status) ([]model.Credential, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) ListCredentialsByDegree(degree string) ([]model.Credential, error) {
	args := m.Called(degree)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) ListCredentials() ([]model.Credential, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockCredentialsStore) CountCredentialsByStatus(status model.Status) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckDatabase() error {
	args := m.Called()
	return args.Error(0)
}

// MockWorkerClient implements worker.Client for testing using testify/mock
type MockWorkerClient struct {
	mock.Mock
}

func NewMockWorkerClient() *MockWorkerClient {
	return &MockWorkerClient{}
}

func (m *MockWorkerClient) RequestIssuance(ctx context.Context, req worker.IssueRequest) (*worker.IssueResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.IssueResult), args.Error(1)
}

func (m *MockWorkerClient) VerifyProof(ctx context.Context, proof, publicInputs string) bool {
	args := m.Called(ctx, proof, publicInputs)
	return args.Bool(0)
}

func (m *MockWorkerClient) CheckHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
