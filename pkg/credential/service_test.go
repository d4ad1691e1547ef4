package credential

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/registry"
	"github.com/trustseal/trustseal-go/pkg/server/store"
	"github.com/trustseal/trustseal-go/pkg/worker"
)

var validRequest = IssueRequest{
	StudentName:  "Alice Johnson",
	Degree:       "BSc Computer Science",
	Institution:  "Example University",
	IssueDate:    "2024-06-15",
	StudentID:    "STU-001",
	StudentEmail: "alice@example.edu",
}

func newTestService(users *MockUsersStore, credentials *MockCredentialsStore, workerClient *MockWorkerClient) *Service {
	return NewService(registry.New(users), credentials, workerClient)
}

func expectIssuer(users *MockUsersStore, id int64) *model.User {
	issuer := &model.User{ID: id, Username: "registrar@example.edu", Role: model.RoleIssuerAdmin}
	users.On("FetchUser", id).Return(issuer, nil)
	return issuer
}

func expectStudent(users *MockUsersStore, studentID string) *model.User {
	student := &model.User{ID: 42, StudentID: studentID, Role: model.RoleStudent}
	users.On("FetchUserByStudentID", studentID).Return(student, nil)
	return student
}

func TestIssue(t *testing.T) {
	users := &MockUsersStore{}
	credentials := &MockCredentialsStore{}
	workerClient := &MockWorkerClient{}

	issuer := expectIssuer(users, 3)
	student := expectStudent(users, "STU-001")

	workerClient.On("RequestIssuance", mock.Anything, worker.IssueRequest{
		StudentName: "Alice Johnson",
		Degree:      "BSc Computer Science",
		Institution: "Example University",
		IssueDate:   "2024-06-15",
		StudentID:   "STU-001",
	}).Return(&worker.IssueResult{
		CredentialID: "CRED-2024-001",
		Proof:        `{"pi_a": ["1"]}`,
		QRCode:       "data:image/png;base64,AAAA",
	}, nil)

	credentials.On("SaveCredential", mock.MatchedBy(func(c *model.Credential) bool {
		return c.CredentialID == "CRED-2024-001" &&
			c.StudentID == student.ID &&
			c.IssuerID == issuer.ID &&
			c.Status == model.StatusIssued &&
			c.ProofData == `{"pi_a": ["1"]}` &&
			c.IssueDate.Equal(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	cred, err := newTestService(users, credentials, workerClient).Issue(context.Background(), validRequest, 3)
	require.NoError(t, err)

	assert.Equal(t, "CRED-2024-001", cred.CredentialID)
	assert.Equal(t, student, cred.Student)
	assert.Equal(t, issuer, cred.Issuer)
	credentials.AssertExpectations(t)
	workerClient.AssertExpectations(t)
}

func TestIssueValidationFailsBeforeAnyCall(t *testing.T) {
	users := &MockUsersStore{}
	credentials := &MockCredentialsStore{}
	workerClient := &MockWorkerClient{}

	req := validRequest
	req.Degree = ""

	_, err := newTestService(users, credentials, workerClient).Issue(context.Background(), req, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "degree")

	users.AssertNotCalled(t, "FetchUser", mock.Anything)
	workerClient.AssertNotCalled(t, "RequestIssuance", mock.Anything, mock.Anything)
	credentials.AssertNotCalled(t, "SaveCredential", mock.Anything)
}

func TestIssueRejectsMalformedIssueDate(t *testing.T) {
	req := validRequest
	req.IssueDate = "15/06/2024"

	_, err := newTestService(&MockUsersStore{}, &MockCredentialsStore{}, &MockWorkerClient{}).
		Issue(context.Background(), req, 3)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIssueUnknownIssuer(t *testing.T) {
	users := &MockUsersStore{}
	credentials := &MockCredentialsStore{}
	workerClient := &MockWorkerClient{}

	users.On("FetchUser", int64(99)).Return(nil, store.ErrUserNotFound)

	_, err := newTestService(users, credentials, workerClient).Issue(context.Background(), validRequest, 99)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
	workerClient.AssertNotCalled(t, "RequestIssuance", mock.Anything, mock.Anything)
}

func TestIssueWorkerFailureWritesNothing(t *testing.T) {
	users := &MockUsersStore{}
	credentials := &MockCredentialsStore{}
	workerClient := &MockWorkerClient{}

	expectIssuer(users, 3)
	expectStudent(users, "STU-001")
	workerClient.On("RequestIssuance", mock.Anything, mock.Anything).
		Return(nil, worker.ErrWorker)

	_, err := newTestService(users, credentials, workerClient).Issue(context.Background(), validRequest, 3)
	assert.ErrorIs(t, err, worker.ErrWorker)
	credentials.AssertNotCalled(t, "SaveCredential", mock.Anything)
}

func TestIssueDuplicateCredential(t *testing.T) {
	users := &MockUsersStore{}
	credentials := &MockCredentialsStore{}
	workerClient := &MockWorkerClient{}

	expectIssuer(users, 3)
	expectStudent(users, "STU-001")
	workerClient.On("RequestIssuance", mock.Anything, mock.Anything).
		Return(&worker.IssueResult{CredentialID: "CRED-1", Proof: "{}"}, nil)
	credentials.On("SaveCredential", mock.Anything).Return(store.ErrDuplicateCredential)

	_, err := newTestService(users, credentials, workerClient).Issue(context.Background(), validRequest, 3)
	assert.ErrorIs(t, err, store.ErrDuplicateCredential)
}

func TestIssueCreatesStudentOnFirstSight(t *testing.T) {
	users := &MockUsersStore{}
	credentials := &MockCredentialsStore{}
	workerClient := &MockWorkerClient{}

	expectIssuer(users, 3)
	users.On("FetchUserByStudentID", "STU-001").Return(nil, store.ErrUserNotFound)
	users.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
		return u.StudentID == "STU-001" && u.Role == model.RoleStudent && u.Email == "alice@example.edu"
	})).Return(nil)

	workerClient.On("RequestIssuance", mock.Anything, mock.Anything).
		Return(&worker.IssueResult{CredentialID: "CRED-1", Proof: "{}"}, nil)
	credentials.On("SaveCredential", mock.Anything).Return(nil)

	cred, err := newTestService(users, credentials, workerClient).Issue(context.Background(), validRequest, 3)
	require.NoError(t, err)
	assert.Equal(t, "STU-001", cred.Student.StudentID)
	users.AssertExpectations(t)
}
