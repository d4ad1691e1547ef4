package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/server/store"
)

func TestListStudentCredentials(t *testing.T) {
	s, deps := newTestServer()
	RegisterStudentEndpoints(s)

	deps.Credentials.On("ListCredentialsByStudent", "STU-001").Return([]model.Credential{
		{
			ID:           1,
			CredentialID: "CRED-1",
			Degree:       "BSc Computer Science",
			IssueDate:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			Status:       model.StatusIssued,
		},
	}, nil)

	req := httptest.NewRequest("GET", "/api/student/credentials?studentId=STU-001", nil)
	rec := httptest.NewRecorder()

	s.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody(t, rec)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, float64(1), result["count"])
	assert.Equal(t, "STU-001", result["studentId"])
}

func TestListStudentCredentialsMissingParam(t *testing.T) {
	s, _ := newTestServer()
	RegisterStudentEndpoints(s)

	req := httptest.NewRequest("GET", "/api/student/credentials", nil)
	rec := httptest.NewRecorder()

	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCredentialProofEndpoint(t *testing.T) {
	s, deps := newTestServer()
	RegisterStudentEndpoints(s)

	deps.Credentials.On("FetchCredential", int64(1)).Return(&model.Credential{
		ID:           1,
		CredentialID: "CRED-1",
		ProofData:    `{"pi_a": ["1"], "protocol": "groth16"}`,
		QRCodeData:   "data:image/png;base64,AAAA",
	}, nil)

	req := httptest.NewRequest("POST", "/api/student/credentials/1/proof", nil)
	rec := httptest.NewRecorder()

	s.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody(t, rec)
	assert.Equal(t, "CRED-1", result["credentialId"])
	assert.Equal(t, "data:image/png;base64,AAAA", result["qrCode"])
	proof, ok := result["proof"].(map[string]interface{})
	require.True(t, ok, "expected proof to be a JSON object")
	assert.Equal(t, "groth16", proof["protocol"])
}

func TestCredentialProofNotFound(t *testing.T) {
	s, deps := newTestServer()
	RegisterStudentEndpoints(s)

	deps.Credentials.On("FetchCredential", int64(42)).Return(nil, store.ErrCredentialNotFound)

	req := httptest.NewRequest("POST", "/api/student/credentials/42/proof", nil)
	rec := httptest.NewRecorder()

	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentProfile(t *testing.T) {
	s, deps := newTestServer()
	RegisterStudentEndpoints(s)

	deps.Users.On("FetchUserByStudentID", "STU-001").Return(&model.User{
		ID:          42,
		StudentID:   "STU-001",
		FullName:    "Alice Johnson",
		Email:       "alice@example.edu",
		Institution: "Example University",
	}, nil)
	deps.Credentials.On("ListCredentialsByStudent", "STU-001").Return([]model.Credential{
		{ID: 1}, {ID: 2},
	}, nil)

	req := httptest.NewRequest("GET", "/api/student/profile?studentId=STU-001", nil)
	rec := httptest.NewRecorder()

	s.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody(t, rec)
	profile, ok := result["profile"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Alice Johnson", profile["name"])
	assert.Equal(t, "Example University", profile["institution"])
	assert.Equal(t, float64(2), profile["credentialCount"])
}

func TestStudentProfileUnknownStudent(t *testing.T) {
	s, deps := newTestServer()
	RegisterStudentEndpoints(s)

	deps.Users.On("FetchUserByStudentID", "STU-404").Return(nil, store.ErrUserNotFound)

	req := httptest.NewRequest("GET", "/api/student/profile?studentId=STU-404", nil)
	rec := httptest.NewRecorder()

	s.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
