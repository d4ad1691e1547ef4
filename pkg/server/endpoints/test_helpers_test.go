package endpoints

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/trustseal/trustseal-go/pkg/credential"
	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/registry"
	"github.com/trustseal/trustseal-go/pkg/server"
	"github.com/trustseal/trustseal-go/pkg/server/middleware"
)

var testJWTSecret = []byte("endpoint-test-secret")

// testDeps bundles the mocks behind a wired test server
type testDeps struct {
	Users       *MockUsersStore
	Credentials *MockCredentialsStore
	Health      *MockHealthStore
	Worker      *MockWorkerClient
}

// newTestServer wires a server instance onto mocks, without a database
func newTestServer() (*server.Server, *testDeps) {
	deps := &testDeps{
		Users:       NewMockUsersStore(),
		Credentials: NewMockCredentialsStore(),
		Health:      NewMockHealthStore(),
		Worker:      NewMockWorkerClient(),
	}

	reg := registry.New(deps.Users)
	s := &server.Server{
		Router:           mux.NewRouter().UseEncodedPath(),
		UsersStore:       deps.Users,
		CredentialsStore: deps.Credentials,
		HealthStore:      deps.Health,
		Registry:         reg,
		Issuance:         credential.NewService(reg, deps.Credentials, deps.Worker),
		Verifier:         credential.NewVerifier(deps.Worker),
		WorkerClient:     deps.Worker,
		JWTMiddleware:    middleware.NewJWTAuthenticator(testJWTSecret),
	}
	return s, deps
}

// mintTestToken creates a bearer token accepted by the test server
func mintTestToken(t *testing.T, s *server.Server, userID int64, username string, role model.Role) string {
	t.Helper()
	token, err := s.JWTMiddleware.MintToken(userID, username, role, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

// decodeBody parses a JSON response body into a generic map
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("failed to parse response %q: %v", body, err)
	}
	return parsed
}
