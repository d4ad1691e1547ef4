package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trustseal/trustseal-go/pkg/server"
	"github.com/trustseal/trustseal-go/pkg/server/store"
)

// RegisterStudentEndpoints registers the holder-facing endpoints. Students
// are keyed by their external student identifier; holder authentication is
// out of scope for this service.
func RegisterStudentEndpoints(s *server.Server) {
	studentRouter := s.Router.PathPrefix("/api/student").Subrouter()

	// GET /api/student/credentials?studentId=... - List a student's credentials
	studentRouter.HandleFunc("/credentials", handleListStudentCredentials(s.CredentialsStore)).Methods("GET")

	// GET /api/student/credentials/{id} - Fetch a credential by internal ID
	studentRouter.HandleFunc("/credentials/{id:[0-9]+}", handleFetchCredential(s.CredentialsStore)).Methods("GET")

	// POST /api/student/credentials/{id}/proof - Retrieve the proof material
	studentRouter.HandleFunc("/credentials/{id:[0-9]+}/proof", handleCredentialProof(s.CredentialsStore)).Methods("POST")

	// GET /api/student/profile?studentId=... - Student profile
	studentRouter.HandleFunc("/profile", handleStudentProfile(s.UsersStore, s.CredentialsStore)).Methods("GET")
}

func handleListStudentCredentials(credentialsStore store.CredentialsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("studentId")
		if studentID == "" {
			respondWithError(w, http.StatusBadRequest, "studentId parameter required")
			return
		}

		credentials, err := credentialsStore.ListCredentialsByStudent(studentID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch credentials")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"credentials": newCredentialViews(credentials),
			"count":       len(credentials),
			"studentId":   studentID,
		})
	}
}

// handleCredentialProof returns the proof material minted at issuance time.
// The proof is generated once by the worker and stored; retrieval is a plain
// read.
func handleCredentialProof(credentialsStore store.CredentialsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.ParseInt(vars["id"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed credential id")
			return
		}

		cred, err := credentialsStore.FetchCredential(id)
		if err != nil {
			if errors.Is(err, store.ErrCredentialNotFound) {
				respondWithError(w, http.StatusNotFound, "credential not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch credential")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"credentialId": cred.CredentialID,
			"proof":        proofBlob(cred.ProofData),
			"qrCode":       cred.QRCodeData,
			"message":      "Proof generated successfully",
		})
	}
}

func handleStudentProfile(usersStore store.UsersStore, credentialsStore store.CredentialsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := r.URL.Query().Get("studentId")
		if studentID == "" {
			respondWithError(w, http.StatusBadRequest, "studentId parameter required")
			return
		}

		student, err := usersStore.FetchUserByStudentID(studentID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, "student not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "failed to fetch profile")
			return
		}

		credentials, err := credentialsStore.ListCredentialsByStudent(studentID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch profile")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"profile": map[string]interface{}{
				"studentId":       student.StudentID,
				"name":            student.FullName,
				"email":           student.Email,
				"institution":     student.Institution,
				"credentialCount": len(credentials),
			},
		})
	}
}
