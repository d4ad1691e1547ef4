package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/trustseal/trustseal-go/pkg/audit"
	"github.com/trustseal/trustseal-go/pkg/credential"
	"github.com/trustseal/trustseal-go/pkg/identity"
	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/server"
	"github.com/trustseal/trustseal-go/pkg/server/store"
	"github.com/trustseal/trustseal-go/pkg/worker"
)

// RegisterIssuerEndpoints registers the issuer-facing endpoints. All of them
// require an authenticated caller; the issuance handler additionally requires
// the issuer role.
func RegisterIssuerEndpoints(s *server.Server) {
	issuerRouter := s.Router.PathPrefix("/api/issuer").Subrouter()
	issuerRouter.Use(s.JWTMiddleware.Middleware)

	// POST /api/issuer/credentials - Issue a new credential
	issuerRouter.HandleFunc("/credentials", handleIssueCredential(s.Issuance)).Methods("POST")

	// GET /api/issuer/credentials?institution=... - List issued credentials
	issuerRouter.HandleFunc("/credentials", handleListIssuedCredentials(s.CredentialsStore)).Methods("GET")

	// GET /api/issuer/credentials/{id} - Fetch a credential by internal ID
	issuerRouter.HandleFunc("/credentials/{id:[0-9]+}", handleFetchCredential(s.CredentialsStore)).Methods("GET")
}

func handleIssueCredential(issuance *credential.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !caller.CanIssue() {
			respondWithError(w, http.StatusForbidden, "caller is not an issuer")
			return
		}

		var req credential.IssueRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		cred, err := issuance.Issue(r.Context(), req, caller.UserID)
		if err != nil {
			audit.Log(audit.IssueEvent{
				IssuerUsername: caller.Username,
				StudentID:      req.StudentID,
				Degree:         req.Degree,
				Institution:    req.Institution,
				ClientIP:       r.RemoteAddr,
				Success:        false,
				ErrorMessage:   err.Error(),
			})
			respondWithIssueError(w, err)
			return
		}

		audit.Log(audit.IssueEvent{
			IssuerUsername: caller.Username,
			StudentID:      req.StudentID,
			Degree:         req.Degree,
			Institution:    req.Institution,
			CredentialID:   cred.CredentialID,
			ClientIP:       r.RemoteAddr,
			Success:        true,
		})

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"message":      "Credential issued successfully",
			"credentialId": cred.CredentialID,
			"credential":   newCredentialView(cred),
			"proof":        proofBlob(cred.ProofData),
			"qrCode":       cred.QRCodeData,
		})
	}
}

// respondWithIssueError maps orchestration failures onto status codes. Every
// failure is a structured response; nothing here is fatal to the process.
func respondWithIssueError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, credential.ErrValidation):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrDuplicateCredential):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, worker.ErrWorker):
		respondWithError(w, http.StatusBadGateway, "failed to issue credential: proof worker unavailable")
	default:
		respondWithError(w, http.StatusInternalServerError, "failed to issue credential")
	}
}

func handleListIssuedCredentials(credentialsStore store.CredentialsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		var (
			credentials []model.Credential
			err         error
		)
		if institution := r.URL.Query().Get("institution"); institution != "" {
			credentials, err = credentialsStore.ListCredentialsByInstitution(institution)
		} else {
			credentials, err = credentialsStore.ListCredentialsByIssuer(caller.UserID)
		}
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch credentials")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"credentials": newCredentialViews(credentials),
			"count":       len(credentials),
		})
	}
}

func handleFetchCredential(credentialsStore store.CredentialsStore) http.HandlerFunc {
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
			"success":    true,
			"credential": newCredentialView(cred),
		})
	}
}
