package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/trustseal/trustseal-go/pkg/audit"
	"github.com/trustseal/trustseal-go/pkg/credential"
	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/server"
	"github.com/trustseal/trustseal-go/pkg/server/store"
	"github.com/trustseal/trustseal-go/pkg/worker"
)

// RegisterVerifierEndpoints registers the verifier-facing endpoints.
// Verification never surfaces worker failures as errors: a proof that cannot
// be checked is reported as invalid.
func RegisterVerifierEndpoints(s *server.Server) {
	verifierRouter := s.Router.PathPrefix("/api/verifier").Subrouter()

	// POST /api/verifier/proofs/verify - Verify a proof
	verifierRouter.HandleFunc("/proofs/verify", handleVerifyProof(s.Verifier)).Methods("POST")

	// POST /api/verifier/credentials/verify-qr - Verify a scanned QR payload
	verifierRouter.HandleFunc("/credentials/verify-qr", handleVerifyQR(s.Verifier)).Methods("POST")

	// GET /api/verifier/stats - Verification and issuance statistics
	verifierRouter.HandleFunc("/stats", handleVerifierStats(s.Verifier, s.CredentialsStore)).Methods("GET")

	// GET /api/verifier/health - Worker reachability check
	verifierRouter.HandleFunc("/health", handleVerifierHealth(s.WorkerClient)).Methods("GET")
}

type verifyRequest struct {
	Proof        json.RawMessage `json:"proof"`
	PublicInputs json.RawMessage `json:"publicInputs"`
}

// rawField flattens a JSON field to the string handed to the worker. A quoted
// string loses its quotes; any other JSON value passes through verbatim.
func rawField(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func handleVerifyProof(verifier *credential.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		result, err := verifier.Verify(r.Context(), rawField(req.Proof), rawField(req.PublicInputs))
		if err != nil {
			if errors.Is(err, credential.ErrValidation) {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, "verification failed")
			return
		}

		respondWithVerification(w, r, result)
	}
}

type verifyQRRequest struct {
	QRCodeData   json.RawMessage `json:"qrCodeData"`
	PublicInputs json.RawMessage `json:"publicInputs"`
}

// handleVerifyQR verifies a proof payload scanned from a credential QR code.
// The scanned payload is the proof itself, so this is verification with a
// different intake shape.
func handleVerifyQR(verifier *credential.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyQRRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "malformed request body")
			return
		}

		result, err := verifier.Verify(r.Context(), rawField(req.QRCodeData), rawField(req.PublicInputs))
		if err != nil {
			if errors.Is(err, credential.ErrValidation) {
				respondWithError(w, http.StatusBadRequest, err.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError, "verification failed")
			return
		}

		respondWithVerification(w, r, result)
	}
}

func respondWithVerification(w http.ResponseWriter, r *http.Request, result credential.VerifyResult) {
	audit.Log(audit.VerifyEvent{ClientIP: r.RemoteAddr, IsValid: result.IsValid})

	message := "Proof is invalid"
	if result.IsValid {
		message = "Proof is valid"
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"isValid":   result.IsValid,
		"message":   message,
		"timestamp": result.Timestamp.UnixMilli(),
	})
}

func handleVerifierStats(verifier *credential.Verifier, credentialsStore store.CredentialsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issued, err := credentialsStore.CountCredentialsByStatus(model.StatusIssued)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to fetch statistics")
			return
		}

		stats := verifier.Stats()
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":                 true,
			"issuedCredentials":       issued,
			"totalVerifications":      stats.Total,
			"successfulVerifications": stats.Successful,
			"failedVerifications":     stats.Failed,
		})
	}
}

func handleVerifierHealth(workerClient worker.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := workerClient.CheckHealth(r.Context()); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
				"success": false,
				"status":  "degraded",
				"worker":  "unreachable",
			})
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"status":  "ok",
			"worker":  "reachable",
		})
	}
}
