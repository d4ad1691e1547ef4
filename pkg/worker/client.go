package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ErrWorker is returned when the proof worker is unreachable, responds with a
// non-success status, or omits required response fields during issuance.
var ErrWorker = errors.New("proof worker request failed")

// IssueRequest carries the claim attributes the worker needs to mint a
// credential and generate its proof.
type IssueRequest struct {
	StudentName string `json:"studentName"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	IssueDate   string `json:"issueDate"`
	StudentID   string `json:"studentId"`
}

// IssueResult is the worker's answer to an issuance request. CredentialID is
// the external identifier; Proof and QRCode are opaque blobs stored and
// returned verbatim.
type IssueResult struct {
	CredentialID string
	Proof        string
	QRCode       string
}

// Client abstracts the proof worker peer so the orchestrator and forwarder
// can be tested against doubles.
type Client interface {
	// RequestIssuance asks the worker to mint a credential and generate its
	// proof. Any peer failure is reported as ErrWorker.
	RequestIssuance(ctx context.Context, req IssueRequest) (*IssueResult, error)

	// VerifyProof checks a proof against public inputs. Any peer failure is
	// mapped to false, never an error.
	VerifyProof(ctx context.Context, proof, publicInputs string) bool

	// CheckHealth verifies the worker is reachable
	CheckHealth(ctx context.Context) error
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the proof worker over HTTP
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a proof worker client. The timeout bounds every call;
// the worker call is a synchronous boundary and the orchestrator blocks on it.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type issueResponse struct {
	Success      bool            `json:"success"`
	CredentialID string          `json:"credentialId"`
	Proof        json.RawMessage `json:"proof"`
	QRCode       string          `json:"qrCode"`
	Error        string          `json:"error"`
}

type verifyResponse struct {
	IsValid *bool `json:"isValid"`
}

// RequestIssuance asks the worker to mint a credential and generate its proof
func (c *HTTPClient) RequestIssuance(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	var parsed issueResponse
	if err := c.post(ctx, "/issue", req, &parsed); err != nil {
		return nil, fmt.Errorf("issue: %w: %v", ErrWorker, err)
	}

	if !parsed.Success {
		msg := parsed.Error
		if msg == "" {
			msg = "worker reported failure"
		}
		return nil, fmt.Errorf("issue: %w: %s", ErrWorker, msg)
	}
	if parsed.CredentialID == "" || len(parsed.Proof) == 0 {
		return nil, fmt.Errorf("issue: %w: response missing credentialId or proof", ErrWorker)
	}

	return &IssueResult{
		CredentialID: parsed.CredentialID,
		Proof:        string(parsed.Proof),
		QRCode:       parsed.QRCode,
	}, nil
}

// VerifyProof checks a proof against public inputs. Fail-closed: transport
// errors, malformed responses, and missing results all come back as false.
func (c *HTTPClient) VerifyProof(ctx context.Context, proof, publicInputs string) bool {
	// Proof blobs are opaque. If they already carry JSON they are forwarded
	// verbatim; otherwise they go over the wire as strings.
	body := map[string]json.RawMessage{
		"proof":        rawOrString(proof),
		"publicInputs": rawOrString(publicInputs),
	}

	var parsed verifyResponse
	if err := c.post(ctx, "/verify", body, &parsed); err != nil {
		log.Printf("proof verification unavailable, treating as invalid: %v", err)
		return false
	}
	if parsed.IsValid == nil {
		log.Printf("proof verification response missing isValid, treating as invalid")
		return false
	}
	return *parsed.IsValid
}

// CheckHealth verifies the worker is reachable
func (c *HTTPClient) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWorker, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned status %d", ErrWorker, resp.StatusCode)
	}
	return nil
}

func rawOrString(value string) json.RawMessage {
	if json.Valid([]byte(value)) {
		return json.RawMessage(value)
	}
	quoted, _ := json.Marshal(value)
	return quoted
}

func (c *HTTPClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("worker returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("malformed worker response: %v", err)
	}
	return nil
}
