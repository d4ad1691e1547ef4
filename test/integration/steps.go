package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cucumber/godog"

	"github.com/trustseal/trustseal-go/pkg/model"
)

// StepsContext carries state across the steps of a single scenario
type StepsContext struct {
	tc *TestContext

	issuerToken string

	lastStatus int
	lastBody   map[string]interface{}
	lastRaw    []byte

	issuedProof        json.RawMessage
	issuedCredentialID string
	issuedInternalID   int64
}

func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps wires the step definitions into the godog scenario context
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a registered issuer "([^"]*)" at "([^"]*)"$`, s.aRegisteredIssuer)
	sc.Step(`^the issuer issues a "([^"]*)" credential for student "([^"]*)" named "([^"]*)"$`, s.theIssuerIssuesACredential)
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should contain a credential id$`, s.theResponseShouldContainACredentialID)
	sc.Step(`^student "([^"]*)" should have (\d+) credentials?$`, s.studentShouldHaveCredentials)
	sc.Step(`^the student fetches the proof for the issued credential$`, s.theStudentFetchesTheProof)
	sc.Step(`^the proof response should match the issued credential$`, s.theProofResponseShouldMatch)
	sc.Step(`^a verifier checks the fetched proof$`, s.aVerifierChecksTheFetchedProof)
	sc.Step(`^a verifier checks the proof "([^"]*)"$`, s.aVerifierChecksTheProof)
	sc.Step(`^the proof should be reported (valid|invalid)$`, s.theProofShouldBeReported)
	sc.Step(`^the proof worker is (down|up)$`, s.theProofWorkerIs)
	sc.Step(`^the verifier health should report worker "([^"]*)"$`, s.theVerifierHealthShouldReportWorker)
}

func (s *StepsContext) aRegisteredIssuer(username, institution string) error {
	issuer := model.User{
		Username:    username,
		Email:       username,
		FullName:    "Integration Registrar",
		Role:        model.RoleIssuerAdmin,
		Institution: institution,
	}
	if err := s.tc.DB.Where("username = ?", username).FirstOrCreate(&issuer).Error; err != nil {
		return fmt.Errorf("failed to create issuer: %w", err)
	}

	token, err := s.tc.Server.JWTMiddleware.MintToken(issuer.ID, issuer.Username, issuer.Role, time.Hour)
	if err != nil {
		return fmt.Errorf("failed to mint issuer token: %w", err)
	}
	s.issuerToken = token
	return nil
}

func (s *StepsContext) theIssuerIssuesACredential(degree, studentID, studentName string) error {
	payload := map[string]string{
		"studentName":  studentName,
		"degree":       degree,
		"institution":  "Example University",
		"issueDate":    "2024-06-15",
		"studentId":    studentID,
		"studentEmail": studentID + "@example.edu",
	}

	if err := s.post("/api/issuer/credentials", payload, s.issuerToken); err != nil {
		return err
	}

	if s.lastStatus == http.StatusOK {
		s.issuedCredentialID, _ = s.lastBody["credentialId"].(string)
		proof, err := proofField(s.lastRaw)
		if err != nil {
			return err
		}
		if len(proof) > 0 {
			s.issuedProof = proof
		}
		if cred, ok := s.lastBody["credential"].(map[string]interface{}); ok {
			if id, ok := cred["id"].(float64); ok {
				s.issuedInternalID = int64(id)
			}
		}
	}
	return nil
}

// proofField extracts the proof blob from a response body without disturbing
// it. The proof must stay byte-for-byte what the worker minted; decoding it
// into a map and re-marshaling would reorder its keys.
func proofField(body []byte) (json.RawMessage, error) {
	var envelope struct {
		Proof json.RawMessage `json:"proof"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode proof from response: %w", err)
	}
	return envelope.Proof, nil
}

func (s *StepsContext) theResponseStatusShouldBe(expected int) error {
	if s.lastStatus != expected {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expected, s.lastStatus, s.lastBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldContainACredentialID() error {
	if s.issuedCredentialID == "" {
		return fmt.Errorf("response carried no credential id (body: %v)", s.lastBody)
	}
	return nil
}

func (s *StepsContext) studentShouldHaveCredentials(studentID string, count int) error {
	if err := s.get("/api/student/credentials?studentId=" + studentID); err != nil {
		return err
	}
	if s.lastStatus != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d", s.lastStatus)
	}
	got, _ := s.lastBody["count"].(float64)
	if int(got) != count {
		return fmt.Errorf("expected %d credentials, got %v", count, s.lastBody["count"])
	}
	return nil
}

func (s *StepsContext) theStudentFetchesTheProof() error {
	if s.issuedInternalID == 0 {
		return fmt.Errorf("no issued credential to fetch a proof for")
	}
	return s.post(fmt.Sprintf("/api/student/credentials/%d/proof", s.issuedInternalID), nil, "")
}

func (s *StepsContext) theProofResponseShouldMatch() error {
	if s.lastStatus != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d", s.lastStatus)
	}
	gotID, _ := s.lastBody["credentialId"].(string)
	if gotID != s.issuedCredentialID {
		return fmt.Errorf("expected credential id %q, got %q", s.issuedCredentialID, gotID)
	}
	proof, err := proofField(s.lastRaw)
	if err != nil {
		return err
	}
	if len(proof) == 0 {
		return fmt.Errorf("proof response carried no proof (body: %v)", s.lastBody)
	}
	s.issuedProof = proof
	return nil
}

func (s *StepsContext) aVerifierChecksTheFetchedProof() error {
	if len(s.issuedProof) == 0 {
		return fmt.Errorf("no proof fetched yet")
	}
	payload := map[string]json.RawMessage{
		"proof":        s.issuedProof,
		"publicInputs": json.RawMessage(`["1"]`),
	}
	return s.post("/api/verifier/proofs/verify", payload, "")
}

func (s *StepsContext) aVerifierChecksTheProof(proof string) error {
	payload := map[string]string{
		"proof":        proof,
		"publicInputs": "[\"1\"]",
	}
	return s.post("/api/verifier/proofs/verify", payload, "")
}

func (s *StepsContext) theProofShouldBeReported(expected string) error {
	if s.lastStatus != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d (body: %v)", s.lastStatus, s.lastBody)
	}
	isValid, _ := s.lastBody["isValid"].(bool)
	if expected == "valid" && !isValid {
		return fmt.Errorf("expected proof to be valid, got invalid")
	}
	if expected == "invalid" && isValid {
		return fmt.Errorf("expected proof to be invalid, got valid")
	}
	return nil
}

func (s *StepsContext) theProofWorkerIs(state string) error {
	s.tc.Worker.SetDown(state == "down")
	return nil
}

func (s *StepsContext) theVerifierHealthShouldReportWorker(expected string) error {
	if err := s.get("/api/verifier/health"); err != nil {
		return err
	}
	got, _ := s.lastBody["worker"].(string)
	if got != expected {
		return fmt.Errorf("expected worker %q, got %q", expected, got)
	}
	return nil
}

func (s *StepsContext) post(path string, payload interface{}, token string) error {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return err
		}
	}

	req, err := http.NewRequest("POST", s.tc.ServerURL+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.do(req)
}

func (s *StepsContext) get(path string) error {
	req, err := http.NewRequest("GET", s.tc.ServerURL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *StepsContext) do(req *http.Request) error {
	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.lastStatus = resp.StatusCode
	s.lastBody = nil
	s.lastRaw, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	_ = json.Unmarshal(s.lastRaw, &s.lastBody)
	return nil
}
