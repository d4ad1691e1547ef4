package credential

import (
	"context"
	"fmt"
	"log"

	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/registry"
	"github.com/trustseal/trustseal-go/pkg/server/store"
	"github.com/trustseal/trustseal-go/pkg/worker"
)

// Service orchestrates credential issuance. Dependencies are injected at
// construction so tests can substitute doubles for any collaborator.
type Service struct {
	registry    *registry.Registry
	credentials store.CredentialsStore
	worker      worker.Client
}

// NewService creates an issuance Service
func NewService(reg *registry.Registry, credentials store.CredentialsStore, workerClient worker.Client) *Service {
	return &Service{
		registry:    reg,
		credentials: credentials,
		worker:      workerClient,
	}
}

// Issue mints one credential for the requested student on behalf of the given
// issuer. The sequence is fixed: issuer resolution, student resolution, the
// worker proof request, then persistence. A failure at any step aborts with
// no credential written; the only effect that may survive an abort is the
// creation of the student user, which is idempotent and harmless to keep.
func (s *Service) Issue(ctx context.Context, req IssueRequest, issuerID int64) (*model.Credential, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	log.Printf("issuing credential for student %s from institution %s", req.StudentID, req.Institution)

	issuer, err := s.registry.ResolveIssuer(issuerID)
	if err != nil {
		return nil, err
	}

	student, err := s.registry.ResolveOrCreateStudent(registry.StudentAttributes{
		StudentID:   req.StudentID,
		FullName:    req.StudentName,
		Email:       req.StudentEmail,
		Institution: req.Institution,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.worker.RequestIssuance(ctx, worker.IssueRequest{
		StudentName: req.StudentName,
		Degree:      req.Degree,
		Institution: req.Institution,
		IssueDate:   req.IssueDate,
		StudentID:   req.StudentID,
	})
	if err != nil {
		return nil, err
	}

	issueDate, err := req.ParseIssueDate()
	if err != nil {
		// Validate already parsed this; reaching here means a bug.
		return nil, fmt.Errorf("%w: issueDate must be formatted as %s", ErrValidation, issueDateLayout)
	}

	cred := &model.Credential{
		CredentialID: result.CredentialID,
		StudentID:    student.ID,
		IssuerID:     issuer.ID,
		Degree:       req.Degree,
		Institution:  req.Institution,
		IssueDate:    issueDate,
		Status:       model.StatusIssued,
		ProofData:    result.Proof,
		QRCodeData:   result.QRCode,
	}
	if err := s.credentials.SaveCredential(cred); err != nil {
		return nil, err
	}

	cred.Student = student
	cred.Issuer = issuer

	log.Printf("issued credential %s for student %s", cred.CredentialID, req.StudentID)
	return cred, nil
}
