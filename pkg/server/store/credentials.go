package store

import (
	"errors"

	"github.com/trustseal/trustseal-go/pkg/model"
)

var (
	// ErrCredentialNotFound is returned when a credential lookup matches no row.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrDuplicateCredential is returned when an insert violates the
	// credential_id uniqueness constraint. The external credential identifier
	// is assigned by the proof worker and must be globally unique.
	ErrDuplicateCredential = errors.New("credential already exists")
)

// CredentialsStore abstracts credential storage operations. SaveCredential is
// the only write path and is used exclusively by the issuance orchestrator;
// everything else is a pure lookup.
type CredentialsStore interface {
	// SaveCredential inserts a credential. Returns ErrDuplicateCredential if
	// the external credential identifier is already persisted.
	SaveCredential(credential *model.Credential) error

	// FetchCredential retrieves a credential by internal ID
	FetchCredential(id int64) (*model.Credential, error)

	// FetchCredentialByCredentialID retrieves a credential by the external
	// identifier assigned by the proof worker
	FetchCredentialByCredentialID(credentialID string) (*model.Credential, error)

	// ListCredentialsByStudent returns credentials owned by the student with
	// the given external student identifier
	ListCredentialsByStudent(studentID string) ([]model.Credential, error)

	// ListCredentialsByIssuer returns credentials issued by a user
	ListCredentialsByIssuer(issuerID int64) ([]model.Credential, error)

	// ListCredentialsByInstitution returns credentials for an institution
	ListCredentialsByInstitution(institution string) ([]model.Credential, error)

	// ListCredentialsByStatus returns credentials in a lifecycle state
	ListCredentialsByStatus(status model.Status) ([]model.Credential, error)

	// ListCredentialsByDegree returns credentials for a degree label
	ListCredentialsByDegree(degree string) ([]model.Credential, error)

	// ListCredentials returns all credentials
	ListCredentials() ([]model.Credential, error)

	// CountCredentialsByStatus counts credentials in a lifecycle state
	CountCredentialsByStatus(status model.Status) (int64, error)
}
