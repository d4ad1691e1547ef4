package gorm

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/server/store"
)

// Ensure CredentialsStore implements store.CredentialsStore
var _ store.CredentialsStore = (*CredentialsStore)(nil)

// CredentialsStore implements store.CredentialsStore using GORM
type CredentialsStore struct {
	db *gorm.DB
}

// NewCredentialsStore creates a new CredentialsStore
func NewCredentialsStore(db *gorm.DB) *CredentialsStore {
	return &CredentialsStore{db: db}
}

// SaveCredential inserts a credential
func (s *CredentialsStore) SaveCredential(credential *model.Credential) error {
	if credential == nil {
		return fmt.Errorf("credential is required")
	}
	if err := s.db.Create(credential).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("save credential %s: %w", credential.CredentialID, store.ErrDuplicateCredential)
		}
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// FetchCredential retrieves a credential by internal ID
func (s *CredentialsStore) FetchCredential(id int64) (*model.Credential, error) {
	var credential model.Credential
	err := s.db.Preload("Student").Preload("Issuer").First(&credential, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("fetch credential: %w", err)
	}
	return &credential, nil
}

// FetchCredentialByCredentialID retrieves a credential by external identifier
func (s *CredentialsStore) FetchCredentialByCredentialID(credentialID string) (*model.Credential, error) {
	var credential model.Credential
	err := s.db.Preload("Student").Preload("Issuer").First(&credential, "credential_id = ?", credentialID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrCredentialNotFound
		}
		return nil, fmt.Errorf("fetch credential by credential id: %w", err)
	}
	return &credential, nil
}

// ListCredentialsByStudent returns credentials owned by the student with the
// given external student identifier
func (s *CredentialsStore) ListCredentialsByStudent(studentID string) ([]model.Credential, error) {
	var credentials []model.Credential
	err := s.db.
		Joins("JOIN users ON users.id = credentials.student_id").
		Where("users.student_id = ?", studentID).
		Preload("Student").
		Find(&credentials).Error
	if err != nil {
		return nil, fmt.Errorf("list credentials by student: %w", err)
	}
	return credentials, nil
}

// ListCredentialsByIssuer returns credentials issued by a user
func (s *CredentialsStore) ListCredentialsByIssuer(issuerID int64) ([]model.Credential, error) {
	var credentials []model.Credential
	err := s.db.Where("issuer_id = ?", issuerID).Find(&credentials).Error
	if err != nil {
		return nil, fmt.Errorf("list credentials by issuer: %w", err)
	}
	return credentials, nil
}

// ListCredentialsByInstitution returns credentials for an institution
func (s *CredentialsStore) ListCredentialsByInstitution(institution string) ([]model.Credential, error) {
	var credentials []model.Credential
	err := s.db.Where("institution = ?", institution).Find(&credentials).Error
	if err != nil {
		return nil, fmt.Errorf("list credentials by institution: %w", err)
	}
	return credentials, nil
}

// ListCredentialsByStatus returns credentials in a lifecycle state
func (s *CredentialsStore) ListCredentialsByStatus(status model.Status) ([]model.Credential, error) {
	var credentials []model.Credential
	err := s.db.Where("status = ?", status).Find(&credentials).Error
	if err != nil {
		return nil, fmt.Errorf("list credentials by status: %w", err)
	}
	return credentials, nil
}

// ListCredentialsByDegree returns credentials for a degree label
func (s *CredentialsStore) ListCredentialsByDegree(degree string) ([]model.Credential, error) {
	var credentials []model.Credential
	err := s.db.Where("degree = ?", degree).Find(&credentials).Error
	if err != nil {
		return nil, fmt.Errorf("list credentials by degree: %w", err)
	}
	return credentials, nil
}

// ListCredentials returns all credentials
func (s *CredentialsStore) ListCredentials() ([]model.Credential, error) {
	var credentials []model.Credential
	err := s.db.Preload("Student").Find(&credentials).Error
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	return credentials, nil
}

// CountCredentialsByStatus counts credentials in a lifecycle state
func (s *CredentialsStore) CountCredentialsByStatus(status model.Status) (int64, error) {
	var count int64
	err := s.db.Model(&model.Credential{}).Where("status = ?", status).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count credentials by status: %w", err)
	}
	return count, nil
}
