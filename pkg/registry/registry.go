package registry

import (
	"errors"
	"fmt"

	"github.com/trustseal/trustseal-go/pkg/model"
	"github.com/trustseal/trustseal-go/pkg/server/store"
)

// StudentAttributes carries what is known about a student at issuance time.
type StudentAttributes struct {
	StudentID   string
	FullName    string
	Email       string
	Institution string
}

// Registry resolves the users involved in an issuance: the issuer must
// already exist, while students are created on first sight.
type Registry struct {
	users store.UsersStore
}

// New creates a Registry backed by the given users store
func New(users store.UsersStore) *Registry {
	return &Registry{users: users}
}

// ResolveOrCreateStudent returns the student with the given student
// identifier, creating the user record on first sight. An existing record is
// returned unchanged even if the supplied attributes differ, so the operation
// is idempotent and safe to re-run.
//
// Concurrent first-sight issuances for the same student race here. The loser
// hits the student_id uniqueness constraint and retries as a lookup; no
// in-process locking is involved, which keeps the path stateless across
// server instances.
func (r *Registry) ResolveOrCreateStudent(attrs StudentAttributes) (*model.User, error) {
	student, err := r.users.FetchUserByStudentID(attrs.StudentID)
	if err == nil {
		return student, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("resolve student %s: %w", attrs.StudentID, err)
	}

	student = &model.User{
		Username:    attrs.Email,
		Email:       attrs.Email,
		FullName:    attrs.FullName,
		Role:        model.RoleStudent,
		Institution: attrs.Institution,
		StudentID:   attrs.StudentID,
	}
	err = r.users.CreateUser(student)
	if err == nil {
		return student, nil
	}
	if errors.Is(err, store.ErrDuplicateUser) {
		// Lost the create race; the winner's record is authoritative.
		return r.users.FetchUserByStudentID(attrs.StudentID)
	}
	return nil, fmt.Errorf("create student %s: %w", attrs.StudentID, err)
}

// ResolveIssuer returns the issuer with the given internal user ID. Issuer
// accounts are provisioned out of band; a missing issuer aborts issuance.
func (r *Registry) ResolveIssuer(issuerID int64) (*model.User, error) {
	issuer, err := r.users.FetchUser(issuerID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("issuer %d: %w", issuerID, store.ErrUserNotFound)
		}
		return nil, fmt.Errorf("resolve issuer %d: %w", issuerID, err)
	}
	return issuer, nil
}
