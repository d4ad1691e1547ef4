package credential

import (
	"errors"
	"fmt"
	"time"
)

// ErrValidation is returned when a request is missing required fields. It is
// a request-shape error: nothing downstream has been called yet.
var ErrValidation = errors.New("validation failed")

// issueDateLayout is the wire format for issue dates.
const issueDateLayout = "2006-01-02"

// IssueRequest carries everything an issuer submits to mint a credential.
type IssueRequest struct {
	StudentName  string `json:"studentName"`
	Degree       string `json:"degree"`
	Institution  string `json:"institution"`
	IssueDate    string `json:"issueDate"`
	StudentID    string `json:"studentId"`
	StudentEmail string `json:"studentEmail"`
}

// Validate checks that all required fields are present and the issue date
// parses. It returns ErrValidation-wrapped errors naming the offending field.
func (r IssueRequest) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"studentName", r.StudentName},
		{"degree", r.Degree},
		{"institution", r.Institution},
		{"issueDate", r.IssueDate},
		{"studentId", r.StudentID},
		{"studentEmail", r.StudentEmail},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field.name)
		}
	}
	if _, err := r.ParseIssueDate(); err != nil {
		return fmt.Errorf("%w: issueDate must be formatted as %s", ErrValidation, issueDateLayout)
	}
	return nil
}

// ParseIssueDate parses the issue date field
func (r IssueRequest) ParseIssueDate() (time.Time, error) {
	return time.Parse(issueDateLayout, r.IssueDate)
}
