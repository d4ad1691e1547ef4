package endpoints

import (
	"encoding/json"
	"time"

	"github.com/trustseal/trustseal-go/pkg/model"
)

// credentialView is the JSON shape of a credential in API responses. Proof
// and QR blobs are only included where a holder explicitly requests them.
type credentialView struct {
	ID           int64        `json:"id"`
	CredentialID string       `json:"credentialId"`
	Degree       string       `json:"degree"`
	Institution  string       `json:"institution"`
	IssueDate    string       `json:"issueDate"`
	Status       model.Status `json:"status"`
	StudentID    string       `json:"studentId,omitempty"`
	StudentName  string       `json:"studentName,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
}

func newCredentialView(c *model.Credential) credentialView {
	view := credentialView{
		ID:           c.ID,
		CredentialID: c.CredentialID,
		Degree:       c.Degree,
		Institution:  c.Institution,
		IssueDate:    c.IssueDate.Format("2006-01-02"),
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
	if c.Student != nil {
		view.StudentID = c.Student.StudentID
		view.StudentName = c.Student.FullName
	}
	return view
}

func newCredentialViews(credentials []model.Credential) []credentialView {
	views := make([]credentialView, 0, len(credentials))
	for i := range credentials {
		views = append(views, newCredentialView(&credentials[i]))
	}
	return views
}

// proofBlob renders a stored proof as raw JSON when possible so callers see
// the worker's original structure rather than a quoted string.
func proofBlob(stored string) json.RawMessage {
	if json.Valid([]byte(stored)) {
		return json.RawMessage(stored)
	}
	quoted, _ := json.Marshal(stored)
	return quoted
}
