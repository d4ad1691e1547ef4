package model

import "time"

// Status is the lifecycle state of a credential. Only StatusIssued is ever
// set by the issuance path; REVOKED and EXPIRED are declared for the schema
// but no transition currently reaches them.
type Status string

const (
	StatusIssued  Status = "ISSUED"
	StatusRevoked Status = "REVOKED"
	StatusExpired Status = "EXPIRED"
)

// Credential is one issued, provable claim. The proof and QR blobs are opaque
// to this service; they are produced by the proof worker and handed back to
// holders and verifiers verbatim.
type Credential struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// CredentialID is assigned by the proof worker and is immutable once set.
	CredentialID string    `gorm:"column:credential_id;uniqueIndex;not null"`
	StudentID    int64     `gorm:"column:student_id;not null"`
	Student      *User     `gorm:"foreignKey:StudentID"`
	IssuerID     int64     `gorm:"column:issuer_id;not null"`
	Issuer       *User     `gorm:"foreignKey:IssuerID"`
	Degree       string    `gorm:"column:degree;not null"`
	Institution  string    `gorm:"column:institution;not null"`
	IssueDate    time.Time `gorm:"column:issue_date;not null"`
	Status       Status    `gorm:"column:status;not null"`
	ProofData    string    `gorm:"column:proof_data;type:text"`
	QRCodeData   string    `gorm:"column:qr_code_data;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Credential) TableName() string {
	return "credentials"
}
