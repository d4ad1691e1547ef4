package model

import "time"

// Role identifies what a user is allowed to do in the system.
type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleIssuerAdmin Role = "ISSUER_ADMIN"
	RoleVerifier    Role = "VERIFIER"
)

// User represents a participant in the system: a student holding credentials,
// an issuer admin minting them, or a verifier checking proofs.
type User struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Username    string `gorm:"column:username;uniqueIndex;not null"`
	Email       string `gorm:"column:email;not null"`
	FullName    string `gorm:"column:full_name;not null"`
	Role        Role   `gorm:"column:role;not null"`
	Institution string `gorm:"column:institution;not null"`
	// StudentID is the institution-assigned student identifier. It is the
	// natural key for get-or-create during issuance, and is empty for issuer
	// and verifier rows. Uniqueness is a partial index in the schema
	// (idx_users_student_id, non-empty values only), so the tag must not
	// redeclare it.
	StudentID string    `gorm:"column:student_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// IsStudent returns true if the user holds credentials rather than issuing
// or verifying them.
func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}
