package audit

import "fmt"

// IssueEvent records a credential issuance attempt
type IssueEvent struct {
	IssuerUsername string
	StudentID      string
	Degree         string
	Institution    string
	CredentialID   string
	ClientIP       string
	Success        bool
	ErrorMessage   string
}

func (e IssueEvent) MessageID() string {
	return "issue"
}

func (e IssueEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s issued credential %s for student %s", e.IssuerUsername, e.CredentialID, e.StudentID)
	}
	msg := fmt.Sprintf("%s failed to issue a credential for student %s", e.IssuerUsername, e.StudentID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e IssueEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e IssueEvent) Facility() int {
	return FacilityAuthPriv
}

func (e IssueEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"issuer": e.IssuerUsername,
		},
		SDIDSubject: {
			"student":     e.StudentID,
			"degree":      e.Degree,
			"institution": e.Institution,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "issue",
		},
	}
	if e.CredentialID != "" {
		sd[SDIDSubject]["credential"] = e.CredentialID
	}
	return sd
}

// VerifyEvent records a proof verification
type VerifyEvent struct {
	ClientIP string
	IsValid  bool
}

func (e VerifyEvent) MessageID() string {
	return "verify"
}

func (e VerifyEvent) Message() string {
	if e.IsValid {
		return "proof verified as valid"
	}
	return "proof verified as invalid"
}

func (e VerifyEvent) Severity() Severity {
	if e.IsValid {
		return SeverityInfo
	}
	return SeverityNotice
}

func (e VerifyEvent) Facility() int {
	return FacilityAuth
}

func (e VerifyEvent) StructuredData() map[string]map[string]string {
	result := "invalid"
	if e.IsValid {
		result = "valid"
	}
	return map[string]map[string]string{
		SDIDClient: {
			"ip": e.ClientIP,
		},
		SDIDAction: {
			"operation": "verify",
			"result":    result,
		},
	}
}
