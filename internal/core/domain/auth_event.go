package domain

import "time"

// Audit actions.
const (
	AuditActionRegister     = "register"
	AuditActionLogin        = "login"
	AuditActionAuthenticate = "authenticate"
)

// Audit outcomes.
const (
	AuditOutcomeSuccess   = "success"
	AuditOutcomeFailure   = "failure"
	AuditOutcomeThrottled = "throttled"
)

// AuthEvent is one entry in the authentication audit trail.
type AuthEvent struct {
	Subject   string    `json:"subject,omitempty"`
	Action    string    `json:"action"`
	Outcome   string    `json:"outcome"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
