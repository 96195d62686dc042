package audit

import "time"

// Action names an auditable step in the gating lifecycle.
type Action string

const (
	ActionPolicyCreated Action = "policy_created"
	ActionPolicyDeleted Action = "policy_deleted"
	ActionGateDenied    Action = "gate_denied"
	ActionInviteIssued  Action = "invite_issued"
	ActionInviteReused  Action = "invite_reused"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	PolicyID  string    `json:"policy_id,omitempty"`
	ChatID    string    `json:"chat_id,omitempty"`
	Wallet    string    `json:"wallet,omitempty"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}
