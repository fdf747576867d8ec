package audit

import (
	"time"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose. This
// enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryGovernance covers issuer registry transitions: registration,
	// votes, approvals, revocations. These carry the approval audit trail.
	CategoryGovernance EventCategory = "governance"

	// CategoryLedger covers value-moving transitions: asset binding,
	// purchases, deposits, retirements.
	CategoryLedger EventCategory = "ledger"

	// CategorySecurity covers rejected actions relevant to monitoring:
	// authorization failures, replay-guard hits, payment shortfalls.
	CategorySecurity EventCategory = "security"
)

// Event is emitted from domain logic to capture key transitions. Keep it
// transport-agnostic so publishers can fan out.
type Event struct {
	Category  EventCategory  `json:"category"`
	Action    Action         `json:"action"`
	Timestamp time.Time      `json:"timestamp"`
	Actor     domain.Address `json:"actor"`
	Subject   domain.Address `json:"subject,omitempty"`
	Asset     domain.AssetID `json:"asset,omitempty"`
	Amount    uint64         `json:"amount,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// Action names an audited transition or rejection.
type Action string

const (
	// Governance actions.
	ActionIssuerRegistered Action = "issuer_registered"
	ActionVoteCast         Action = "vote_cast"
	ActionIssuerApproved   Action = "issuer_approved"
	ActionIssuerRevoked    Action = "issuer_revoked"

	// Ledger actions.
	ActionAssetBound      Action = "asset_bound"
	ActionCreditsBought   Action = "credits_bought"
	ActionCreditsMinted   Action = "credits_minted"
	ActionSupplyAdded     Action = "supply_added"
	ActionCreditsRetired  Action = "credits_retired"

	// Security actions.
	ActionUnauthorized   Action = "action_unauthorized"
	ActionVoteReplayed   Action = "vote_replayed"
	ActionPaymentTooLow  Action = "payment_too_low"
)
