package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	dErrors "tokengate/pkg/domain-errors"
)

// Chain identifies the ledger a token lives on.
type Chain string

const (
	// ChainSolana is the account-model ledger with base-58 mint addresses.
	ChainSolana Chain = "solana"
	// ChainEVM is the account-model ledger with 0x-prefixed hex contract
	// addresses.
	ChainEVM Chain = "evm"
)

var (
	evmTokenPattern    = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	solanaTokenPattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)
)

// InferChain derives the chain from the token identifier's lexical form.
// This is the legacy discriminant: any identifier matching 0x + 40 hex chars
// routes to the EVM path, any other syntactically valid base-58 identifier to
// Solana. New policies store the chain tag explicitly; inference remains for
// records created before the tag existed and would misclassify a future chain
// reusing either address format.
func InferChain(tokenID string) (Chain, error) {
	switch {
	case evmTokenPattern.MatchString(tokenID):
		return ChainEVM, nil
	case solanaTokenPattern.MatchString(tokenID):
		return ChainSolana, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "token identifier is not a valid address on any supported chain")
	}
}

// GatingPolicy is the stored association between a group chat, a token, and a
// minimum balance. Its ID doubles as the public link token handed to
// candidate members.
//
// Invariants:
//   - ChatID is non-empty
//   - TokenID is syntactically valid for Chain
//   - MinimumTokenCount is non-negative, in human-readable token units
//   - At most one policy is active per ChatID (enforced by the store)
//   - CreatedAt is immutable after construction
//
// The issuance core only ever reads policies. Creation, cosmetic updates, and
// deletion happen exclusively through the administrative flow.
type GatingPolicy struct {
	ID                uuid.UUID `json:"id"`
	ChatID            string    `json:"chat_id"`
	TokenID           string    `json:"token_id"`
	Chain             Chain     `json:"chain"`
	MinimumTokenCount float64   `json:"minimum_token_count"`
	Name              string    `json:"name,omitempty"`
	ImageURL          string    `json:"image_url,omitempty"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EffectiveChain returns the stored chain tag, falling back to lexical
// inference for legacy records that predate the tag.
func (p *GatingPolicy) EffectiveChain() (Chain, error) {
	if p.Chain != "" {
		return p.Chain, nil
	}
	return InferChain(p.TokenID)
}

// NewGatingPolicy validates invariants and constructs a policy with the chain
// tag resolved from the token identifier.
func NewGatingPolicy(id uuid.UUID, chatID, tokenID string, minimum float64, now time.Time) (*GatingPolicy, error) {
	if chatID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "chat id cannot be empty")
	}
	if minimum < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "minimum token count cannot be negative")
	}
	chain, err := InferChain(tokenID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "token identifier is not a valid address on any supported chain")
	}
	return &GatingPolicy{
		ID:                id,
		ChatID:            chatID,
		TokenID:           tokenID,
		Chain:             chain,
		MinimumTokenCount: minimum,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}
