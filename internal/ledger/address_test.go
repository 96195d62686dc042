package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
)

func TestValidateWallet(t *testing.T) {
	cases := []struct {
		name    string
		chain   models.Chain
		address string
		wantErr bool
	}{
		{"valid EVM address", models.ChainEVM, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", false},
		{"EVM address without prefix", models.ChainEVM, "d8dA6BF26964aF9D7eEd9e03E53415D37aA96045", true},
		{"EVM address too short", models.ChainEVM, "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA9604", true},
		{"EVM address with non-hex", models.ChainEVM, "0xZ8dA6BF26964aF9D7eEd9e03E53415D37aA96045", true},
		{"valid Solana address", models.ChainSolana, "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", false},
		{"Solana address with zero digit", models.ChainSolana, "0Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", true},
		{"Solana address too short", models.ChainSolana, "abc", true},
		{"empty address", models.ChainSolana, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWallet(tc.chain, tc.address)
			if tc.wantErr {
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "expected validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	assert.NoError(t, ValidateToken(models.ChainSolana, "So11111111111111111111111111111111111111112"))
	assert.NoError(t, ValidateToken(models.ChainEVM, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"))
	assert.Error(t, ValidateToken(models.ChainEVM, "So11111111111111111111111111111111111111112"))
	assert.Error(t, ValidateToken(models.ChainSolana, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"))
}
