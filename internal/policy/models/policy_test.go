package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tokengate/pkg/domain-errors"
)

const (
	wrappedSolMint = "So11111111111111111111111111111111111111112"
	usdcContract   = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
)

func TestInferChain(t *testing.T) {
	t.Run("0x plus 40 hex routes to EVM", func(t *testing.T) {
		chain, err := InferChain(usdcContract)
		require.NoError(t, err)
		assert.Equal(t, ChainEVM, chain)
	})

	t.Run("base-58 mint routes to Solana", func(t *testing.T) {
		chain, err := InferChain(wrappedSolMint)
		require.NoError(t, err)
		assert.Equal(t, ChainSolana, chain)
	})

	t.Run("0x with wrong length is rejected, not routed", func(t *testing.T) {
		_, err := InferChain("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("base-58 alphabet excludes 0 O I l", func(t *testing.T) {
		_, err := InferChain(strings.Repeat("O", 40))
		require.Error(t, err)
	})
}

func TestNewGatingPolicy(t *testing.T) {
	now := time.Now()

	t.Run("resolves and stores the chain tag", func(t *testing.T) {
		p, err := NewGatingPolicy(uuid.New(), "-1001234567890", usdcContract, 100, now)
		require.NoError(t, err)
		assert.Equal(t, ChainEVM, p.Chain)
		assert.Equal(t, 100.0, p.MinimumTokenCount)
	})

	t.Run("rejects empty chat id", func(t *testing.T) {
		_, err := NewGatingPolicy(uuid.New(), "", wrappedSolMint, 1, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("rejects negative minimum", func(t *testing.T) {
		_, err := NewGatingPolicy(uuid.New(), "-100123", wrappedSolMint, -1, now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("zero minimum is allowed", func(t *testing.T) {
		_, err := NewGatingPolicy(uuid.New(), "-100123", wrappedSolMint, 0, now)
		require.NoError(t, err)
	})
}

func TestEffectiveChainFallsBackToInference(t *testing.T) {
	p := &GatingPolicy{TokenID: wrappedSolMint}
	chain, err := p.EffectiveChain()
	require.NoError(t, err)
	assert.Equal(t, ChainSolana, chain)
}
