package ledger

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
)

func TestResolverOracleCircuit(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated failures stop reaching the oracle", func(t *testing.T) {
		sol := &fakeSolana{err: errors.New("rpc down")}
		r := NewResolver(sol, &fakeEVM{})

		for i := 0; i < 5; i++ {
			_, err := r.Resolve(ctx, models.ChainSolana, testOwner, testMint)
			require.Error(t, err)
		}
		assert.Equal(t, 5, sol.calls)

		// Circuit is now open; further calls fail fast.
		_, err := r.Resolve(ctx, models.ChainSolana, testOwner, testMint)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
		assert.Equal(t, 5, sol.calls)
	})

	t.Run("a probe after the interval closes a recovered circuit", func(t *testing.T) {
		sol := &fakeSolana{err: errors.New("rpc down")}
		r := NewResolver(sol, &fakeEVM{})

		now := time.Now()
		guard := r.guards[models.ChainSolana]
		guard.clock = func() time.Time { return now }

		for i := 0; i < 5; i++ {
			_, _ = r.Resolve(ctx, models.ChainSolana, testOwner, testMint)
		}
		require.True(t, guard.breaker.IsOpen())

		// Oracle recovers; the probe inside the interval is still
		// suppressed because the open transition consumed it.
		sol.err = nil
		sol.balance = 150

		now = now.Add(time.Minute)
		balance, err := r.Resolve(ctx, models.ChainSolana, testOwner, testMint)
		require.NoError(t, err)
		assert.Equal(t, 150.0, balance)
		assert.False(t, guard.breaker.IsOpen())

		// Closed again: calls flow freely.
		_, err = r.Resolve(ctx, models.ChainSolana, testOwner, testMint)
		require.NoError(t, err)
	})

	t.Run("chains trip independently", func(t *testing.T) {
		sol := &fakeSolana{err: errors.New("rpc down")}
		raw, _ := new(big.Int).SetString("150000000", 10)
		evm := &fakeEVM{raw: raw, metadata: TokenMetadata{Decimals: intPtr(6)}}
		r := NewResolver(sol, evm)

		for i := 0; i < 6; i++ {
			_, _ = r.Resolve(ctx, models.ChainSolana, testOwner, testMint)
		}
		require.True(t, r.guards[models.ChainSolana].breaker.IsOpen())

		balance, err := r.Resolve(ctx, models.ChainEVM, testEVMWallet, testEVMContract)
		require.NoError(t, err)
		assert.Equal(t, 150.0, balance)
	})
}
