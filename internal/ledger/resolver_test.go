package ledger

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
)

type fakeSolana struct {
	balance float64
	err     error
	calls   int
}

func (f *fakeSolana) TokenBalance(context.Context, string, string) (float64, error) {
	f.calls++
	return f.balance, f.err
}

func (f *fakeSolana) AssetMetadata(context.Context, string) (TokenMetadata, error) {
	return TokenMetadata{Name: "Fake", Symbol: "FAKE"}, nil
}

type fakeEVM struct {
	raw      *big.Int
	balErr   error
	metadata TokenMetadata
	mdErr    error
	calls    int
}

func (f *fakeEVM) TokenBalance(context.Context, string, string) (*big.Int, error) {
	f.calls++
	return f.raw, f.balErr
}

func (f *fakeEVM) TokenMetadata(context.Context, string) (TokenMetadata, error) {
	return f.metadata, f.mdErr
}

func intPtr(n int) *int { return &n }

func TestResolveRoutesByChain(t *testing.T) {
	t.Run("solana path returns ui balance untouched", func(t *testing.T) {
		sol := &fakeSolana{balance: 150}
		evm := &fakeEVM{}
		r := NewResolver(sol, evm)

		balance, err := r.Resolve(context.Background(), models.ChainSolana, testOwner, testMint)
		require.NoError(t, err)
		assert.Equal(t, 150.0, balance)
		assert.Equal(t, 1, sol.calls)
		assert.Zero(t, evm.calls)
	})

	t.Run("evm path decimal-adjusts with declared decimals", func(t *testing.T) {
		raw, _ := new(big.Int).SetString("150000000", 10) // 150 USDC at 6 decimals
		evm := &fakeEVM{raw: raw, metadata: TokenMetadata{Decimals: intPtr(6)}}
		r := NewResolver(&fakeSolana{}, evm)

		balance, err := r.Resolve(context.Background(), models.ChainEVM, testEVMWallet, testEVMContract)
		require.NoError(t, err)
		assert.Equal(t, 150.0, balance)
	})

	t.Run("evm path falls back to 18 decimals without metadata", func(t *testing.T) {
		raw, _ := new(big.Int).SetString("150000000000000000000", 10)
		evm := &fakeEVM{raw: raw, mdErr: errors.New("metadata endpoint down")}
		r := NewResolver(&fakeSolana{}, evm)

		balance, err := r.Resolve(context.Background(), models.ChainEVM, testEVMWallet, testEVMContract)
		require.NoError(t, err)
		assert.Equal(t, 150.0, balance)
	})

	t.Run("fallback decimals are configurable", func(t *testing.T) {
		evm := &fakeEVM{raw: big.NewInt(1500), metadata: TokenMetadata{}}
		r := NewResolver(&fakeSolana{}, evm, WithDefaultEVMDecimals(2))

		balance, err := r.Resolve(context.Background(), models.ChainEVM, testEVMWallet, testEVMContract)
		require.NoError(t, err)
		assert.Equal(t, 15.0, balance)
	})
}

func TestResolveValidatesBeforeCalling(t *testing.T) {
	sol := &fakeSolana{balance: 10}
	evm := &fakeEVM{raw: big.NewInt(1)}
	r := NewResolver(sol, evm)

	t.Run("malformed wallet fails fast", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), models.ChainSolana, "not-base58-0OIl", testMint)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Zero(t, sol.calls, "no oracle call for malformed input")
	})

	t.Run("token mismatched with chain fails fast", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), models.ChainEVM, testEVMWallet, testMint)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Zero(t, evm.calls)
	})
}

func TestResolveOracleFailureIsRetryable(t *testing.T) {
	sol := &fakeSolana{err: errors.New("rpc timeout")}
	r := NewResolver(sol, &fakeEVM{})

	_, err := r.Resolve(context.Background(), models.ChainSolana, testOwner, testMint)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable),
		"oracle failure must be surfaced as retryable, never as balance 0")
}

func TestMetadataDispatch(t *testing.T) {
	sol := &fakeSolana{}
	evm := &fakeEVM{metadata: TokenMetadata{Name: "USD Coin", Decimals: intPtr(6)}}
	r := NewResolver(sol, evm)

	t.Run("solana mint", func(t *testing.T) {
		md, chain, err := r.Metadata(context.Background(), testMint)
		require.NoError(t, err)
		assert.Equal(t, models.ChainSolana, chain)
		assert.Equal(t, "Fake", md.Name)
	})

	t.Run("evm contract", func(t *testing.T) {
		md, chain, err := r.Metadata(context.Background(), testEVMContract)
		require.NoError(t, err)
		assert.Equal(t, models.ChainEVM, chain)
		assert.Equal(t, "USD Coin", md.Name)
	})

	t.Run("unroutable identifier", func(t *testing.T) {
		_, _, err := r.Metadata(context.Background(), "0xshort")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}
