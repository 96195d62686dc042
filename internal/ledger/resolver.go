package ledger

import (
	"context"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
	"tokengate/pkg/platform/circuit"
)

// SolanaAPI is the slice of the Solana oracle the resolver depends on.
type SolanaAPI interface {
	TokenBalance(ctx context.Context, owner, mint string) (float64, error)
	AssetMetadata(ctx context.Context, mint string) (TokenMetadata, error)
}

// EVMAPI is the slice of the EVM oracle the resolver depends on.
type EVMAPI interface {
	TokenBalance(ctx context.Context, owner, contract string) (*big.Int, error)
	TokenMetadata(ctx context.Context, contract string) (TokenMetadata, error)
}

// oracleGuard pairs a circuit breaker with a probe interval. While the
// breaker is open, calls fail fast; one probe per interval is let
// through so a recovered oracle can close the circuit again.
type oracleGuard struct {
	breaker *circuit.Breaker

	mu        sync.Mutex
	lastProbe time.Time
	interval  time.Duration
	clock     func() time.Time
}

func newOracleGuard(name string, interval time.Duration) *oracleGuard {
	return &oracleGuard{
		breaker:  circuit.New(name, circuit.WithFailureThreshold(5), circuit.WithSuccessThreshold(1)),
		interval: interval,
		clock:    time.Now,
	}
}

// armProbe starts the probe interval. Called when the circuit opens so
// the first fail-fast window is a full interval long.
func (g *oracleGuard) armProbe() {
	g.mu.Lock()
	g.lastProbe = g.clock()
	g.mu.Unlock()
}

// allow reports whether a call may proceed.
func (g *oracleGuard) allow() bool {
	if !g.breaker.IsOpen() {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.clock()
	if now.Sub(g.lastProbe) < g.interval {
		return false
	}
	g.lastProbe = now
	return true
}

// Resolver answers "how many units of this token does this wallet hold",
// branching by chain. Balances are never cached: an access-control decision
// must see a fresh read every time.
type Resolver struct {
	solana             SolanaAPI
	evm                EVMAPI
	defaultEVMDecimals int
	logger             *slog.Logger
	guards             map[models.Chain]*oracleGuard
}

type ResolverOption func(*Resolver)

func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// WithDefaultEVMDecimals overrides the decimals fallback applied when a token
// contract's metadata omits a decimal count.
func WithDefaultEVMDecimals(decimals int) ResolverOption {
	return func(r *Resolver) { r.defaultEVMDecimals = decimals }
}

// WithProbeInterval sets how often a single probe call is allowed
// through an open circuit.
func WithProbeInterval(interval time.Duration) ResolverOption {
	return func(r *Resolver) {
		for _, g := range r.guards {
			g.interval = interval
		}
	}
}

func NewResolver(solana SolanaAPI, evm EVMAPI, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		solana:             solana,
		evm:                evm,
		defaultEVMDecimals: 18,
		guards: map[models.Chain]*oracleGuard{
			models.ChainSolana: newOracleGuard("solana-oracle", 30*time.Second),
			models.ChainEVM:    newOracleGuard("evm-oracle", 30*time.Second),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the wallet's balance of the token in human-readable units.
// Address syntax is validated before any oracle call; oracle failures surface
// as retryable unavailability, never as balance 0.
func (r *Resolver) Resolve(ctx context.Context, chain models.Chain, walletAddress, tokenID string) (float64, error) {
	if err := ValidateWallet(chain, walletAddress); err != nil {
		return 0, err
	}
	if err := ValidateToken(chain, tokenID); err != nil {
		return 0, err
	}

	guard, ok := r.guards[chain]
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeValidation, "unsupported chain %q", chain)
	}
	if !guard.allow() {
		return 0, dErrors.New(dErrors.CodeUnavailable, "Ledger oracle is unavailable. Please try again later.")
	}

	switch chain {
	case models.ChainSolana:
		balance, err := r.solana.TokenBalance(ctx, walletAddress, tokenID)
		if err != nil {
			return 0, r.recordFailure(ctx, guard, err)
		}
		guard.breaker.RecordSuccess()
		return balance, nil

	default:
		raw, err := r.evm.TokenBalance(ctx, walletAddress, tokenID)
		if err != nil {
			return 0, r.recordFailure(ctx, guard, err)
		}
		guard.breaker.RecordSuccess()
		return r.adjustEVM(ctx, raw, tokenID), nil
	}
}

func (r *Resolver) recordFailure(ctx context.Context, guard *oracleGuard, err error) error {
	if _, change := guard.breaker.RecordFailure(); change.Opened {
		guard.armProbe()
		if r.logger != nil {
			r.logger.WarnContext(ctx, "oracle circuit opened", "oracle", guard.breaker.Name())
		}
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "Ledger oracle is unavailable. Please try again later.")
}

// Metadata fetches token metadata, dispatching on the identifier's chain.
func (r *Resolver) Metadata(ctx context.Context, tokenID string) (TokenMetadata, models.Chain, error) {
	chain, err := models.InferChain(tokenID)
	if err != nil {
		return TokenMetadata{}, "", err
	}

	var md TokenMetadata
	switch chain {
	case models.ChainSolana:
		md, err = r.solana.AssetMetadata(ctx, tokenID)
	case models.ChainEVM:
		md, err = r.evm.TokenMetadata(ctx, tokenID)
	}
	if err != nil {
		return TokenMetadata{}, chain, dErrors.Wrap(err, dErrors.CodeUnavailable, "Ledger oracle is unavailable. Please try again later.")
	}
	return md, chain, nil
}

// adjustEVM converts a raw base-unit amount to human-readable units using the
// contract's declared decimals. When metadata is unreachable or silent the
// configured fallback (18 unless overridden) applies; nonstandard tokens can
// misprice under the fallback, which is why it is configurable.
func (r *Resolver) adjustEVM(ctx context.Context, raw *big.Int, tokenID string) float64 {
	decimals := r.defaultEVMDecimals
	md, err := r.evm.TokenMetadata(ctx, tokenID)
	switch {
	case err != nil:
		if r.logger != nil {
			r.logger.WarnContext(ctx, "token metadata unavailable, using fallback decimals",
				"token_id", tokenID, "fallback_decimals", decimals, "error", err)
		}
	case md.Decimals != nil:
		decimals = *md.Decimals
	}

	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value, _ := new(big.Float).Quo(new(big.Float).SetInt(raw), divisor).Float64()
	return value
}
