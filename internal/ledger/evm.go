package ledger

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// EVMOracle queries an Alchemy-compatible JSON-RPC endpoint for ERC-20
// balances and token metadata.
type EVMOracle struct {
	url    string
	client *http.Client
}

func NewEVMOracle(url string, timeout time.Duration) *EVMOracle {
	return &EVMOracle{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type tokenBalancesResult struct {
	Address       string `json:"address"`
	TokenBalances []struct {
		ContractAddress string  `json:"contractAddress"`
		TokenBalance    string  `json:"tokenBalance"`
		Error           *string `json:"error"`
	} `json:"tokenBalances"`
}

// TokenBalance returns the wallet's raw balance of the contract's token in
// base units. The oracle reports a hex-encoded integer; decimal adjustment is
// the resolver's job. An empty balance list means 0.
func (o *EVMOracle) TokenBalance(ctx context.Context, owner, contract string) (*big.Int, error) {
	params := []any{owner, []string{contract}}

	var result tokenBalancesResult
	if err := rpcCall(ctx, o.client, o.url, "alchemy_getTokenBalances", params, &result); err != nil {
		return nil, err
	}

	if len(result.TokenBalances) == 0 {
		return big.NewInt(0), nil
	}
	entry := result.TokenBalances[0]
	if entry.Error != nil {
		return nil, fmt.Errorf("token balance lookup failed: %s", *entry.Error)
	}
	return parseHexAmount(entry.TokenBalance)
}

// TokenMetadata fetches the contract's declared name, symbol and decimals.
// Decimals is nil when the contract does not declare one; the resolver applies
// its configured fallback.
func (o *EVMOracle) TokenMetadata(ctx context.Context, contract string) (TokenMetadata, error) {
	params := []string{contract}

	var md TokenMetadata
	if err := rpcCall(ctx, o.client, o.url, "alchemy_getTokenMetadata", params, &md); err != nil {
		return TokenMetadata{}, err
	}
	return md, nil
}

func parseHexAmount(s string) (*big.Int, error) {
	hex := strings.TrimPrefix(s, "0x")
	if hex == "" {
		return big.NewInt(0), nil
	}
	n, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return nil, fmt.Errorf("malformed hex amount %q", s)
	}
	return n, nil
}
