package ledger

import (
	"context"
	"net/http"
	"time"
)

// SolanaOracle queries a Solana JSON-RPC endpoint (Helius-compatible) for
// token holdings and fungible asset metadata.
type SolanaOracle struct {
	url    string
	client *http.Client
}

func NewSolanaOracle(url string, timeout time.Duration) *SolanaOracle {
	return &SolanaOracle{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// tokenAccountsResult models the jsonParsed getTokenAccountsByOwner response,
// reduced to the fields the balance path reads.
type tokenAccountsResult struct {
	Value []struct {
		Account struct {
			Data struct {
				Parsed struct {
					Info struct {
						TokenAmount struct {
							UIAmount *float64 `json:"uiAmount"`
							Decimals int      `json:"decimals"`
						} `json:"tokenAmount"`
					} `json:"info"`
				} `json:"parsed"`
			} `json:"data"`
		} `json:"account"`
	} `json:"value"`
}

// TokenBalance sums the wallet's holdings of the given mint across all of its
// token accounts, in human-readable units (the oracle reports decimal-adjusted
// uiAmount). A wallet with no holding account has balance 0; that is a valid
// answer, not an error.
func (o *SolanaOracle) TokenBalance(ctx context.Context, owner, mint string) (float64, error) {
	params := []any{
		owner,
		map[string]string{"mint": mint},
		map[string]string{"encoding": "jsonParsed"},
	}

	var result tokenAccountsResult
	if err := rpcCall(ctx, o.client, o.url, "getTokenAccountsByOwner", params, &result); err != nil {
		return 0, err
	}

	var balance float64
	for _, entry := range result.Value {
		if amount := entry.Account.Data.Parsed.Info.TokenAmount.UIAmount; amount != nil {
			balance += *amount
		}
	}
	return balance, nil
}

// assetResult models the getAsset (DAS) response for fungible tokens.
type assetResult struct {
	Content struct {
		Metadata struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"metadata"`
		Links struct {
			Image string `json:"image"`
		} `json:"links"`
	} `json:"content"`
	TokenInfo struct {
		Symbol   string `json:"symbol"`
		Decimals *int   `json:"decimals"`
	} `json:"token_info"`
}

// AssetMetadata fetches fungible token metadata for the mint.
func (o *SolanaOracle) AssetMetadata(ctx context.Context, mint string) (TokenMetadata, error) {
	params := map[string]any{
		"id": mint,
		"displayOptions": map[string]bool{
			"showFungible": true,
		},
	}

	var result assetResult
	if err := rpcCall(ctx, o.client, o.url, "getAsset", params, &result); err != nil {
		return TokenMetadata{}, err
	}

	md := TokenMetadata{
		Name:     result.Content.Metadata.Name,
		Symbol:   result.Content.Metadata.Symbol,
		Decimals: result.TokenInfo.Decimals,
		LogoURL:  result.Content.Links.Image,
	}
	if md.Symbol == "" {
		md.Symbol = result.TokenInfo.Symbol
	}
	return md, nil
}
