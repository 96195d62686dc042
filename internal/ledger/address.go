package ledger

import (
	"regexp"
	"strings"

	"github.com/asaskevich/govalidator"

	"tokengate/internal/policy/models"
	dErrors "tokengate/pkg/domain-errors"
)

var base58Pattern = regexp.MustCompile(`^[1-9A-HJ-NP-Za-km-z]{32,44}$`)

// ValidateWallet checks the wallet address syntax for the given chain before
// any network call is made. A malformed address fails fast instead of burning
// an oracle round trip.
func ValidateWallet(chain models.Chain, address string) error {
	switch chain {
	case models.ChainEVM:
		if !isEVMAddress(address) {
			return dErrors.New(dErrors.CodeValidation, "Wallet address is not a valid 0x-prefixed hex address.")
		}
	case models.ChainSolana:
		if !base58Pattern.MatchString(address) {
			return dErrors.New(dErrors.CodeValidation, "Wallet address is not a valid base-58 address.")
		}
	default:
		return dErrors.Newf(dErrors.CodeValidation, "unsupported chain %q", chain)
	}
	return nil
}

// ValidateToken checks the token identifier syntax for the given chain.
func ValidateToken(chain models.Chain, tokenID string) error {
	switch chain {
	case models.ChainEVM:
		if !isEVMAddress(tokenID) {
			return dErrors.New(dErrors.CodeValidation, "Token identifier is not a valid 0x-prefixed hex address.")
		}
	case models.ChainSolana:
		if !base58Pattern.MatchString(tokenID) {
			return dErrors.New(dErrors.CodeValidation, "Token identifier is not a valid base-58 mint address.")
		}
	default:
		return dErrors.Newf(dErrors.CodeValidation, "unsupported chain %q", chain)
	}
	return nil
}

func isEVMAddress(s string) bool {
	rest, ok := strings.CutPrefix(s, "0x")
	return ok && len(rest) == 40 && govalidator.IsHexadecimal(rest)
}
