// internal/policy/policy.go
package policy

import (
	"strings"

	"custody-service/internal/domain"
)

// IsColdVault reports whether the vault sits in the COLD custody tier.
func IsColdVault(v *domain.Vault) bool {
	return v.Tier == domain.VaultTierCold
}

// ApprovalsRequiredForVault returns the vault's configured quorum. The
// COLD => 2, HOT => 1 convention is enforced at vault creation, not here.
func ApprovalsRequiredForVault(v *domain.Vault) int {
	return v.ApprovalsRequired
}

// IsAllowlistedAddress gates transfer destinations:
//   - EVM-style addresses: "0x" prefix, length >= 4
//   - BTC bech32 addresses: "bc1q" prefix, length >= 8
//
// Input is trimmed and matched case-insensitively. Everything else,
// including empty or whitespace input, is rejected.
func IsAllowlistedAddress(address string) bool {
	a := strings.ToLower(strings.TrimSpace(address))
	if strings.HasPrefix(a, "0x") && len(a) >= 4 {
		return true
	}
	if strings.HasPrefix(a, "bc1q") && len(a) >= 8 {
		return true
	}
	return false
}
