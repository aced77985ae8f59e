package domain

type VaultTier string

const (
	VaultTierCold VaultTier = "COLD"
	VaultTierHot  VaultTier = "HOT"
)

// Vault is a custody account with a security tier and an approval policy.
// Reference data: immutable after seeding. ApprovalsRequired is fixed at
// vault creation time (COLD vaults carry >= 2 by convention).
type Vault struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Tier              VaultTier `json:"tier"`
	ApprovalsRequired int       `json:"approvals_required"`
}
