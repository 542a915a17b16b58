package model

// AccountKind groups accounts by how they are funded.
type AccountKind string

const (
	AccountPersonal  AccountKind = "Personal"
	AccountCapital   AccountKind = "Capital"
	AccountChallenge AccountKind = "Challenge"
)

// Account is a trading account. Trades reference accounts by Name, not ID,
// so names must be unique within one user's ledger.
type Account struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        AccountKind `json:"type"`
	Description string      `json:"description,omitempty"`
}

// DefaultAccounts returns the accounts seeded into a ledger that has never
// been saved.
func DefaultAccounts() []Account {
	return []Account{
		{ID: "personal-1", Name: "Personal Capital", Type: AccountPersonal},
		{ID: "capital-1", Name: "Just Capital", Type: AccountCapital},
	}
}

// ValidAccountKind reports whether k is one of the known account kinds.
func ValidAccountKind(k AccountKind) bool {
	switch k {
	case AccountPersonal, AccountCapital, AccountChallenge:
		return true
	}
	return false
}
