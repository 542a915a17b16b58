package model

// Ledger is everything persisted for one user. Trades are kept newest
// insertion first; metrics rely on that order to rebuild chronology.
type Ledger struct {
	Trades     []Trade          `json:"trades"`
	Accounts   []Account        `json:"accounts"`
	Directions []DailyDirection `json:"directionHistory"`
}

// NewLedger returns the state of a user who has never saved anything.
func NewLedger() *Ledger {
	return &Ledger{
		Trades:     []Trade{},
		Accounts:   DefaultAccounts(),
		Directions: []DailyDirection{},
	}
}

// AddTrades prepends a batch, keeping the batch's own order, so the batch
// becomes the new front of the ledger.
func (l *Ledger) AddTrades(batch []Trade) {
	merged := make([]Trade, 0, len(batch)+len(l.Trades))
	merged = append(merged, batch...)
	merged = append(merged, l.Trades...)
	l.Trades = merged
}

// DeleteTrade removes the trade with the given id and reports whether it existed.
func (l *Ledger) DeleteTrade(id string) bool {
	for i, t := range l.Trades {
		if t.ID == id {
			l.Trades = append(l.Trades[:i:i], l.Trades[i+1:]...)
			return true
		}
	}
	return false
}

// FindAccount returns the account with the given name.
func (l *Ledger) FindAccount(name string) (Account, bool) {
	for _, a := range l.Accounts {
		if a.Name == name {
			return a, true
		}
	}
	return Account{}, false
}

// DeleteAccount removes the account with the given id. Trades that reference
// the account by name are left untouched.
func (l *Ledger) DeleteAccount(id string) (Account, bool) {
	for i, a := range l.Accounts {
		if a.ID == id {
			l.Accounts = append(l.Accounts[:i:i], l.Accounts[i+1:]...)
			return a, true
		}
	}
	return Account{}, false
}

// FindDirection returns a pointer into Directions so the outcome can be updated.
func (l *Ledger) FindDirection(id string) *DailyDirection {
	for i := range l.Directions {
		if l.Directions[i].ID == id {
			return &l.Directions[i]
		}
	}
	return nil
}

// DeleteDirection removes the bias record with the given id.
func (l *Ledger) DeleteDirection(id string) bool {
	for i, d := range l.Directions {
		if d.ID == id {
			l.Directions = append(l.Directions[:i:i], l.Directions[i+1:]...)
			return true
		}
	}
	return false
}
