package bank

import (
	"fmt"
	"sort"
	"strings"
)

// RankingIndex is a pure read view over the ledger's running aggregates.
type RankingIndex struct {
	ledger *AccountLedger
}

// TopByActivity formats the top n active accounts by total transaction value.
func (r *RankingIndex) TopByActivity(n int) string {
	return r.format(n, func(a *Account) int64 { return a.TotalValue })
}

// TopSpenders formats the top n active accounts by total withdrawn value.
func (r *RankingIndex) TopSpenders(n int) string {
	return r.format(n, func(a *Account) int64 { return a.TotalWithdrawn })
}

func (r *RankingIndex) format(n int, key func(*Account) int64) string {
	accounts := make([]*Account, 0, len(r.ledger.accounts))
	for _, a := range r.ledger.accounts {
		accounts = append(accounts, a)
	}
	// Descending by value, ties by id ascending for determinism.
	sort.Slice(accounts, func(i, j int) bool {
		ki, kj := key(accounts[i]), key(accounts[j])
		if ki != kj {
			return ki > kj
		}
		return accounts[i].ID < accounts[j].ID
	})
	if n < 0 {
		n = 0
	}
	if n < len(accounts) {
		accounts = accounts[:n]
	}
	parts := make([]string, len(accounts))
	for i, a := range accounts {
		parts[i] = fmt.Sprintf("%s(%d)", a.ID, key(a))
	}
	return strings.Join(parts, ", ")
}
