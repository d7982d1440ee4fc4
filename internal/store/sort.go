package store

import (
	"sort"

	"finboard/internal/core"
)

// SortTransactions orders txs by date descending, ties by CreatedAt descending.
func SortTransactions(txs []core.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date != txs[j].Date {
			return txs[i].Date > txs[j].Date
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
}
