package ledger

import "lumo/internal/core"

// CategoryAmount pairs a category with an accumulated amount.
type CategoryAmount struct {
	Name   string     `json:"name"`
	Amount core.Money `json:"amount"`
}

// MonthStats summarizes one calendar month: income and expense totals
// plus expense sums per category, in order of first appearance.
type MonthStats struct {
	Year       int              `json:"year"`
	Month      int              `json:"month"`
	Income     core.Money       `json:"income"`
	Expenses   core.Money       `json:"expenses"`
	ByCategory []CategoryAmount `json:"byCategory"`
}

// Stats computes the monthly summary from the stored transactions.
// Transfers move money between accounts and count toward neither total.
func (l *Ledger) Stats(year, month int) MonthStats {
	stats := MonthStats{Year: year, Month: month}
	index := map[string]int{}
	for _, t := range l.state.Transactions {
		if !t.Date.InMonth(year, month) {
			continue
		}
		switch t.Kind {
		case core.KindIncome:
			stats.Income.Cents += t.Amount.Cents
		case core.KindExpense:
			stats.Expenses.Cents += t.Amount.Cents
			i, ok := index[t.Category]
			if !ok {
				i = len(stats.ByCategory)
				index[t.Category] = i
				stats.ByCategory = append(stats.ByCategory, CategoryAmount{Name: t.Category})
			}
			stats.ByCategory[i].Amount.Cents += t.Amount.Cents
		}
	}
	return stats
}
