package ledger

import "lumo/internal/core"

// AddCategory appends a category, preserving insertion order. An exact
// (case-sensitive) duplicate is a no-op.
func (l *Ledger) AddCategory(name string) {
	for _, c := range l.state.Categories {
		if c == name {
			return
		}
	}
	l.state.Categories = append(l.state.Categories, name)
}

// RenameCategory replaces old with new in the registry and rewrites the
// category on every transaction and recurring rule that referenced it.
// An absent old name is a no-op.
func (l *Ledger) RenameCategory(old, new string) {
	found := false
	for i, c := range l.state.Categories {
		if c == old {
			l.state.Categories[i] = new
			found = true
			break
		}
	}
	if !found {
		return
	}
	for i := range l.state.Transactions {
		if l.state.Transactions[i].Category == old {
			l.state.Transactions[i].Category = new
		}
	}
	for i := range l.state.Recurring {
		if l.state.Recurring[i].Category == old {
			l.state.Recurring[i].Category = new
		}
	}
}

// RemoveCategory drops the category from the registry and re-points
// referencing transactions to the fallback. Recurring rules keep their
// now-dangling reference; the next materialization carries the deleted
// name as-is.
func (l *Ledger) RemoveCategory(name string) {
	cats := l.state.Categories[:0]
	for _, c := range l.state.Categories {
		if c != name {
			cats = append(cats, c)
		}
	}
	l.state.Categories = cats
	for i := range l.state.Transactions {
		if l.state.Transactions[i].Category == name {
			l.state.Transactions[i].Category = core.FallbackCategory
		}
	}
}
