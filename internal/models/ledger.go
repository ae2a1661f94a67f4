package models

// Ledger is an append-only, order-preserving set of strings.
// It backs the clue ledger, the inventory and the evidence lists.
type Ledger struct {
	items []string
	seen  map[string]struct{}
}

func NewLedger(items ...string) *Ledger {
	l := &Ledger{seen: make(map[string]struct{})}
	for _, item := range items {
		l.Add(item)
	}
	return l
}

// Add appends item unless it is empty or already present. It reports whether the ledger grew.
func (l *Ledger) Add(item string) bool {
	if item == "" {
		return false
	}
	if _, ok := l.seen[item]; ok {
		return false
	}
	l.seen[item] = struct{}{}
	l.items = append(l.items, item)
	return true
}

func (l *Ledger) Contains(item string) bool {
	_, ok := l.seen[item]
	return ok
}

func (l *Ledger) Len() int {
	return len(l.items)
}

// Items returns a copy of the entries in insertion order.
func (l *Ledger) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}
