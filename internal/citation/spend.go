package citation

import "sync"

// SpendLedger accumulates external API spend across citation runs. It is
// injected wherever spend accrues; nothing in this package holds one at
// package level.
type SpendLedger struct {
	mu    sync.Mutex
	total float64
}

func NewSpendLedger() *SpendLedger {
	return &SpendLedger{}
}

func (l *SpendLedger) Add(usd float64) {
	l.mu.Lock()
	l.total += usd
	l.mu.Unlock()
}

func (l *SpendLedger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}
