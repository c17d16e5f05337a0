package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/akozlenkov/content-analyzer/internal/core/domain"
	"github.com/akozlenkov/content-analyzer/internal/core/ports"
)

const (
	dayKeyLayout   = "2006-01-02"
	monthKeyLayout = "2006-01"
)

// SpendLedger owns an in-memory snapshot of the persisted spend record and
// enforces daily/monthly budget ceilings. Day and month keys are derived
// from wall-clock now at the moment of each call, not from ingestion time.
//
// CanAfford is a pure, non-reserving read: two callers sharing the same
// store can both pass it before either records usage. Accepted for the
// single-operator deployment model.
type SpendLedger struct {
	store        ports.LedgerStore
	dailyLimit   float64
	monthlyLimit float64
	now          func() time.Time

	mu     sync.Mutex
	record domain.LedgerRecord
}

func NewSpendLedger(store ports.LedgerStore, dailyLimit, monthlyLimit float64, now func() time.Time) (*SpendLedger, error) {
	if now == nil {
		now = time.Now
	}
	record, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load ledger record: %w", err)
	}
	return &SpendLedger{
		store:        store,
		dailyLimit:   dailyLimit,
		monthlyLimit: monthlyLimit,
		now:          now,
		record:       record,
	}, nil
}

// Reload replaces the in-memory snapshot with the persisted one.
func (l *SpendLedger) Reload() error {
	record, err := l.store.Load()
	if err != nil {
		return fmt.Errorf("reload ledger record: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record = record
	return nil
}

func (l *SpendLedger) CurrentDailyUsage() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record.Daily[l.dayKey()]
}

func (l *SpendLedger) CurrentMonthlyUsage() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record.Monthly[l.monthKey()]
}

// RemainingDailyBudget may go negative after an overcommitting RecordUsage;
// it is never clamped.
func (l *SpendLedger) RemainingDailyBudget() float64 {
	return l.dailyLimit - l.CurrentDailyUsage()
}

func (l *SpendLedger) RemainingMonthlyBudget() float64 {
	return l.monthlyLimit - l.CurrentMonthlyUsage()
}

func (l *SpendLedger) CanAfford(estimatedCost float64) bool {
	return l.RemainingDailyBudget() >= estimatedCost &&
		l.RemainingMonthlyBudget() >= estimatedCost
}

// RecordUsage adds cost to today's daily bucket and this month's monthly
// bucket, then persists the full snapshot. A persist failure is returned to
// the caller; the in-memory increment is kept so affordability checks in
// this process never under-report spend.
func (l *SpendLedger) RecordUsage(cost float64) error {
	if cost < 0 {
		return domain.WrapError(domain.ErrInvalidAmount, "record usage", fmt.Errorf("negative cost %.6f", cost))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.record.Daily == nil {
		l.record = domain.NewLedgerRecord()
	}
	l.record.Daily[l.dayKey()] += cost
	l.record.Monthly[l.monthKey()] += cost

	if err := l.store.Save(l.record.Clone()); err != nil {
		return fmt.Errorf("persist ledger record: %w", err)
	}
	return nil
}

// EstimateCost applies the injected pricing function to a token count. The
// same function must be used for the affordability check and the eventual
// recorded usage.
func (l *SpendLedger) EstimateCost(tokenCount int, pricing ports.PricingFn) float64 {
	if pricing == nil {
		return 0
	}
	return pricing(tokenCount)
}

func (l *SpendLedger) dayKey() string {
	return l.now().UTC().Format(dayKeyLayout)
}

func (l *SpendLedger) monthKey() string {
	return l.now().UTC().Format(monthKeyLayout)
}
