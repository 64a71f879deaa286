package terminal

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
)

// DailyTotals tracks the sales made on this terminal during the current
// local day, plus the last cashier activity reported by heartbeats.
type DailyTotals struct {
	mu           sync.Mutex
	day          time.Time
	count        int
	total        int64
	lastActivity time.Time
	currentUser  string
}

// TotalsSnapshot is a copy of the counters at one point in time.
type TotalsSnapshot struct {
	Count        int
	Total        int64
	LastActivity time.Time
	CurrentUser  string
}

// NewDailyTotals starts counting on the day of now.
func NewDailyTotals(now time.Time) *DailyTotals {
	return &DailyTotals{day: dayOf(now)}
}

// AddSale counts sale towards the day it was sold on. Sales from an earlier
// day only update the activity fields.
func (d *DailyTotals) AddSale(sale models.Sale) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollover(sale.SoldAt)
	if dayOf(sale.SoldAt).Equal(d.day) {
		d.count++
		d.total += sale.Total
	}
	d.touchLocked(sale.Cashier, sale.SoldAt)
}

// Touch records cashier activity that is not a sale.
func (d *DailyTotals) Touch(cashier string, at time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollover(at)
	d.touchLocked(cashier, at)
}

// Snapshot returns the counters as seen at now, resetting them first if the
// day has changed.
func (d *DailyTotals) Snapshot(now time.Time) TotalsSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollover(now)
	return TotalsSnapshot{
		Count:        d.count,
		Total:        d.total,
		LastActivity: d.lastActivity,
		CurrentUser:  d.currentUser,
	}
}

func (d *DailyTotals) rollover(now time.Time) {
	if today := dayOf(now); today.After(d.day) {
		d.day = today
		d.count = 0
		d.total = 0
	}
}

func (d *DailyTotals) touchLocked(cashier string, at time.Time) {
	if at.After(d.lastActivity) {
		d.lastActivity = at
		if cashier != "" {
			d.currentUser = cashier
		}
	}
}

func dayOf(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}
