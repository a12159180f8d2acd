package stonks

import (
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PositionSnapshot is the state of the wallet at the end of one day on which
// it changed: held quantity per ticker (negative means short) and the running
// totals of cash contributed and withdrawn since the first trade. The series
// is sparse; days without trades or expirations produce no snapshot.
type PositionSnapshot struct {
	Date          Date             `json:"date"`
	Contributions decimal.Decimal  `json:"contributions"`
	Withdrawals   decimal.Decimal  `json:"withdrawals"`
	Holdings      map[string]int64 `json:"holdings"`
}

// clone returns a deep copy carrying the given date.
func (p PositionSnapshot) clone(on Date) PositionSnapshot {
	return PositionSnapshot{
		Date:          on,
		Contributions: p.Contributions,
		Withdrawals:   p.Withdrawals,
		Holdings:      maps.Clone(p.Holdings),
	}
}

// optionExpiration splits an option ticker ("<series> mm/yy") and returns the
// expiration date of its month, or ok=false for regular tickers.
func optionExpiration(ticker string, memo map[string]Date) (Date, bool) {
	_, mmyy, found := strings.Cut(ticker, " ")
	if !found {
		return Date{}, false
	}
	return expirationDate(mmyy, memo)
}

// expirationDate returns the expiration date for a "mm/yy" month, using the
// exchange's fixed rule: the Monday numbered 23 minus the weekday of the 1st.
// The memo caches results across calls within one ledger run. A suffix that
// does not parse as a month reports ok=false.
func expirationDate(mmyy string, memo map[string]Date) (Date, bool) {
	if d, ok := memo[mmyy]; ok {
		return d, true
	}
	on, err := time.Parse(shortDateFormat, "01/"+mmyy)
	if err != nil {
		return Date{}, false
	}
	first := NewDate(on.Date())
	d := NewDate(first.Year(), first.Month(), 23-int(first.Weekday()))
	memo[mmyy] = d
	return d, true
}

// ledger accumulates position snapshots while replaying trades.
type ledger struct {
	snapshots   []PositionSnapshot
	expirations []Date // pending option expirations, sorted ascending
	memo        map[string]Date
}

// registerExpiration queues an expiration date, keeping the queue sorted and
// free of duplicates.
func (l *ledger) registerExpiration(on Date) {
	if slices.Contains(l.expirations, on) {
		return
	}
	l.expirations = append(l.expirations, on)
	slices.SortFunc(l.expirations, func(a, b Date) int { return DaysBetween(b, a) })
}

// resolveExpirationsUntil pops every queued expiration on or before 'date' and
// appends a snapshot with the expired option tickers removed. Quantities of
// expired options are forfeited, not traded out.
func (l *ledger) resolveExpirationsUntil(date Date) {
	for len(l.expirations) > 0 && !l.expirations[0].After(date) {
		due := l.expirations[0]
		l.expirations = l.expirations[1:]

		last := l.snapshots[len(l.snapshots)-1]
		snapshot := last.clone(due)
		for ticker := range snapshot.Holdings {
			if exp, ok := optionExpiration(ticker, l.memo); ok && exp == due {
				delete(snapshot.Holdings, ticker)
			}
		}
		l.snapshots = append(l.snapshots, snapshot)
	}
}

// CalculatePositions replays the trades (which must be sorted ascending by
// date) into the sparse snapshot series. Same-day trades mutate the same
// snapshot. Option expirations strictly between two trade dates, and between
// the last trade and 'today', produce their own snapshots.
func CalculatePositions(trades []Trade, today Date) []PositionSnapshot {
	if len(trades) == 0 {
		return nil
	}

	l := &ledger{
		snapshots: []PositionSnapshot{{
			Date:     trades[0].Date,
			Holdings: map[string]int64{},
		}},
		memo: make(map[string]Date),
	}

	for _, trade := range trades {
		l.resolveExpirationsUntil(trade.Date)

		snapshot := &l.snapshots[len(l.snapshots)-1]
		if trade.Date != snapshot.Date {
			l.snapshots = append(l.snapshots, snapshot.clone(trade.Date))
			snapshot = &l.snapshots[len(l.snapshots)-1]
		}

		qty := trade.Quantity
		if trade.Side == Buy {
			snapshot.Contributions = round2(snapshot.Contributions.Add(trade.Amount))
		} else {
			qty = -qty
			snapshot.Withdrawals = round2(snapshot.Withdrawals.Add(trade.Amount))
		}

		if _, held := snapshot.Holdings[trade.Ticker]; held {
			snapshot.Holdings[trade.Ticker] += qty
			if snapshot.Holdings[trade.Ticker] == 0 {
				delete(snapshot.Holdings, trade.Ticker)
			}
		} else {
			snapshot.Holdings[trade.Ticker] = qty
			if !trade.Expiration.IsZero() {
				l.registerExpiration(trade.Expiration)
			}
		}
	}

	l.resolveExpirationsUntil(today)
	return l.snapshots
}

// StockRanges maps each ticker to the date ranges during which it was held.
type StockRanges map[string]Ranges

// HoldingRanges derives, from the sparse snapshot series, the periods each
// ticker spent in the wallet. A ticker's range opens at the snapshot where it
// (re)appears and closes at the first following snapshot where it is absent.
// The last range stays open while the ticker is still held.
func HoldingRanges(positions []PositionSnapshot) StockRanges {
	ranges := make(StockRanges)

	for i, position := range positions {
		for ticker := range position.Holdings {
			held := ranges[ticker]
			if held == nil {
				ranges[ticker] = Ranges{{Start: position.Date}}
			} else if i > 0 {
				if _, before := positions[i-1].Holdings[ticker]; !before {
					ranges[ticker] = append(held, Range{Start: position.Date})
				}
			}
			if i+1 < len(positions) {
				if _, after := positions[i+1].Holdings[ticker]; !after {
					held = ranges[ticker]
					held[len(held)-1].End = positions[i+1].Date
				}
			}
		}
	}

	return ranges
}
