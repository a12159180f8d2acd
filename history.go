package stonks

import "github.com/shopspring/decimal"

// PriceBar is one day of trading data for a security. Non-trading days inside
// a covered range carry the previous close forward with zero volume, so every
// covered range is day-complete.
type PriceBar struct {
	Date      Date            `json:"date"`
	Close     decimal.Decimal `json:"close"`
	Change    decimal.Decimal `json:"change"`
	ChangePct decimal.Decimal `json:"change_pct"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Volume    int64           `json:"volume"`
}

// PriceHistory is the cached price data of one ticker: the covered ranges and
// one bar per day of every range, both sorted ascending. len(Bars) equals the
// sum of the ranges' day counts.
type PriceHistory struct {
	Ranges Ranges     `json:"ranges"`
	Bars   []PriceBar `json:"bars"`
}

// mergeBars combines two date-sorted bar lists into one. On a date collision
// the bar from 'a' wins, so previously cached data is never rewritten.
func mergeBars(a, b []PriceBar) []PriceBar {
	merged := make([]PriceBar, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch d := DaysBetween(b[j].Date, a[i].Date); {
		case d < 0:
			merged = append(merged, a[i])
			i++
		case d > 0:
			merged = append(merged, b[j])
			j++
		default:
			merged = append(merged, a[i])
			i++
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

// indexOf returns the position of the bar for 'day', or -1 when the day is not
// covered. 'hint' is the caller's guess, normally the index of the previous
// day plus one; when the guess is right the lookup is O(1), otherwise the
// index is recomputed by scanning the covered ranges.
func (h PriceHistory) indexOf(day Date, hint int) int {
	if hint >= 0 && hint < len(h.Bars) && h.Bars[hint].Date == day {
		return hint
	}
	index := 0
	for _, r := range h.Ranges {
		if r.End.Before(day) {
			index += r.DayCount()
			continue
		}
		if r.Start.After(day) {
			return -1
		}
		return index + DaysBetween(r.Start, day)
	}
	return -1
}
