package stonks

import (
	"fmt"
	"log"
	"maps"
	"slices"
)

// PriceSource fetches daily bars for a ticker over a list of closed, sorted,
// disjoint ranges. Implementations must return day-complete bars clipped
// exactly to the ranges, sorted ascending.
type PriceSource interface {
	History(ticker string, ranges Ranges) ([]PriceBar, error)
}

// HistoryStore is the per-ticker price cache. Load reports ok=false when no
// history was ever saved for the ticker.
type HistoryStore interface {
	LoadHistory(ticker string) (PriceHistory, bool, error)
	SaveHistory(ticker string, h PriceHistory) error
}

// UpdateHistories brings the cached price history of every held ticker up to
// cover its holding ranges, fetching only the missing days. Open range ends
// resolve to yesterday: today's close does not exist yet. A ticker whose cache
// already covers the wanted ranges is skipped without touching the source.
func UpdateHistories(held StockRanges, store HistoryStore, source PriceSource, maxGap int) error {
	yesterday := Today().Add(-1)

	for _, ticker := range slices.Sorted(maps.Keys(held)) {
		wanted := held[ticker].Resolve(yesterday)

		cached, ok, err := store.LoadHistory(ticker)
		if err != nil {
			return fmt.Errorf("loading history of %s: %w", ticker, err)
		}
		if !ok {
			toFetch := wanted.Compact(maxGap)
			bars, err := source.History(ticker, toFetch)
			if err != nil {
				return fmt.Errorf("fetching history of %s: %w", ticker, err)
			}
			if err := store.SaveHistory(ticker, PriceHistory{Ranges: toFetch, Bars: bars}); err != nil {
				return fmt.Errorf("saving history of %s: %w", ticker, err)
			}
			continue
		}

		merged := Union(cached.Ranges, wanted)
		if cached.Ranges.Equal(merged) {
			log.Printf("%s: history up to date", ticker)
			continue
		}
		merged = merged.Compact(maxGap)
		toFetch := ToFetch(cached.Ranges, merged).Compact(maxGap)

		bars, err := source.History(ticker, toFetch)
		if err != nil {
			return fmt.Errorf("fetching history of %s: %w", ticker, err)
		}
		h := PriceHistory{Ranges: merged, Bars: mergeBars(cached.Bars, bars)}
		if err := store.SaveHistory(ticker, h); err != nil {
			return fmt.Errorf("saving history of %s: %w", ticker, err)
		}
	}
	return nil
}
