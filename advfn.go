package stonks

import (
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// AdvfnSource fetches daily price bars from the advfn historical endpoint.
// Requests are paced by a fixed delay and retried with backoff; a request
// that still fails after the retries aborts the whole run.
type AdvfnSource struct {
	client *resty.Client
	base   string
	delay  time.Duration
}

var _ PriceSource = (*AdvfnSource)(nil)

// NewAdvfnSource builds a source from the config.
func NewAdvfnSource(cfg Config) *AdvfnSource {
	client := resty.New().
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second)
	return &AdvfnSource{
		client: client,
		base:   strings.TrimSuffix(cfg.HistoricalURL, "/"),
		delay:  cfg.Delay(),
	}
}

// History implements PriceSource. Option tickers query by their series symbol,
// the part before the space. Each range is paged through separately, with the
// query window padded a week on both sides so the first row inside the window
// has a real previous close to carry from; the result is cleaned and clipped
// back to the exact range.
func (s *AdvfnSource) History(ticker string, ranges Ranges) ([]PriceBar, error) {
	symbol, _, _ := strings.Cut(ticker, " ")
	log.Printf("downloading history of %s", ticker)

	var bars []PriceBar
	for _, r := range ranges {
		log.Printf("  (%s)", r)
		fetched, err := s.fetchRange(symbol, r)
		if err != nil {
			return nil, fmt.Errorf("history of %s %s: %w", ticker, r, err)
		}
		cleaned, err := cleanBars(fetched, r)
		if err != nil {
			return nil, fmt.Errorf("history of %s %s: %w", ticker, r, err)
		}
		bars = append(bars, cleaned...)
	}
	return bars, nil
}

// fetchRange pages through the endpoint until it stops reporting a next page.
// Rows arrive newest first; the result is returned oldest first.
func (s *AdvfnSource) fetchRange(symbol string, r Range) ([]PriceBar, error) {
	start := r.Start.Add(-7).Short()
	end := r.End.Add(7).Short()

	var bars []PriceBar
	for page := 0; ; page++ {
		log.Printf("    page %d", page)
		time.Sleep(s.delay)

		resp, err := s.client.R().
			SetQueryParams(map[string]string{
				"current": fmt.Sprint(page),
				"Date1":   start,
				"Date2":   end,
			}).
			Get(s.base + "/" + symbol)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("status %s", resp.Status())
		}

		var jobj any
		if err := json.Unmarshal(resp.Body(), &jobj); err != nil {
			return nil, fmt.Errorf("decoding page %d: %w", page, err)
		}
		rows, err := jsonRows(jobj)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			bar, err := parseBar(row)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", page, err)
			}
			bars = append(bars, bar)
		}

		next, err := jsonpath.Get("$.result.next", jobj)
		if err != nil || next != true {
			break
		}
	}

	slices.Reverse(bars)
	return bars, nil
}

// jsonRows extracts the row objects of one result page.
func jsonRows(jobj any) ([]map[string]any, error) {
	jval, err := jsonpath.Get("$.result.rows", jobj)
	if err != nil {
		return nil, fmt.Errorf("no rows in payload: %w", err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("rows is not a list")
	}
	rows := make([]map[string]any, 0, len(jlist))
	for _, item := range jlist {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("row is not an object")
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseBar reads one row of the payload. Numbers arrive as pt-BR formatted
// strings ("1.234,56"); the percent column carries a trailing "%".
func parseBar(row map[string]any) (PriceBar, error) {
	date, err := ParseDate(jsonString(row["date"]))
	if err != nil {
		return PriceBar{}, err
	}
	bar := PriceBar{Date: date}

	fields := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"close", &bar.Close},
		{"change", &bar.Change},
		{"change_pct", &bar.ChangePct},
		{"open", &bar.Open},
		{"high", &bar.High},
		{"low", &bar.Low},
	}
	for _, f := range fields {
		d, err := parseBRNumber(jsonString(row[f.name]))
		if err != nil {
			return PriceBar{}, fmt.Errorf("bar of %s, field %s: %w", date, f.name, err)
		}
		*f.dst = d
	}

	volume, err := parseBRNumber(jsonString(row["volume"]))
	if err != nil {
		return PriceBar{}, fmt.Errorf("bar of %s, field volume: %w", date, err)
	}
	bar.Volume = volume.IntPart()
	return bar, nil
}

// jsonString renders a payload value as a string; this weird API switches
// between numbers and formatted strings across pages.
func jsonString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return decimal.NewFromFloat(s).String()
	default:
		return fmt.Sprint(v)
	}
}

// parseBRNumber parses a pt-BR formatted number: "." groups thousands and ","
// marks the decimals. Plain "1234.56" strings pass through unchanged.
func parseBRNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

// flatBar is a synthetic non-trading day carrying the previous close.
func flatBar(day Date, close decimal.Decimal) PriceBar {
	return PriceBar{
		Date:  day,
		Close: close,
		Open:  close,
		High:  close,
		Low:   close,
	}
}

// cleanBars turns a raw, date-sorted bar list into the day-complete series of
// exactly [r.Start, r.End]: duplicate days are dropped, calendar gaps and
// zero-volume days carry the previous close forward with zero change, the tail
// is padded up to the range end, and everything outside the range is clipped.
func cleanBars(bars []PriceBar, r Range) ([]PriceBar, error) {
	clean := make([]PriceBar, 0, r.DayCount())
	for _, bar := range bars {
		if len(clean) == 0 {
			clean = append(clean, bar)
			continue
		}
		prev := clean[len(clean)-1]
		if !bar.Date.After(prev.Date) {
			continue
		}
		for day := prev.Date.Add(1); day.Before(bar.Date); day = day.Add(1) {
			clean = append(clean, flatBar(day, prev.Close))
		}
		if bar.Volume == 0 {
			bar = flatBar(bar.Date, prev.Close)
		}
		clean = append(clean, bar)
	}
	if len(clean) == 0 {
		return nil, fmt.Errorf("no data for %s", r)
	}

	for last := clean[len(clean)-1]; last.Date.Before(r.End); last = clean[len(clean)-1] {
		clean = append(clean, flatBar(last.Date.Add(1), last.Close))
	}

	first := 0
	for first < len(clean) && clean[first].Date.Before(r.Start) {
		first++
	}
	last := len(clean)
	for last > first && clean[last-1].Date.After(r.End) {
		last--
	}
	clean = clean[first:last]
	if len(clean) != r.DayCount() {
		return nil, fmt.Errorf("incomplete data for %s: %d of %d days", r, len(clean), r.DayCount())
	}
	return clean, nil
}
