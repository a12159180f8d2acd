package stonks

import (
	"testing"

	"github.com/shopspring/decimal"
)

// bar builds a minimal test bar, only date and close matter here.
func bar(date string, close float64) PriceBar {
	return PriceBar{Date: MustDate(date), Close: decimal.NewFromFloat(close)}
}

func TestMergeBars(t *testing.T) {
	a := []PriceBar{bar("01/01/2024", 10), bar("02/01/2024", 11)}
	b := []PriceBar{bar("02/01/2024", 99), bar("03/01/2024", 12)}

	got := mergeBars(a, b)
	want := []PriceBar{bar("01/01/2024", 10), bar("02/01/2024", 11), bar("03/01/2024", 12)}
	if len(got) != len(want) {
		t.Fatalf("got %d bars, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Date != want[i].Date || !got[i].Close.Equal(want[i].Close) {
			t.Errorf("bar %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMergeBarsOneEmpty(t *testing.T) {
	a := []PriceBar{bar("01/01/2024", 10)}
	if got := mergeBars(a, nil); len(got) != 1 || got[0].Date != a[0].Date {
		t.Errorf("mergeBars(a, nil) = %v, want %v", got, a)
	}
	if got := mergeBars(nil, a); len(got) != 1 || got[0].Date != a[0].Date {
		t.Errorf("mergeBars(nil, a) = %v, want %v", got, a)
	}
}

func TestHistoryIndexOf(t *testing.T) {
	// Two ranges with a hole: 01-03/01 and 10-12/01.
	h := PriceHistory{
		Ranges: Ranges{rng("01/01/2024", "03/01/2024"), rng("10/01/2024", "12/01/2024")},
		Bars: []PriceBar{
			bar("01/01/2024", 1), bar("02/01/2024", 2), bar("03/01/2024", 3),
			bar("10/01/2024", 4), bar("11/01/2024", 5), bar("12/01/2024", 6),
		},
	}

	tests := []struct {
		day  string
		hint int
		want int
	}{
		{"01/01/2024", -1, 0}, // cold start, bad hint
		{"02/01/2024", 1, 1},  // hint hits
		{"03/01/2024", 0, 2},  // hint misses, recompute within first range
		{"10/01/2024", 3, 3},  // hint hits across the hole
		{"11/01/2024", 0, 4},  // recompute lands in second range
		{"05/01/2024", 0, -1}, // in the hole
		{"31/12/2023", 0, -1}, // before all ranges
		{"20/01/2024", 0, -1}, // after all ranges
	}
	for _, tt := range tests {
		if got := h.indexOf(MustDate(tt.day), tt.hint); got != tt.want {
			t.Errorf("indexOf(%s, hint=%d) = %d, want %d", tt.day, tt.hint, got, tt.want)
		}
	}
}
