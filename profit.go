package stonks

// Profit computes the wallet's gain and nominal return over [from, to] of the
// dense portfolio series. The window is clamped to the series; a window that
// degenerates to less than one full day yields Unknown for both results.
//
// The gain is the change in total value net of the cash moved in and out over
// the window. The return is that gain over the capital exposed: the starting
// total plus the window's contributions, as a percentage.
func Profit(portfolio []PortfolioSnapshot, from, to Date) (profit, yield Value) {
	if len(portfolio) == 0 {
		return Unknown, Unknown
	}
	first := portfolio[0].Date
	last := portfolio[len(portfolio)-1].Date
	if from.Before(first) {
		from = first
	}
	if last.Before(to) {
		to = last
	}

	fromIdx := DaysBetween(first, from)
	toIdx := DaysBetween(first, to)
	if toIdx <= fromIdx || toIdx < 0 {
		return Unknown, Unknown
	}

	a, b := portfolio[fromIdx], portfolio[toIdx]

	contributed := V(b.Contributions.Sub(a.Contributions))
	withdrawn := V(b.Withdrawals.Sub(a.Withdrawals))

	profit = b.Total.Sub(a.Total).Sub(contributed).Add(withdrawn).Round2()

	invested := a.Total.Add(contributed)
	yield = V(100).Mul(profit).Div(invested).Round2()

	return profit, yield
}
