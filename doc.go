// Package stonks reconstructs the full history of a stock-market wallet from
// its brokerage notes, for the Brazilian exchange.
//
// The pipeline runs in stages, each reading and writing artifacts of a
// file-based store:
//   - Stock directory: the exchange's listed companies, exploded into one
//     stock per ticker, used to resolve trade specifications.
//   - Trades: the chronological record of everything bought and sold,
//     imported from brokerage-note exports.
//   - Positions: the trades replayed into a sparse history of the wallet's
//     composition, with option expirations resolved automatically.
//   - Price histories: one per-ticker cache of daily closes covering exactly
//     the periods each ticker was held, fetched incrementally.
//   - Portfolio: the wallet valued at the close of every calendar day since
//     the first trade.
//   - Status: profit and nominal return over the standard reporting windows.
//
// A value that cannot be computed from cached data is an explicit "?", never
// a guess; one unknown price makes every total derived from it unknown too.
//
// This package is the engine behind the `stk` command line tool.
package stonks
