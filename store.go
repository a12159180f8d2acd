package stonks

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store persists the pipeline artifacts under a root directory. JSON files
// under json/ are authoritative and read back by later stages; CSV sheets
// under sheets/ are written alongside for spreadsheet use and never read.
// Per-ticker price histories live in a historical/ subfolder of both.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. Directories are created on first save.
func NewStore(dir string) *Store { return &Store{dir: dir} }

var _ HistoryStore = (*Store)(nil)

func (s *Store) jsonPath(name string) string {
	return filepath.Join(s.dir, "json", name+".json")
}

func (s *Store) sheetPath(name string) string {
	return filepath.Join(s.dir, "sheets", name+".csv")
}

// loadJSON reads json/<name>.json into out. A missing file is not an error;
// it reports ok=false so callers can distinguish "never built" from "broken".
func (s *Store) loadJSON(name string, out any) (bool, error) {
	data, err := os.ReadFile(s.jsonPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading artifact %q: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decoding artifact %q: %w", name, err)
	}
	return true, nil
}

func (s *Store) saveJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding artifact %q: %w", name, err)
	}
	path := s.jsonPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Store) saveSheet(name string, records [][]string) error {
	path := s.sheetPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("writing sheet %q: %w", name, err)
	}
	return f.Close()
}

// Companies

func (s *Store) LoadCompanies() ([]Company, bool, error) {
	var companies []Company
	ok, err := s.loadJSON("companies", &companies)
	return companies, ok, err
}

func (s *Store) SaveCompanies(companies []Company) error {
	if err := s.saveJSON("companies", companies); err != nil {
		return err
	}
	log.Printf(`artifact "companies" (json) saved`)
	return nil
}

// Stocks

func (s *Store) LoadStocks() ([]Stock, bool, error) {
	var stocks []Stock
	ok, err := s.loadJSON("stocks", &stocks)
	return stocks, ok, err
}

func (s *Store) SaveStocks(stocks []Stock) error {
	if err := s.saveJSON("stocks", stocks); err != nil {
		return err
	}
	records := [][]string{{"Name", "Type", "Segment", "Ticker"}}
	for _, stock := range stocks {
		records = append(records, []string{stock.Name, stock.Type, stock.Segment, stock.Ticker})
	}
	if err := s.saveSheet("stocks", records); err != nil {
		return err
	}
	log.Printf(`artifacts "stocks" (json / csv) saved`)
	return nil
}

// Trades

func (s *Store) LoadTrades() ([]Trade, bool, error) {
	var trades []Trade
	ok, err := s.loadJSON("trades", &trades)
	return trades, ok, err
}

func (s *Store) SaveTrades(trades []Trade) error {
	if err := s.saveJSON("trades", trades); err != nil {
		return err
	}
	records := [][]string{{
		"Date", "Broker", "C/V", "Market Type", "Expiration",
		"Security Spec", "Ticker", "Quantity", "Price", "Amount",
	}}
	for _, t := range trades {
		expiration := ""
		if !t.Expiration.IsZero() {
			expiration = t.Expiration.String()
		}
		records = append(records, []string{
			t.Date.String(), t.Broker, string(t.Side), t.MarketType, expiration,
			t.Spec, t.Ticker, strconv.FormatInt(t.Quantity, 10),
			t.Price.String(), t.Amount.String(),
		})
	}
	if err := s.saveSheet("trades", records); err != nil {
		return err
	}
	log.Printf(`artifacts "trades" (json / csv) saved`)
	return nil
}

// Taxes

func (s *Store) LoadTaxes() ([]Tax, bool, error) {
	var taxes []Tax
	ok, err := s.loadJSON("taxes", &taxes)
	return taxes, ok, err
}

func (s *Store) SaveTaxes(taxes []Tax) error {
	if err := s.saveJSON("taxes", taxes); err != nil {
		return err
	}
	records := [][]string{{
		"Date", "Broker", "Liquidation Fee", "Registration Fee", "Emoluments",
		"Brokerage Fee", "ISS", "IRRF", "Total", "Net Amount",
	}}
	for _, t := range taxes {
		records = append(records, []string{
			t.Date.String(), t.Broker, t.Liquidation.String(), t.Registration.String(),
			t.Emoluments.String(), t.Brokerage.String(), t.ISS.String(), t.IRRF.String(),
			t.Total.String(), t.NetAmount.String(),
		})
	}
	if err := s.saveSheet("taxes", records); err != nil {
		return err
	}
	log.Printf(`artifacts "taxes" (json / csv) saved`)
	return nil
}

// Tickers

func (s *Store) LoadTickers() ([]string, bool, error) {
	var tickers []string
	ok, err := s.loadJSON("tickers", &tickers)
	return tickers, ok, err
}

func (s *Store) SaveTickers(tickers []string) error {
	if err := s.saveJSON("tickers", tickers); err != nil {
		return err
	}
	records := [][]string{{"Ticker"}}
	for _, ticker := range tickers {
		records = append(records, []string{ticker})
	}
	if err := s.saveSheet("tickers", records); err != nil {
		return err
	}
	log.Printf(`artifacts "tickers" (json / csv) saved`)
	return nil
}

// Positions

func (s *Store) LoadPositions() ([]PositionSnapshot, bool, error) {
	var positions []PositionSnapshot
	ok, err := s.loadJSON("positions", &positions)
	return positions, ok, err
}

// SavePositions writes the snapshot series; the sheet gets one column per
// ticker in the given order.
func (s *Store) SavePositions(positions []PositionSnapshot, tickers []string) error {
	if err := s.saveJSON("positions", positions); err != nil {
		return err
	}
	header := append([]string{"Date", "Contributions", "Withdrawals"}, tickers...)
	records := [][]string{header}
	for _, p := range positions {
		row := []string{p.Date.String(), p.Contributions.String(), p.Withdrawals.String()}
		for _, ticker := range tickers {
			cell := ""
			if qty, held := p.Holdings[ticker]; held {
				cell = strconv.FormatInt(qty, 10)
			}
			row = append(row, cell)
		}
		records = append(records, row)
	}
	if err := s.saveSheet("positions", records); err != nil {
		return err
	}
	log.Printf(`artifacts "positions" (json / csv) saved`)
	return nil
}

// Ranges

func (s *Store) LoadRanges() (StockRanges, bool, error) {
	var ranges StockRanges
	ok, err := s.loadJSON("ranges", &ranges)
	return ranges, ok, err
}

func (s *Store) SaveRanges(ranges StockRanges) error {
	if err := s.saveJSON("ranges", ranges); err != nil {
		return err
	}
	log.Printf(`artifact "ranges" (json) saved`)
	return nil
}

// Historical

// historyName flattens a ticker into a file name. Option tickers contain a
// "mm/yy" suffix whose slash cannot appear in a path.
func historyName(ticker string) string {
	return filepath.Join("historical", strings.ReplaceAll(ticker, "/", "-"))
}

func (s *Store) LoadHistory(ticker string) (PriceHistory, bool, error) {
	var h PriceHistory
	ok, err := s.loadJSON(historyName(ticker), &h)
	return h, ok, err
}

func (s *Store) SaveHistory(ticker string, h PriceHistory) error {
	name := historyName(ticker)
	if err := s.saveJSON(name, h); err != nil {
		return err
	}
	records := [][]string{{"Date", "Close", "Change", "Change (%)", "Open", "High", "Low", "Volume"}}
	for _, bar := range h.Bars {
		records = append(records, []string{
			bar.Date.String(), bar.Close.String(), bar.Change.String(), bar.ChangePct.String(),
			bar.Open.String(), bar.High.String(), bar.Low.String(),
			strconv.FormatInt(bar.Volume, 10),
		})
	}
	if err := s.saveSheet(name, records); err != nil {
		return err
	}
	log.Printf("artifacts %q (json / csv) saved", name)
	return nil
}

// Portfolio

func (s *Store) LoadPortfolio() ([]PortfolioSnapshot, bool, error) {
	var portfolio []PortfolioSnapshot
	ok, err := s.loadJSON("portfolio", &portfolio)
	return portfolio, ok, err
}

// SavePortfolio writes the valued series; the sheet gets one column per
// ticker in the given order, with "?" marking unknown values.
func (s *Store) SavePortfolio(portfolio []PortfolioSnapshot, tickers []string) error {
	if err := s.saveJSON("portfolio", portfolio); err != nil {
		return err
	}
	header := append([]string{"Date", "Contributions", "Withdrawals", "Total"}, tickers...)
	records := [][]string{header}
	for _, p := range portfolio {
		row := []string{p.Date.String(), p.Contributions.String(), p.Withdrawals.String(), p.Total.String()}
		for _, ticker := range tickers {
			cell := ""
			if value, held := p.Holdings[ticker]; held {
				cell = value.String()
			}
			row = append(row, cell)
		}
		records = append(records, row)
	}
	if err := s.saveSheet("portfolio", records); err != nil {
		return err
	}
	log.Printf(`artifacts "portfolio" (json / csv) saved`)
	return nil
}
