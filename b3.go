package stonks

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/go-resty/resty/v2"
)

// zeroCNPJ is how the exchange fills the tax id of foreign listings.
const zeroCNPJ = "00.000.000/0000-00"

// B3Directory fetches the listed-company directory from the exchange.
type B3Directory struct {
	client *resty.Client
	base   string
	delay  time.Duration
}

// NewB3Directory builds a directory client from the config.
func NewB3Directory(cfg Config) *B3Directory {
	client := resty.New().
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second)
	return &B3Directory{
		client: client,
		base:   strings.TrimSuffix(cfg.CompaniesURL, "/"),
		delay:  cfg.Delay(),
	}
}

// Companies downloads the full directory: the listing gives each company's
// CVM code, then one paced detail request per company fills in the trading
// name, tax id and tickers. The result is cleaned and sorted by name.
func (d *B3Directory) Companies() ([]Company, error) {
	log.Printf("downloading the company listing")
	listed, err := d.listing()
	if err != nil {
		return nil, fmt.Errorf("company listing: %w", err)
	}

	companies := make([]Company, 0, len(listed))
	for i, company := range listed {
		log.Printf("(%d/%d) downloading company data: %s", i+1, len(listed), company.CVMCode)
		time.Sleep(d.delay)
		if err := d.detail(&company); err != nil {
			return nil, fmt.Errorf("company %s: %w", company.CVMCode, err)
		}
		companies = append(companies, company)
	}
	return cleanCompanies(companies), nil
}

func (d *B3Directory) get(url string, out *any) error {
	resp, err := d.client.R().Get(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("status %s", resp.Status())
	}
	return json.Unmarshal(resp.Body(), out)
}

// listing returns the skeleton companies of the directory page, CVM code and
// segment only.
func (d *B3Directory) listing() ([]Company, error) {
	var jobj any
	if err := d.get(d.base+"/companies", &jobj); err != nil {
		return nil, err
	}
	jval, err := jsonpath.Get("$.results", jobj)
	if err != nil {
		return nil, fmt.Errorf("no results in payload: %w", err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("results is not a list")
	}

	var companies []Company
	for _, item := range jlist {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("result is not an object")
		}
		companies = append(companies, Company{
			CVMCode: jsonString(row["cvm_code"]),
			Segment: strings.TrimSpace(jsonString(row["segment"])),
		})
	}
	return companies, nil
}

// detail fills in name, tax id and tickers from the company page.
func (d *B3Directory) detail(company *Company) error {
	var jobj any
	if err := d.get(d.base+"/company/"+company.CVMCode, &jobj); err != nil {
		return err
	}
	name, err := jsonpath.Get("$.company.trading_name", jobj)
	if err != nil {
		return fmt.Errorf("no trading name: %w", err)
	}
	company.Name = strings.TrimSpace(jsonString(name))

	if cnpj, err := jsonpath.Get("$.company.cnpj", jobj); err == nil {
		company.CNPJ = jsonString(cnpj)
	}

	jval, err := jsonpath.Get("$.company.tickers[*]", jobj)
	if err != nil {
		return fmt.Errorf("no tickers: %w", err)
	}
	jlist, _ := jval.([]any)
	seen := make(map[string]bool)
	company.Tickers = company.Tickers[:0]
	for _, item := range jlist {
		ticker := strings.TrimSpace(jsonString(item))
		if !seen[ticker] {
			seen[ticker] = true
			company.Tickers = append(company.Tickers, ticker)
		}
	}
	return nil
}

// cleanCompanies sorts by trading name, drops listings without usable tickers,
// deduplicates by name and clears the zeroed tax ids.
func cleanCompanies(companies []Company) []Company {
	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].Name < companies[j].Name
	})

	clean := companies[:0]
	for _, company := range companies {
		usable := len(company.Tickers) > 0
		for _, ticker := range company.Tickers {
			if ticker == "" {
				usable = false
			}
		}
		if !usable {
			continue
		}
		if len(clean) > 0 && clean[len(clean)-1].Name == company.Name {
			continue
		}
		if company.CNPJ == zeroCNPJ {
			company.CNPJ = ""
		}
		clean = append(clean, company)
	}
	return clean
}
