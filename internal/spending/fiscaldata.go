package spending

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
)

const sourceFiscalData = "fiscaldata"

// Fiscal Data returns every figure as a string, with "null" for gaps.
type debtOutstandingResponse struct {
	Data []DebtOutstandingRow `json:"data"`
}

type DebtOutstandingRow struct {
	RecordDate         string `json:"record_date"`
	RecordFiscalYear   string `json:"record_fiscal_year"`
	DebtOutstandingAmt string `json:"debt_outstanding_amt"`
}

type mtsResponse struct {
	Data []MTSRow `json:"data"`
}

type MTSRow struct {
	RecordDate         string `json:"record_date"`
	ClassificationDesc string `json:"classification_desc"`
	Receipts           string `json:"current_month_gross_rcpt_amt"`
	Outlays            string `json:"current_month_gross_outly_amt"`
	DeficitSurplus     string `json:"current_month_dfct_sur_amt"`
}

type FiscalData struct {
	client   *ingest.Client
	baseURL  string
	pageSize int
}

func NewFiscalData(client *ingest.Client, baseURL string, pageSize int) *FiscalData {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &FiscalData{client: client, baseURL: strings.TrimRight(baseURL, "/"), pageSize: pageSize}
}

func (f *FiscalData) query(fields string) url.Values {
	q := url.Values{}
	q.Set("fields", fields)
	q.Set("sort", "-record_date")
	q.Set("page[size]", strconv.Itoa(f.pageSize))
	return q
}

func (f *FiscalData) DebtOutstanding(ctx context.Context) ([]DebtOutstandingRow, error) {
	var resp debtOutstandingResponse
	q := f.query("record_date,record_fiscal_year,debt_outstanding_amt")
	if err := f.client.GetJSON(ctx, sourceFiscalData, f.baseURL+"/v2/accounting/od/debt_outstanding", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (f *FiscalData) MonthlyStatements(ctx context.Context) ([]MTSRow, error) {
	var resp mtsResponse
	q := f.query("record_date,classification_desc,current_month_gross_rcpt_amt,current_month_gross_outly_amt,current_month_dfct_sur_amt")
	if err := f.client.GetJSON(ctx, sourceFiscalData, f.baseURL+"/v1/accounting/mts/mts_table_1", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DebtByYear keeps one debt figure per fiscal year: the one with the latest
// record date. Rows without an amount are dropped.
func DebtByYear(rows []DebtOutstandingRow) ([]FederalDebt, error) {
	latest := map[int]DebtOutstandingRow{}
	for _, r := range rows {
		if _, ok := parseAmount(r.DebtOutstandingAmt); !ok {
			continue
		}
		year, err := strconv.Atoi(r.RecordFiscalYear)
		if err != nil {
			return nil, fmt.Errorf("debt_outstanding %s: bad fiscal year %q", r.RecordDate, r.RecordFiscalYear)
		}
		if cur, ok := latest[year]; !ok || r.RecordDate > cur.RecordDate {
			latest[year] = r
		}
	}

	out := make([]FederalDebt, 0, len(latest))
	for year, r := range latest {
		amt, _ := parseAmount(r.DebtOutstandingAmt)
		out = append(out, FederalDebt{Year: year, Debt: amt})
	}
	sortDebt(out)
	return out, nil
}

// StatementsFromMTS keeps the current-month line of each published
// statement: the row whose classification is the record date's month.
func StatementsFromMTS(rows []MTSRow) ([]TreasuryStatement, error) {
	seen := map[string]bool{}
	out := []TreasuryStatement{}
	for _, r := range rows {
		d, err := time.Parse("2006-01-02", r.RecordDate)
		if err != nil {
			return nil, fmt.Errorf("mts: bad record_date %q", r.RecordDate)
		}
		if !strings.EqualFold(strings.TrimSpace(r.ClassificationDesc), d.Month().String()) {
			continue
		}
		if seen[r.RecordDate] {
			continue
		}
		receipts, ok1 := parseAmount(r.Receipts)
		outlays, ok2 := parseAmount(r.Outlays)
		balance, ok3 := parseAmount(r.DeficitSurplus)
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		seen[r.RecordDate] = true
		out = append(out, TreasuryStatement{
			RecordDate:     r.RecordDate,
			Receipts:       receipts,
			Outlays:        outlays,
			DeficitSurplus: balance,
		})
	}
	sortStatements(out)
	return out, nil
}
