package crime

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/EmpoweredVote/civic-data-backend/internal/config"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"github.com/EmpoweredVote/civic-data-backend/internal/states"
	"gorm.io/gorm"
)

const source = "fbi"

// summarizedResponse is the part of the CDE summarized endpoint we read.
// Actuals is keyed by series ("Illinois Offenses", "United States Offenses")
// and then by "MM-YYYY".
type summarizedResponse struct {
	Offenses struct {
		Actuals map[string]map[string]*float64 `json:"actuals"`
	} `json:"offenses"`
}

// Fetcher pulls monthly offense counts from the FBI Crime Data Explorer.
type Fetcher struct {
	client  *ingest.Client
	baseURL string
	apiKey  string
}

func NewFetcher(client *ingest.Client, baseURL, apiKey string) *Fetcher {
	return &Fetcher{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

// FetchState returns yearly totals for one offense in one state.
func (f *Fetcher) FetchState(ctx context.Context, code string, t Type, fromYear, toYear int) ([]Record, error) {
	name, ok := states.FullName(code)
	if !ok {
		return nil, fmt.Errorf("unknown state code %q", code)
	}

	q := url.Values{}
	q.Set("from", fmt.Sprintf("01-%d", fromYear))
	q.Set("to", fmt.Sprintf("12-%d", toYear))
	q.Set("API_KEY", f.apiKey)

	var resp summarizedResponse
	u := fmt.Sprintf("%s/summarized/state/%s/%s", f.baseURL, code, t.Code)
	if err := f.client.GetJSON(ctx, source, u, q, nil, &resp); err != nil {
		return nil, err
	}
	return YearlyTotals(name, t.Name, resp.Offenses.Actuals)
}

// YearlyTotals sums the state's monthly series into one Record per year.
// Null months are skipped. A response with no series for the state yields
// no rows.
func YearlyTotals(state, crimeType string, actuals map[string]map[string]*float64) ([]Record, error) {
	series, ok := actuals[state+" Offenses"]
	if !ok {
		series, ok = actuals[state]
	}
	if !ok {
		return []Record{}, nil
	}

	totals := map[int]float64{}
	for month, v := range series {
		if v == nil {
			continue
		}
		_, yyyy, found := strings.Cut(month, "-")
		if !found {
			return nil, fmt.Errorf("unexpected month key %q", month)
		}
		year, err := strconv.Atoi(yyyy)
		if err != nil {
			return nil, fmt.Errorf("unexpected month key %q", month)
		}
		totals[year] += *v
	}

	out := make([]Record, 0, len(totals))
	for year, total := range totals {
		out = append(out, Record{State: state, CrimeType: crimeType, Year: year, Count: int64(total + 0.5)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

// Job fetches every configured offense for every state and upserts the result.
func Job(cfg config.CrimeSource) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		f := NewFetcher(env.Client, cfg.BaseURL, config.APIKey(cfg.APIKeyEnv))

		var rows []Record
		for _, offense := range cfg.Offenses {
			t, ok := LookupType(offense)
			if !ok {
				return 0, fmt.Errorf("crime offense %q is not in the catalogue", offense)
			}
			for _, code := range states.Codes() {
				got, err := f.FetchState(ctx, code, t, cfg.FromYear, cfg.ToYear)
				if err != nil {
					return 0, err
				}
				rows = append(rows, got...)
			}
		}

		err := ingest.InTx(ctx, env.Pool, func(tx *gorm.DB) error {
			return Save(tx, rows)
		})
		return len(rows), err
	}
}

func upsert(tx *gorm.DB, rows []Record) error {
	return ingest.Upsert(tx, source, &rows, len(rows),
		[]string{"state", "year", "crime_type"}, []string{"count"})
}
