package spending

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
)

const sourceFRED = "fred"

// FRED series behind each EconomicIndicator column.
const (
	SeriesGDP   = "GDPA"
	SeriesPCE   = "PCEPI"
	SeriesWages = "A576RC1"
)

type observationsResponse struct {
	Observations []Observation `json:"observations"`
}

// Observation is one FRED data point. Value is "." when missing.
type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type FRED struct {
	client  *ingest.Client
	baseURL string
	apiKey  string
}

func NewFRED(client *ingest.Client, baseURL, apiKey string) *FRED {
	return &FRED{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

// Annual returns series aggregated to annual averages from startYear on.
func (f *FRED) Annual(ctx context.Context, series string, startYear int) ([]Observation, error) {
	q := url.Values{}
	q.Set("series_id", series)
	q.Set("api_key", f.apiKey)
	q.Set("file_type", "json")
	q.Set("frequency", "a")
	q.Set("observation_start", fmt.Sprintf("%d-01-01", startYear))

	var resp observationsResponse
	if err := f.client.GetJSON(ctx, sourceFRED, f.baseURL+"/series/observations", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Observations, nil
}

func byYear(obs []Observation) (map[int]float64, error) {
	out := make(map[int]float64, len(obs))
	for _, o := range obs {
		if len(o.Date) < 4 {
			return nil, fmt.Errorf("bad observation date %q", o.Date)
		}
		year, err := strconv.Atoi(o.Date[:4])
		if err != nil {
			return nil, fmt.Errorf("bad observation date %q", o.Date)
		}
		if o.Value == "." {
			continue
		}
		v, err := strconv.ParseFloat(o.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("observation %s: %w", o.Date, err)
		}
		out[year] = v
	}
	return out, nil
}

// MergeIndicators joins the three series by year. Years missing any of
// them are skipped.
func MergeIndicators(gdp, pce, wages []Observation) ([]EconomicIndicator, error) {
	g, err := byYear(gdp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SeriesGDP, err)
	}
	p, err := byYear(pce)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SeriesPCE, err)
	}
	w, err := byYear(wages)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SeriesWages, err)
	}

	out := []EconomicIndicator{}
	for year, gv := range g {
		pv, okP := p[year]
		wv, okW := w[year]
		if !okP || !okW {
			log.Printf("[ingest:%s] %d incomplete, skipping", sourceFRED, year)
			continue
		}
		out = append(out, EconomicIndicator{Year: year, GDP: gv, PCEPriceIndex: pv, WagesAndSalaries: wv})
	}
	sortIndicators(out)
	return out, nil
}
