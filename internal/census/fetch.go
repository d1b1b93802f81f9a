package census

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/EmpoweredVote/civic-data-backend/internal/config"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"github.com/EmpoweredVote/civic-data-backend/internal/states"
	"gorm.io/gorm"
)

const source = "census"

// ACS1 data profile variables, in the order Transform expects them.
var variables = []string{
	"NAME",
	"DP03_0119PE", // families below poverty level, percent
	"DP02_0067PE", // high school graduate or higher, percent
	"DP03_0063E",  // mean household income
	"DP03_0062E",  // median household income
}

type Fetcher struct {
	client  *ingest.Client
	baseURL string
}

func NewFetcher(client *ingest.Client, baseURL string) *Fetcher {
	return &Fetcher{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// FetchYear returns one Record per state for an ACS1 year.
func (f *Fetcher) FetchYear(ctx context.Context, year int) ([]Record, error) {
	q := url.Values{}
	q.Set("get", strings.Join(variables, ","))
	q.Set("for", "state:*")

	// The API answers with a header row followed by one row per state,
	// every cell a string (or null when suppressed).
	var table [][]*string
	u := fmt.Sprintf("%s/%d/acs/acs1/profile", f.baseURL, year)
	if err := f.client.GetJSON(ctx, source, u, q, nil, &table); err != nil {
		return nil, err
	}
	rows, err := Transform(year, table)
	if err != nil {
		return nil, ingest.Fetch(source, err)
	}
	ingest.LogTransform(source, len(table), len(rows))
	return rows, nil
}

// Transform drops the header row and Puerto Rico and parses the figures.
// Rows with suppressed values are skipped.
func Transform(year int, table [][]*string) ([]Record, error) {
	out := []Record{}
	for i, row := range table {
		if i == 0 {
			continue
		}
		if len(row) < len(variables) {
			return nil, fmt.Errorf("row %d: want %d columns, got %d", i, len(variables), len(row))
		}
		if row[0] == nil {
			continue
		}
		name := *row[0]
		if name == "Puerto Rico" {
			continue
		}
		if _, ok := states.Code(name); !ok {
			log.Printf("[ingest:%s] skipping unknown area %q", source, name)
			continue
		}

		var vals [4]float64
		complete := true
		for j := range vals {
			cell := row[j+1]
			if cell == nil {
				complete = false
				break
			}
			v, err := strconv.ParseFloat(*cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", name, variables[j+1], err)
			}
			vals[j] = v
		}
		if !complete {
			log.Printf("[ingest:%s] %s %d has suppressed values, skipping", source, name, year)
			continue
		}

		out = append(out, Record{
			State:                 name,
			Year:                  year,
			PovertyRate:           vals[0],
			EducationalAttainment: vals[1],
			IncomeMean:            vals[2],
			IncomeMedian:          vals[3],
		})
	}
	return out, nil
}

func Job(cfg config.CensusSource) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		f := NewFetcher(env.Client, cfg.BaseURL)

		var rows []Record
		for _, year := range cfg.Years {
			got, err := f.FetchYear(ctx, year)
			if err != nil {
				return 0, err
			}
			rows = append(rows, got...)
		}

		err := ingest.InTx(ctx, env.Pool, func(tx *gorm.DB) error {
			return Save(tx, rows)
		})
		return len(rows), err
	}
}
