package health

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/EmpoweredVote/civic-data-backend/internal/config"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"gorm.io/gorm"
)

const source = "ahr"

// GraphQLRequest represents a GraphQL query request.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type GraphQLResponse struct {
	Data *struct {
		Measures []Measure `json:"measures_A"`
	} `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

// Measure is one AHR measure with its per-state data points.
type Measure struct {
	MeasureID int    `json:"measureId"`
	Name      string `json:"name"`
	Source    struct {
		Name string `json:"name"`
	} `json:"source"`
	Data []DataPoint `json:"data"`
}

type DataPoint struct {
	DateLabel string   `json:"dateLabel"`
	Rank      *int     `json:"rank"`
	State     string   `json:"state"`
	Value     *float64 `json:"value"`
}

const measuresQuery = `
query MeasuresSearch($name: String!, $states: [String!], $years: [String!]) {
  measures_A(where: { name: { contains: $name } }) {
    measureId
    name
    source { name }
    data(where: { state: { in: $states }, dateLabel: { in: $years } }) {
      dateLabel
      rank
      state
      value
    }
  }
}
`

// Client queries the America's Health Rankings GraphQL API.
type Client struct {
	http     *ingest.Client
	endpoint string
	apiKey   string
}

func NewClient(httpClient *ingest.Client, endpoint, apiKey string) *Client {
	return &Client{http: httpClient, endpoint: endpoint, apiKey: apiKey}
}

// FetchMeasure returns the measures whose name contains upstream, with data
// restricted to state and years.
func (c *Client) FetchMeasure(ctx context.Context, upstream, state string, years []string) ([]Measure, error) {
	header := http.Header{}
	header.Set("X-Api-Key", c.apiKey)

	req := GraphQLRequest{
		Query: measuresQuery,
		Variables: map[string]interface{}{
			"name":   upstream,
			"states": []string{state},
			"years":  years,
		},
	}
	var resp GraphQLResponse
	if err := c.http.PostJSON(ctx, source, c.endpoint, header, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		err := fmt.Errorf("graphql errors: %s", resp.Errors[0].Message)
		ingest.LogError(source, "graphql", err)
		return nil, ingest.Fetch(source, err)
	}
	if resp.Data == nil {
		return nil, nil
	}
	return resp.Data.Measures, nil
}

// Transform picks the measure named exactly upstream and stores its points
// under name. Points without a value are skipped; a missing rank is stored as 0.
func Transform(measures []Measure, upstream, name string) ([]Record, error) {
	out := []Record{}
	for _, m := range measures {
		if m.Name != upstream {
			continue
		}
		for _, p := range m.Data {
			if p.Value == nil {
				continue
			}
			year, err := strconv.Atoi(p.DateLabel)
			if err != nil {
				return nil, fmt.Errorf("measure %s: bad dateLabel %q", upstream, p.DateLabel)
			}
			rec := Record{State: p.State, Year: year, MeasureName: name, Value: *p.Value}
			if p.Rank != nil {
				rec.Rank = *p.Rank
			}
			out = append(out, rec)
		}
		break
	}
	return out, nil
}

func Job(cfg config.HealthSource, stateCodes []string) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		c := NewClient(env.Client, cfg.Endpoint, config.APIKey(cfg.APIKeyEnv))

		var rows []Record
		for _, m := range cfg.Measures {
			name, ok := LookupMeasure(m.Name)
			if !ok {
				return 0, fmt.Errorf("health measure %q is not in the catalogue", m.Name)
			}
			for _, code := range stateCodes {
				measures, err := c.FetchMeasure(ctx, m.Upstream, code, cfg.Years)
				if err != nil {
					return 0, err
				}
				got, err := Transform(measures, m.Upstream, name)
				if err != nil {
					return 0, ingest.Fetch(source, err)
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
