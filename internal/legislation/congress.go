package legislation

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/EmpoweredVote/civic-data-backend/internal/config"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"gorm.io/gorm"
)

const source = "congress"

type billsResponse struct {
	Bills []BillItem `json:"bills"`
}

// BillItem is one entry of the Congress.gov /bill listing.
type BillItem struct {
	Congress      int    `json:"congress"`
	Type          string `json:"type"`
	Number        string `json:"number"`
	Title         string `json:"title"`
	OriginChamber string `json:"originChamber"`
	URL           string `json:"url"`
	LatestAction  struct {
		ActionDate string `json:"actionDate"`
		Text       string `json:"text"`
	} `json:"latestAction"`
}

type Client struct {
	http    *ingest.Client
	baseURL string
	apiKey  string
}

func NewClient(httpClient *ingest.Client, baseURL, apiKey string) *Client {
	return &Client{http: httpClient, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

// RecentBills lists the most recently updated bills.
func (c *Client) RecentBills(ctx context.Context, limit int) ([]BillItem, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "updateDate desc")

	var resp billsResponse
	if err := c.http.GetJSON(ctx, source, c.baseURL+"/bill", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Bills, nil
}

// ToBill maps a listing entry to a stored row.
func ToBill(item BillItem) Bill {
	return Bill{
		Congress:   item.Congress,
		BillType:   strings.ToUpper(item.Type),
		Number:     item.Number,
		Title:      item.Title,
		ActionDate: item.LatestAction.ActionDate,
		Action:     item.LatestAction.Text,
		Chamber:    item.OriginChamber,
		URL:        item.URL,
	}
}

func Job(cfg config.LegislationSource) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		c := NewClient(env.Client, cfg.BaseURL, config.APIKey(cfg.APIKeyEnv))
		items, err := c.RecentBills(ctx, cfg.Limit)
		if err != nil {
			return 0, err
		}

		rows := make([]Bill, 0, len(items))
		for _, it := range items {
			rows = append(rows, ToBill(it))
		}
		ingest.LogTransform(source, len(items), len(rows))

		err = ingest.InTx(ctx, env.Pool, func(tx *gorm.DB) error {
			return Save(tx, rows)
		})
		return len(rows), err
	}
}
