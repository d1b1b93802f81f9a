package spending

import (
	"context"
	"strconv"
	"strings"

	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
)

const sourceUSAspending = "usaspending"

type toptierAgenciesResponse struct {
	Results []ToptierAgency `json:"results"`
}

// ToptierAgency is the subset of /references/toptier_agencies we keep.
type ToptierAgency struct {
	AgencyName   string  `json:"agency_name"`
	OutlayAmount float64 `json:"outlay_amount"`
}

type budgetFunctionRequest struct {
	Type    string               `json:"type"`
	Filters budgetFunctionFilter `json:"filters"`
}

type budgetFunctionFilter struct {
	FY      string `json:"fy"`
	Quarter string `json:"quarter"`
}

type budgetFunctionResponse struct {
	Total   float64              `json:"total"`
	Results []BudgetFunctionLine `json:"results"`
}

type BudgetFunctionLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// USAspending reads agency and budget-function spending.
type USAspending struct {
	client  *ingest.Client
	baseURL string
}

func NewUSAspending(client *ingest.Client, baseURL string) *USAspending {
	return &USAspending{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (u *USAspending) Agencies(ctx context.Context) ([]ToptierAgency, error) {
	var resp toptierAgenciesResponse
	if err := u.client.GetJSON(ctx, sourceUSAspending, u.baseURL+"/references/toptier_agencies/", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// BudgetFunctions returns the lines and the reported total for a fiscal
// year up to quarter.
func (u *USAspending) BudgetFunctions(ctx context.Context, fy, quarter int) ([]BudgetFunctionLine, float64, error) {
	req := budgetFunctionRequest{
		Type: "budget_function",
		Filters: budgetFunctionFilter{
			FY:      strconv.Itoa(fy),
			Quarter: strconv.Itoa(quarter),
		},
	}
	var resp budgetFunctionResponse
	if err := u.client.PostJSON(ctx, sourceUSAspending, u.baseURL+"/spending/", nil, req, &resp); err != nil {
		return nil, 0, err
	}
	return resp.Results, resp.Total, nil
}

// AgencyShares computes each agency's outlay as a percent of the sum of
// all outlays. A zero sum leaves every share at 0.
func AgencyShares(agencies []ToptierAgency, fy int) []AgencySpending {
	var sum float64
	for _, a := range agencies {
		sum += a.OutlayAmount
	}
	out := make([]AgencySpending, 0, len(agencies))
	for _, a := range agencies {
		row := AgencySpending{Name: a.AgencyName, Amount: a.OutlayAmount, FiscalYear: fy}
		if sum != 0 {
			row.PercentBudget = a.OutlayAmount / sum * 100
		}
		out = append(out, row)
	}
	return out
}

// BudgetFunctionShares computes each line as a percent of total, falling
// back to the sum of the lines when the reported total is 0.
func BudgetFunctionShares(lines []BudgetFunctionLine, total float64, fy int) []BudgetFunction {
	if total == 0 {
		for _, l := range lines {
			total += l.Amount
		}
	}
	out := make([]BudgetFunction, 0, len(lines))
	for _, l := range lines {
		row := BudgetFunction{Name: l.Name, Amount: l.Amount, FiscalYear: fy}
		if total != 0 {
			row.PercentBudget = l.Amount / total * 100
		}
		out = append(out, row)
	}
	return out
}
