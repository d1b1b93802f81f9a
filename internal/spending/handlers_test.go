package spending

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	breakdown  Breakdown
	indicators []EconomicIndicator
	debt       DebtHistory
	err        error
}

func (f *fakeStore) Breakdown(context.Context) (Breakdown, error) { return f.breakdown, f.err }

func (f *fakeStore) EconomicIndicators(context.Context) ([]EconomicIndicator, error) {
	return f.indicators, f.err
}

func (f *fakeStore) DebtHistory(context.Context) (DebtHistory, error) { return f.debt, f.err }

func get(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.SetupRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetAgencySpending(t *testing.T) {
	store := &fakeStore{breakdown: Breakdown{
		Agencies:        []AgencySpending{{Name: "DoD", Amount: 3, PercentBudget: 75, FiscalYear: 2025}},
		BudgetFunctions: []BudgetFunction{},
	}}
	rec := get(NewHandler(store), "/get_agency_spending")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"agency_data":[{"name":"DoD","amount":3,"percent_budget":75,"fiscal_year":2025}],
		"budget_functions_data":[]
	}`, rec.Body.String())
}

func TestGetFederalEconomicData(t *testing.T) {
	store := &fakeStore{indicators: []EconomicIndicator{{Year: 2023, GDP: 1, PCEPriceIndex: 2, WagesAndSalaries: 3}}}
	rec := get(NewHandler(store), "/get_federal_economic_data")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"economic_data":[{"year":2023,"pce_price_index":2,"gdp":1,"wages_and_salaries":3}]}`, rec.Body.String())
}

func TestGetFederalDebt(t *testing.T) {
	store := &fakeStore{debt: DebtHistory{
		FederalDebt:        []FederalDebt{{Year: 2024, Debt: 35.4}},
		TreasuryStatements: []TreasuryStatement{{RecordDate: "2024-09-30", Receipts: 1, Outlays: 2, DeficitSurplus: -1}},
	}}
	rec := get(NewHandler(store), "/get_federal_debt")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"federal_debt":[{"year":2024,"debt":35.4}],
		"treasury_statements":[{"record_date":"2024-09-30","receipts":1,"outlays":2,"deficit_surplus":-1}]
	}`, rec.Body.String())
}

func TestSpendingHandlers_StoreFailure(t *testing.T) {
	h := NewHandler(&fakeStore{err: errors.New("connection reset")})
	for _, path := range []string{"/get_agency_spending", "/get_federal_economic_data", "/get_federal_debt"} {
		rec := get(h, path)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.JSONEq(t, `{"detail":"connection reset"}`, rec.Body.String(), path)
	}
}
