package spending

import (
	"context"
	"sort"

	"github.com/EmpoweredVote/civic-data-backend/internal/config"
	"github.com/EmpoweredVote/civic-data-backend/internal/ingest"
	"gorm.io/gorm"
)

func sortDebt(rows []FederalDebt) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
}

func sortStatements(rows []TreasuryStatement) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].RecordDate < rows[j].RecordDate })
}

func sortIndicators(rows []EconomicIndicator) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
}

// SpendingJob refreshes agency and budget-function shares.
func SpendingJob(cfg config.SpendingSource) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		api := NewUSAspending(env.Client, cfg.BaseURL)

		agencies, err := api.Agencies(ctx)
		if err != nil {
			return 0, err
		}
		lines, total, err := api.BudgetFunctions(ctx, cfg.FiscalYear, cfg.Quarter)
		if err != nil {
			return 0, err
		}
		agencyRows := AgencyShares(agencies, cfg.FiscalYear)
		functionRows := BudgetFunctionShares(lines, total, cfg.FiscalYear)

		err = ingest.InTx(ctx, env.Pool, func(tx *gorm.DB) error {
			cols := []string{"amount", "percent_budget", "fiscal_year"}
			if err := ingest.Upsert(tx, sourceUSAspending, &agencyRows, len(agencyRows), []string{"name"}, cols); err != nil {
				return err
			}
			return ingest.Upsert(tx, sourceUSAspending, &functionRows, len(functionRows), []string{"name"}, cols)
		})
		return len(agencyRows) + len(functionRows), err
	}
}

// DebtJob refreshes year-end debt and monthly statements.
func DebtJob(cfg config.DebtSource) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		api := NewFiscalData(env.Client, cfg.BaseURL, cfg.PageSize)

		debtRows, err := api.DebtOutstanding(ctx)
		if err != nil {
			return 0, err
		}
		mtsRows, err := api.MonthlyStatements(ctx)
		if err != nil {
			return 0, err
		}
		debt, err := DebtByYear(debtRows)
		if err != nil {
			return 0, ingest.Fetch(sourceFiscalData, err)
		}
		statements, err := StatementsFromMTS(mtsRows)
		if err != nil {
			return 0, ingest.Fetch(sourceFiscalData, err)
		}
		ingest.LogTransform(sourceFiscalData, len(debtRows)+len(mtsRows), len(debt)+len(statements))

		err = ingest.InTx(ctx, env.Pool, func(tx *gorm.DB) error {
			if err := ingest.Upsert(tx, sourceFiscalData, &debt, len(debt), []string{"year"}, []string{"debt"}); err != nil {
				return err
			}
			return ingest.Upsert(tx, sourceFiscalData, &statements, len(statements),
				[]string{"record_date"}, []string{"receipts", "outlays", "deficit_surplus"})
		})
		return len(debt) + len(statements), err
	}
}

// EconomicJob refreshes the annual FRED indicators.
func EconomicJob(cfg config.EconomicSource) ingest.JobFunc {
	return func(ctx context.Context, env ingest.Env) (int, error) {
		api := NewFRED(env.Client, cfg.BaseURL, config.APIKey(cfg.APIKeyEnv))

		series := map[string][]Observation{}
		for _, id := range []string{SeriesGDP, SeriesPCE, SeriesWages} {
			obs, err := api.Annual(ctx, id, cfg.StartYear)
			if err != nil {
				return 0, err
			}
			series[id] = obs
		}
		rows, err := MergeIndicators(series[SeriesGDP], series[SeriesPCE], series[SeriesWages])
		if err != nil {
			return 0, ingest.Fetch(sourceFRED, err)
		}

		err = ingest.InTx(ctx, env.Pool, func(tx *gorm.DB) error {
			return ingest.Upsert(tx, sourceFRED, &rows, len(rows), []string{"year"},
				[]string{"pce_price_index", "gdp", "wages_and_salaries"})
		})
		return len(rows), err
	}
}
