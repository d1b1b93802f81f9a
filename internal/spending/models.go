package spending

// AgencySpending is a top-tier agency's outlays with its share of the sum
// across all agencies.
type AgencySpending struct {
	Name          string  `json:"name" gorm:"primaryKey;size:255"`
	Amount        float64 `json:"amount"`
	PercentBudget float64 `json:"percent_budget" gorm:"index"`
	FiscalYear    int     `json:"fiscal_year"`
}

func (AgencySpending) TableName() string { return "civic.agency_spending" }

// BudgetFunction is spending under one budget function with its share of
// the reported total.
type BudgetFunction struct {
	Name          string  `json:"name" gorm:"primaryKey;size:255"`
	Amount        float64 `json:"amount"`
	PercentBudget float64 `json:"percent_budget" gorm:"index"`
	FiscalYear    int     `json:"fiscal_year"`
}

func (BudgetFunction) TableName() string { return "civic.budget_functions" }

// FederalDebt is total public debt outstanding at fiscal year end.
type FederalDebt struct {
	Year int     `json:"year" gorm:"primaryKey;autoIncrement:false"`
	Debt float64 `json:"debt"`
}

func (FederalDebt) TableName() string { return "civic.federal_debt" }

// TreasuryStatement is one Monthly Treasury Statement summary line.
// RecordDate is YYYY-MM-DD.
type TreasuryStatement struct {
	RecordDate     string  `json:"record_date" gorm:"primaryKey;size:10"`
	Receipts       float64 `json:"receipts"`
	Outlays        float64 `json:"outlays"`
	DeficitSurplus float64 `json:"deficit_surplus"`
}

func (TreasuryStatement) TableName() string { return "civic.treasury_statements" }

// EconomicIndicator holds annual national accounts figures.
type EconomicIndicator struct {
	Year             int     `json:"year" gorm:"primaryKey;autoIncrement:false"`
	PCEPriceIndex    float64 `json:"pce_price_index" gorm:"column:pce_price_index"`
	GDP              float64 `json:"gdp" gorm:"column:gdp"`
	WagesAndSalaries float64 `json:"wages_and_salaries"`
}

func (EconomicIndicator) TableName() string { return "civic.federal_economic_indicators" }

// Breakdown is the /get_agency_spending payload.
type Breakdown struct {
	Agencies        []AgencySpending `json:"agency_data"`
	BudgetFunctions []BudgetFunction `json:"budget_functions_data"`
}

// DebtHistory is the /get_federal_debt payload.
type DebtHistory struct {
	FederalDebt        []FederalDebt       `json:"federal_debt"`
	TreasuryStatements []TreasuryStatement `json:"treasury_statements"`
}
