package census

// Record is one year of ACS profile figures for a state. State holds the
// full state name.
type Record struct {
	State                 string  `json:"state" gorm:"primaryKey;size:20"`
	Year                  int     `json:"year" gorm:"primaryKey;autoIncrement:false"`
	PovertyRate           float64 `json:"poverty_rate" gorm:"not null"`
	EducationalAttainment float64 `json:"educational" gorm:"column:educational_attainment;not null"`
	IncomeMean            float64 `json:"income_mean" gorm:"not null"`
	IncomeMedian          float64 `json:"income_median" gorm:"not null"`
}

func (Record) TableName() string { return "civic.state_census" }
