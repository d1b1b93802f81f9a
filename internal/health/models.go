package health

import "strings"

// Record is one measure for one state and year from America's Health
// Rankings. State is the two-letter code.
type Record struct {
	State       string  `json:"state" gorm:"primaryKey;size:2"`
	Year        int     `json:"year" gorm:"primaryKey;autoIncrement:false"`
	MeasureName string  `json:"name" gorm:"primaryKey;size:30"`
	Rank        int     `json:"rank"`
	Value       float64 `json:"value" gorm:"not null"`
}

func (Record) TableName() string { return "civic.health_data" }

// Measures is the catalogue of stored measure names.
var Measures = []string{
	"HIV/AIDS",
	"Heart Diseases",
	"Cancer",
	"Suicide",
	"Depression",
	"Drug Deaths",
	"Smoking",
	"Diabetes",
}

// LookupMeasure returns the catalogued spelling of name.
func LookupMeasure(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, m := range Measures {
		if strings.EqualFold(m, name) {
			return m, true
		}
	}
	return "", false
}
