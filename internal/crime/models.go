package crime

// Record is one year of reported offenses of one type in one state.
// State holds the full state name ("Illinois").
type Record struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	State     string `json:"state" gorm:"size:20;not null;uniqueIndex:idx_crime_state_year_type"`
	CrimeType string `json:"crime_type" gorm:"size:30;not null;uniqueIndex:idx_crime_state_year_type"`
	Count     int64  `json:"count" gorm:"not null"`
	Year      int    `json:"year" gorm:"not null;uniqueIndex:idx_crime_state_year_type"`
}

func (Record) TableName() string { return "civic.crime_data" }

// Type is a catalogued offense with its FBI Crime Data Explorer code.
type Type struct {
	Name string
	Code string
}

// Types is the offense catalogue. Request keys outside it are unknown.
var Types = []Type{
	{Name: "Homicide", Code: "HOM"},
	{Name: "Assault", Code: "ASS"},
	{Name: "Burglary", Code: "BUR"},
	{Name: "Robbery", Code: "ROB"},
	{Name: "Rape", Code: "RPE"},
	{Name: "Larceny", Code: "LAR"},
	{Name: "Motor Vehicle Theft", Code: "MVT"},
	{Name: "Arson", Code: "ARS"},
}

// LookupType matches name against the catalogue, ignoring case and
// surrounding space.
func LookupType(name string) (Type, bool) {
	for _, t := range Types {
		if equalFold(t.Name, name) {
			return t, true
		}
	}
	return Type{}, false
}
