package legislation

// Bill is a bill with its latest recorded action. ActionDate is YYYY-MM-DD.
type Bill struct {
	Congress   int    `gorm:"primaryKey;autoIncrement:false"`
	BillType   string `gorm:"primaryKey;size:10"`
	Number     string `gorm:"primaryKey;size:10"`
	Title      string `gorm:"type:text"`
	ActionDate string `gorm:"size:10;index"`
	Action     string `gorm:"type:text"`
	Chamber    string `gorm:"size:10"`
	URL        string `gorm:"size:255"`
}

func (Bill) TableName() string { return "civic.bills" }

// Summary is the response shape for one bill.
type Summary struct {
	BillID  string `json:"bill_id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Action  string `json:"action"`
	Chamber string `json:"chamber"`
}

func ToSummary(b Bill) Summary {
	return Summary{
		BillID:  b.Number,
		Title:   b.Title,
		Date:    b.ActionDate,
		Action:  b.Action,
		Chamber: b.Chamber,
	}
}
