package legislators

import "time"

// Role tags which chamber a merged Legislator sits in.
const (
	RoleSenator        = "Senator"
	RoleRepresentative = "Representative"
)

type Senator struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_senators_name_state"`
	State         string    `json:"state" gorm:"size:2;uniqueIndex:idx_senators_name_state;index"`
	Party         string    `json:"party" gorm:"size:20"`
	Gender        string    `json:"gender" gorm:"size:1"`
	URL           string    `json:"url" gorm:"size:255"`
	Address       string    `json:"address" gorm:"size:255"`
	Phone         string    `json:"phone" gorm:"size:15"`
	NominateScore *float64  `json:"nominate_score,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Senator) TableName() string { return "civic.senators" }

type Representative struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"size:100;not null;uniqueIndex:idx_representatives_seat"`
	State         string    `json:"state" gorm:"size:2;uniqueIndex:idx_representatives_seat;index:idx_representatives_district"`
	District      int       `json:"district" gorm:"uniqueIndex:idx_representatives_seat;index:idx_representatives_district"`
	Party         string    `json:"party" gorm:"size:20"`
	Gender        string    `json:"gender" gorm:"size:1"`
	URL           string    `json:"url" gorm:"size:255"`
	Address       string    `json:"address" gorm:"size:255"`
	Phone         string    `json:"phone" gorm:"size:15"`
	NominateScore *float64  `json:"nominate_score,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (Representative) TableName() string { return "civic.representatives" }

// Legislator is the role-tagged shape both chambers are merged into.
type Legislator struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	State         string   `json:"state"`
	Party         string   `json:"party"`
	Gender        string   `json:"gender"`
	URL           string   `json:"url"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	Role          string   `json:"role"`
	NominateScore *float64 `json:"nominate_score,omitempty"`
}

// FromSenator maps a senator row to a Legislator.
func FromSenator(s Senator) Legislator {
	return Legislator{
		ID:            s.ID,
		Name:          s.Name,
		State:         s.State,
		Party:         s.Party,
		Gender:        s.Gender,
		URL:           s.URL,
		Address:       s.Address,
		Phone:         s.Phone,
		Role:          RoleSenator,
		NominateScore: s.NominateScore,
	}
}

// FromRepresentative maps a representative row to a Legislator.
func FromRepresentative(r Representative) Legislator {
	return Legislator{
		ID:            r.ID,
		Name:          r.Name,
		State:         r.State,
		Party:         r.Party,
		Gender:        r.Gender,
		URL:           r.URL,
		Address:       r.Address,
		Phone:         r.Phone,
		Role:          RoleRepresentative,
		NominateScore: r.NominateScore,
	}
}

// Merge lists senators first, then representatives. The result is never nil.
func Merge(senators []Senator, reps []Representative) []Legislator {
	out := make([]Legislator, 0, len(senators)+len(reps))
	for _, s := range senators {
		out = append(out, FromSenator(s))
	}
	for _, r := range reps {
		out = append(out, FromRepresentative(r))
	}
	return out
}
