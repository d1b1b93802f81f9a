package legislators

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// MemberScore is one row of a Voteview members export.
type MemberScore struct {
	Chamber string // "Senate" or "House"
	State   string
	Surname string
	Score   float64
}

var memberColumns = []string{"chamber", "state_abbrev", "bioname", "nominate_dim1"}

// ParseMemberScores reads a Voteview HSnnn_members.csv export. Rows without
// a first-dimension score (e.g. members with too few votes) are skipped, as
// are presidents.
func ParseMemberScores(r io.Reader) ([]MemberScore, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))] = i
	}
	for _, k := range memberColumns {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	var out []MemberScore
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		chamber := get("chamber")
		if chamber != "Senate" && chamber != "House" {
			continue
		}
		score, err := strconv.ParseFloat(get("nominate_dim1"), 64)
		if err != nil {
			continue
		}
		// bioname is "SURNAME, Given Middle".
		surname, _, _ := strings.Cut(get("bioname"), ",")
		surname = strings.TrimSpace(surname)
		if surname == "" {
			continue
		}
		out = append(out, MemberScore{
			Chamber: chamber,
			State:   get("state_abbrev"),
			Surname: surname,
			Score:   score,
		})
	}
	return out, nil
}

var folder = cases.Fold()

// matchesSurname reports whether fullName contains surname, ignoring case
// ("MCCONNELL" matches "Mitch McConnell").
func matchesSurname(fullName, surname string) bool {
	return strings.Contains(folder.String(fullName), folder.String(surname))
}

// ApplyScores writes nominate scores onto stored legislators matched by
// state and surname. Scores that match nobody are counted but not an error.
func ApplyScores(tx *gorm.DB, scores []MemberScore) (updated, unmatched int, err error) {
	err = tx.Transaction(func(tx *gorm.DB) error {
		for _, s := range scores {
			var n int
			var err error
			switch s.Chamber {
			case "Senate":
				n, err = applySenatorScore(tx, s)
			case "House":
				n, err = applyRepresentativeScore(tx, s)
			}
			if err != nil {
				return err
			}
			if n == 0 {
				unmatched++
			}
			updated += n
		}
		return nil
	})
	return updated, unmatched, err
}

func applySenatorScore(tx *gorm.DB, s MemberScore) (int, error) {
	var rows []Senator
	if err := tx.Where("state = ?", s.State).Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("load senators for %s: %w", s.State, err)
	}
	n := 0
	for _, row := range rows {
		if !matchesSurname(row.Name, s.Surname) {
			continue
		}
		if err := tx.Model(&Senator{}).Where("id = ?", row.ID).Update("nominate_score", s.Score).Error; err != nil {
			return n, fmt.Errorf("update senator %d: %w", row.ID, err)
		}
		n++
	}
	return n, nil
}

func applyRepresentativeScore(tx *gorm.DB, s MemberScore) (int, error) {
	var rows []Representative
	if err := tx.Where("state = ?", s.State).Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("load representatives for %s: %w", s.State, err)
	}
	n := 0
	for _, row := range rows {
		if !matchesSurname(row.Name, s.Surname) {
			continue
		}
		if err := tx.Model(&Representative{}).Where("id = ?", row.ID).Update("nominate_score", s.Score).Error; err != nil {
			return n, fmt.Errorf("update representative %d: %w", row.ID, err)
		}
		n++
	}
	return n, nil
}
