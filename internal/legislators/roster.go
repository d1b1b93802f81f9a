package legislators

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Roster is the parsed content of legislators-current.csv.
type Roster struct {
	Senators        []Senator
	Representatives []Representative

	// Skipped counts rows left out because they could not be stored.
	Skipped int
}

var rosterColumns = []string{"full_name", "state", "district", "party", "gender", "url", "address", "phone", "type"}

// ParseRoster reads the unitedstates/congress-legislators CSV export.
// Rows other than "sen" and "rep" (delegates are "rep" too) are ignored.
// Blank name, party and gender are filled with the same placeholders the
// roster loader has always used. Rows without a two-letter state or with an
// unreadable district are logged and skipped so one bad row cannot fail the
// whole import.
func ParseRoster(r io.Reader) (Roster, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return Roster{}, fmt.Errorf("read header: %w", err)
	}
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, k := range rosterColumns {
		if _, ok := col[k]; !ok {
			return Roster{}, fmt.Errorf("missing required column: %s", k)
		}
	}

	var out Roster
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return Roster{}, fmt.Errorf("row %d: %w", line, err)
		}
		get := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		kind := get("type")
		if kind != "sen" && kind != "rep" {
			continue
		}

		name := orDefault(get("full_name"), "Unknown")
		state := strings.ToUpper(get("state"))
		if len(state) != 2 {
			log.Printf("[legislators] row %d (%s): skipping, state %q is not a 2-letter code", line, name, state)
			out.Skipped++
			continue
		}
		party := orDefault(get("party"), "Unknown")
		gender := orDefault(get("gender"), "U")

		switch kind {
		case "sen":
			out.Senators = append(out.Senators, Senator{
				Name:    name,
				State:   state,
				Party:   party,
				Gender:  gender,
				URL:     get("url"),
				Address: get("address"),
				Phone:   get("phone"),
			})
		case "rep":
			district, err := parseDistrict(get("district"))
			if err != nil {
				log.Printf("[legislators] row %d (%s): skipping, %v", line, name, err)
				out.Skipped++
				continue
			}
			out.Representatives = append(out.Representatives, Representative{
				Name:     name,
				State:    state,
				District: district,
				Party:    party,
				Gender:   gender,
				URL:      get("url"),
				Address:  get("address"),
				Phone:    get("phone"),
			})
		}
	}
	return out, nil
}

// parseDistrict accepts "3", "3.0" (pandas exports) and "" (treated as at-large).
func parseDistrict(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid district %q", s)
	}
	return int(f), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ImportRoster inserts the roster, leaving existing (name, state[, district])
// rows untouched. It returns the number of rows actually inserted.
func ImportRoster(tx *gorm.DB, roster Roster) (senators, reps int64, err error) {
	err = tx.Transaction(func(tx *gorm.DB) error {
		if len(roster.Senators) > 0 {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&roster.Senators, 100)
			if res.Error != nil {
				return fmt.Errorf("insert senators: %w", res.Error)
			}
			senators = res.RowsAffected
		}
		if len(roster.Representatives) > 0 {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&roster.Representatives, 100)
			if res.Error != nil {
				return fmt.Errorf("insert representatives: %w", res.Error)
			}
			reps = res.RowsAffected
		}
		return nil
	})
	return senators, reps, err
}
