// Package states translates between two-letter USPS codes and full state
// names. Crime and census rows are keyed by full name while legislator and
// health rows use the code.
package states

import "strings"

var byCode = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska",
	"NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio",
	"OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island",
	"SC": "South Carolina", "SD": "South Dakota", "TN": "Tennessee", "TX": "Texas",
	"UT": "Utah", "VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

var byName = func() map[string]string {
	m := make(map[string]string, len(byCode))
	for code, name := range byCode {
		m[strings.ToLower(name)] = code
	}
	return m
}()

// Codes returns the 50 state codes plus DC in alphabetical order.
func Codes() []string {
	return []string{
		"AK", "AL", "AR", "AZ", "CA", "CO", "CT", "DC", "DE", "FL", "GA", "HI",
		"IA", "ID", "IL", "IN", "KS", "KY", "LA", "MA", "MD", "ME", "MI", "MN",
		"MO", "MS", "MT", "NC", "ND", "NE", "NH", "NJ", "NM", "NV", "NY", "OH",
		"OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VA", "VT", "WA",
		"WI", "WV", "WY",
	}
}

// FullName resolves a code or a name in any casing to the canonical full
// name ("il", "ILLINOIS" -> "Illinois").
func FullName(s string) (string, bool) {
	s = normalize(s)
	if name, ok := byCode[strings.ToUpper(s)]; ok {
		return name, true
	}
	if code, ok := byName[strings.ToLower(s)]; ok {
		return byCode[code], true
	}
	return "", false
}

// Code resolves a code or a name in any casing to the two-letter code.
func Code(s string) (string, bool) {
	s = normalize(s)
	if _, ok := byCode[strings.ToUpper(s)]; ok {
		return strings.ToUpper(s), true
	}
	code, ok := byName[strings.ToLower(s)]
	return code, ok
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
