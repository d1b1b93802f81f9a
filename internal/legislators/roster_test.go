package legislators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rosterCSV = `last_name,first_name,full_name,birthday,gender,type,state,district,senate_class,party,url,address,phone
Durbin,Richard,Richard J. Durbin,1944-11-21,M,sen,IL,,2,Democrat,https://www.durbin.senate.gov,711 Hart Senate Office Building Washington DC 20510,202-224-2152
Davis,Danny,Danny K. Davis,1941-09-06,M,rep,IL,7,,Democrat,https://davis.house.gov,2159 Rayburn House Office Building Washington DC 20515-1307,202-225-5006
Peltola,Mary,Mary Sattler Peltola,1973-08-31,,rep,AK,0.0,,,https://peltola.house.gov,,
`

func TestParseRoster(t *testing.T) {
	roster, err := ParseRoster(strings.NewReader(rosterCSV))
	require.NoError(t, err)

	require.Len(t, roster.Senators, 1)
	assert.Equal(t, "Richard J. Durbin", roster.Senators[0].Name)
	assert.Equal(t, "IL", roster.Senators[0].State)

	require.Len(t, roster.Representatives, 2)
	assert.Equal(t, 7, roster.Representatives[0].District)

	atLarge := roster.Representatives[1]
	assert.Equal(t, 0, atLarge.District)
	assert.Equal(t, "U", atLarge.Gender)
	assert.Equal(t, "Unknown", atLarge.Party)
}

func TestParseRoster_SkipsUnstorableRows(t *testing.T) {
	csv := `full_name,type,state,district,party,gender,url,address,phone
No State,sen,,,Independent,F,,,
Bad District,rep,OH,seven,Republican,M,,,
Sherrod Brown,sen,oh,,Democrat,M,,,
Joyce Beatty,rep,OH,3,Democrat,F,,,
Eleanor Holmes Norton,del,DC,0,Democrat,F,,,
`
	roster, err := ParseRoster(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 2, roster.Skipped)
	require.Len(t, roster.Senators, 1)
	assert.Equal(t, "OH", roster.Senators[0].State)
	require.Len(t, roster.Representatives, 1)
	assert.Equal(t, "Joyce Beatty", roster.Representatives[0].Name)
	assert.Equal(t, 3, roster.Representatives[0].District)
}

func TestParseRoster_MissingColumn(t *testing.T) {
	_, err := ParseRoster(strings.NewReader("full_name,state\nA,IL\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

const membersCSV = `congress,chamber,icpsr,state_icpsr,district_code,state_abbrev,party_code,bioname,nominate_dim1,nominate_dim2
119,President,99913,99,0,USA,200,"TRUMP, Donald John",0.403,0.0
119,Senate,41110,21,0,IL,100,"DURBIN, Richard Joseph",-0.352,-0.2
119,House,29100,21,7,IL,100,"DAVIS, Danny K.",-0.581,-0.3
119,House,99999,21,8,IL,100,"NEWMEMBER, Pat",,
`

func TestParseMemberScores(t *testing.T) {
	scores, err := ParseMemberScores(strings.NewReader(membersCSV))
	require.NoError(t, err)
	require.Len(t, scores, 2)

	assert.Equal(t, MemberScore{Chamber: "Senate", State: "IL", Surname: "DURBIN", Score: -0.352}, scores[0])
	assert.Equal(t, "House", scores[1].Chamber)
	assert.Equal(t, "DAVIS", scores[1].Surname)
}

func TestMatchesSurname(t *testing.T) {
	assert.True(t, matchesSurname("Mitch McConnell", "MCCONNELL"))
	assert.True(t, matchesSurname("Linda T. Sánchez", "SÁNCHEZ"))
	assert.False(t, matchesSurname("Dick Durbin", "DUCKWORTH"))
}
