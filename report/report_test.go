package report

import (
	"strings"
	"testing"

	"f1-charts/models"
)

func TestStandingsTable(t *testing.T) {
	out := StandingsTable([]models.TeamPoints{
		{Team: "Red Bull Racing", Points: 590},
		{Team: "Ferrari", Points: 432},
	})

	for _, want := range []string{"Red Bull Racing", "Ferrari", "590", "432"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWinsTable(t *testing.T) {
	out := WinsTable([]models.SeasonTeamCount{
		{Season: 2021, Team: "ferrari", Wins: 3, Cumulative: 240},
	})

	for _, want := range []string{"2021", "ferrari", "3", "240"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}
