package report

import (
	"fmt"

	"f1-charts/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

// StandingsTable renders the scraped constructor standings as a text table
func StandingsTable(standings []models.TeamPoints) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Team", "Points"})
	for i, tp := range standings {
		t.AppendRow(table.Row{i + 1, tp.Team, fmt.Sprintf("%.0f", tp.Points)})
	}
	return t.Render()
}

// WinsTable renders the per-team season win counts as a text table
func WinsTable(counts []models.SeasonTeamCount) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Season", "Team", "Wins", "Total"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.Season, c.Team, c.Wins, c.Cumulative})
	}
	return t.Render()
}
