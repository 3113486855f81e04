package aggregate

import (
	"sort"

	"f1-charts/models"
)

// OtherTeam is the category label applied to every team outside the top-N
// set in the bounded long-form table
const OtherTeam = "other"

// CumulativeWins groups win rows by (season, team), counts wins per group,
// and computes the running total per team over increasing seasons. Seasons
// are compared numerically; the output is sorted by team then season so
// re-running on the same input yields an identical table.
func CumulativeWins(rows []models.WinRow) []models.SeasonTeamCount {
	type key struct {
		season int
		team   string
	}

	winCounts := make(map[key]int)
	for _, row := range rows {
		winCounts[key{row.Season, row.Team}]++
	}

	counts := make([]models.SeasonTeamCount, 0, len(winCounts))
	for k, wins := range winCounts {
		counts = append(counts, models.SeasonTeamCount{
			Season: k.season,
			Team:   k.team,
			Wins:   wins,
		})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Team != counts[j].Team {
			return counts[i].Team < counts[j].Team
		}
		return counts[i].Season < counts[j].Season
	})

	running := make(map[string]int)
	for i := range counts {
		running[counts[i].Team] += counts[i].Wins
		counts[i].Cumulative = running[counts[i].Team]
	}

	return counts
}

// FilterTeams restricts a count table to the teams in the allow-list. An
// empty allow-list keeps everything. Used for the stair-step view; the
// per-season bar view takes the unfiltered counts.
func FilterTeams(counts []models.SeasonTeamCount, allowlist []string) []models.SeasonTeamCount {
	if len(allowlist) == 0 {
		return counts
	}

	allowed := make(map[string]bool, len(allowlist))
	for _, team := range allowlist {
		allowed[team] = true
	}

	var filtered []models.SeasonTeamCount
	for _, c := range counts {
		if allowed[c.Team] {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// RaceMatrix pivots the win table into one row per distinct race name with
// the winning team per season, joins on the race's total appearance count,
// and keeps the topK most-run races. Rows are ordered by appearances
// descending; equal counts are broken by race name so the selection is
// deterministic, though which tied race falls at the cut is still
// effectively arbitrary.
func RaceMatrix(rows []models.WinRow, topK int) []models.RaceRow {
	byRace := make(map[string]*models.RaceRow)
	var order []string

	for _, row := range rows {
		r, ok := byRace[row.RaceName]
		if !ok {
			r = &models.RaceRow{
				RaceName:       row.RaceName,
				WinnerBySeason: make(map[int]string),
			}
			byRace[row.RaceName] = r
			order = append(order, row.RaceName)
		}
		r.Appearances++
		r.WinnerBySeason[row.Season] = row.Team
	}

	matrix := make([]models.RaceRow, 0, len(order))
	for _, name := range order {
		matrix = append(matrix, *byRace[name])
	}

	sort.Slice(matrix, func(i, j int) bool {
		if matrix[i].Appearances != matrix[j].Appearances {
			return matrix[i].Appearances > matrix[j].Appearances
		}
		return matrix[i].RaceName < matrix[j].RaceName
	})

	if topK > 0 && len(matrix) > topK {
		matrix = matrix[:topK]
	}

	return matrix
}

// Unpivot flattens the race matrix back to long form for charting, one
// cell per (race, season) with a winner. Cells come out in matrix row
// order, seasons ascending within a race.
func Unpivot(matrix []models.RaceRow) []models.RaceSeasonCell {
	var cells []models.RaceSeasonCell
	for _, race := range matrix {
		seasons := make([]int, 0, len(race.WinnerBySeason))
		for season := range race.WinnerBySeason {
			seasons = append(seasons, season)
		}
		sort.Ints(seasons)

		for _, season := range seasons {
			cells = append(cells, models.RaceSeasonCell{
				RaceName: race.RaceName,
				Season:   season,
				Team:     race.WinnerBySeason[season],
			})
		}
	}
	return cells
}

// BoundTeamCategories counts team occurrences across the long-form table,
// keeps the topN most frequent as named categories, and relabels every
// other team's cells as OtherTeam. This bounds the category cardinality
// the heatmap has to color: at most topN named teams plus "other".
func BoundTeamCategories(cells []models.RaceSeasonCell, topN int) []models.RaceSeasonCell {
	occurrences := make(map[string]int)
	for _, cell := range cells {
		occurrences[cell.Team]++
	}

	teams := make([]string, 0, len(occurrences))
	for team := range occurrences {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool {
		if occurrences[teams[i]] != occurrences[teams[j]] {
			return occurrences[teams[i]] > occurrences[teams[j]]
		}
		return teams[i] < teams[j]
	})

	if topN > 0 && len(teams) > topN {
		teams = teams[:topN]
	}
	named := make(map[string]bool, len(teams))
	for _, team := range teams {
		named[team] = true
	}

	bounded := make([]models.RaceSeasonCell, len(cells))
	for i, cell := range cells {
		bounded[i] = cell
		if !named[cell.Team] {
			bounded[i].Team = OtherTeam
		}
	}
	return bounded
}
