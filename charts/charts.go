package charts

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"f1-charts/aggregate"
	"f1-charts/models"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Renderer writes the derived tables out as static PNG charts
type Renderer struct {
	outputDir  string
	teamColors map[string]string
}

// NewRenderer creates a new Renderer writing into outputDir. teamColors
// maps team ids to "#rrggbb" strings; teams without an entry get a color
// from a fixed fallback cycle.
func NewRenderer(outputDir string, teamColors map[string]string) (*Renderer, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart output directory: %w", err)
	}
	return &Renderer{
		outputDir:  outputDir,
		teamColors: teamColors,
	}, nil
}

// fallbackColors cycles for teams without a configured color
var fallbackColors = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
	{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
	{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff},
}

// teamColor resolves a team's chart color
func (r *Renderer) teamColor(team string, fallbackIdx int) color.RGBA {
	if hex, ok := r.teamColors[team]; ok {
		if c, err := parseHexColor(hex); err == nil {
			return c
		}
	}
	return fallbackColors[fallbackIdx%len(fallbackColors)]
}

// parseHexColor parses "#rrggbb" into an RGBA color
func parseHexColor(s string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 0xff
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return c, nil
}

// RenderCumulativeWins draws one stair-step line per team showing its
// running win total over the seasons
func (r *Renderer) RenderCumulativeWins(counts []models.SeasonTeamCount) (string, error) {
	p := plot.New()
	p.Title.Text = "Cumulative Race Wins"
	p.X.Label.Text = "Season"
	p.Y.Label.Text = "Wins"

	byTeam := make(map[string][]models.SeasonTeamCount)
	var teams []string
	for _, c := range counts {
		if _, ok := byTeam[c.Team]; !ok {
			teams = append(teams, c.Team)
		}
		byTeam[c.Team] = append(byTeam[c.Team], c)
	}
	sort.Strings(teams)

	for i, team := range teams {
		rows := byTeam[team]
		sort.Slice(rows, func(a, b int) bool { return rows[a].Season < rows[b].Season })

		pts := make(plotter.XYs, len(rows))
		for j, row := range rows {
			pts[j].X = float64(row.Season)
			pts[j].Y = float64(row.Cumulative)
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", fmt.Errorf("failed to build line for %s: %w", team, err)
		}
		line.StepStyle = plotter.PostStep
		line.Color = r.teamColor(team, i)
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(team, line)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	path := filepath.Join(r.outputDir, "cumulative_wins.png")
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}
	return path, nil
}

// RenderSeasonWins draws stacked bars of per-season win counts, one stack
// segment per team
func (r *Renderer) RenderSeasonWins(counts []models.SeasonTeamCount) (string, error) {
	p := plot.New()
	p.Title.Text = "Race Wins per Season"
	p.X.Label.Text = "Season"
	p.Y.Label.Text = "Wins"

	seasonSet := make(map[int]bool)
	teamSet := make(map[string]bool)
	wins := make(map[string]map[int]int)
	for _, c := range counts {
		seasonSet[c.Season] = true
		teamSet[c.Team] = true
		if wins[c.Team] == nil {
			wins[c.Team] = make(map[int]int)
		}
		wins[c.Team][c.Season] = c.Wins
	}

	seasons := make([]int, 0, len(seasonSet))
	for s := range seasonSet {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)

	teams := make([]string, 0, len(teamSet))
	for t := range teamSet {
		teams = append(teams, t)
	}
	sort.Strings(teams)

	var prev *plotter.BarChart
	for i, team := range teams {
		values := make(plotter.Values, len(seasons))
		for j, season := range seasons {
			values[j] = float64(wins[team][season])
		}

		bars, err := plotter.NewBarChart(values, vg.Points(12))
		if err != nil {
			return "", fmt.Errorf("failed to build bars for %s: %w", team, err)
		}
		bars.LineStyle.Width = 0
		bars.Color = r.teamColor(team, i)
		if prev != nil {
			bars.StackOn(prev)
		}
		prev = bars

		p.Add(bars)
		p.Legend.Add(team, bars)
	}

	labels := make([]string, len(seasons))
	for i, season := range seasons {
		labels[i] = fmt.Sprintf("%d", season)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = -0.5
	p.X.Tick.Label.YAlign = -0.3
	p.Legend.Top = true
	p.Legend.Left = true

	path := filepath.Join(r.outputDir, "season_wins.png")
	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}
	return path, nil
}

// RenderTeamPoints draws the scraped current standings as a bar chart,
// highest points first
func (r *Renderer) RenderTeamPoints(standings []models.TeamPoints) (string, error) {
	sorted := make([]models.TeamPoints, len(standings))
	copy(sorted, standings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Points > sorted[j].Points })

	p := plot.New()
	p.Title.Text = "Current Constructor Standings"
	p.Y.Label.Text = "Points"

	values := make(plotter.Values, len(sorted))
	labels := make([]string, len(sorted))
	for i, tp := range sorted {
		values[i] = tp.Points
		labels[i] = tp.Team
	}

	bars, err := plotter.NewBarChart(values, vg.Points(25))
	if err != nil {
		return "", fmt.Errorf("failed to build bars: %w", err)
	}
	bars.LineStyle.Width = 0
	bars.Color = fallbackColors[0]
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = -0.8
	p.X.Tick.Label.YAlign = -0.3

	path := filepath.Join(r.outputDir, "team_points.png")
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}
	return path, nil
}

// categoryGrid adapts the bounded long-form table to plotter.GridXYZ.
// Columns are seasons, rows are races, Z is the team category index;
// cells for seasons a race was not held in are NaN and left undrawn.
type categoryGrid struct {
	seasons []int
	races   []string
	z       [][]float64 // [race][seasonIdx]
}

func (g *categoryGrid) Dims() (int, int)   { return len(g.seasons), len(g.races) }
func (g *categoryGrid) X(c int) float64    { return float64(g.seasons[c]) }
func (g *categoryGrid) Y(r int) float64    { return float64(r) }
func (g *categoryGrid) Z(c, r int) float64 { return g.z[r][c] }

// teamPalette maps category indices to team colors
type teamPalette struct {
	colors []color.Color
}

func (tp *teamPalette) Colors() []color.Color { return tp.colors }

// RenderRaceHeatmap draws the race-by-season winners matrix: one row per
// race (most-run first), one column per season, cell color keyed by the
// bounded team category
func (r *Renderer) RenderRaceHeatmap(cells []models.RaceSeasonCell) (string, error) {
	p := plot.New()
	p.Title.Text = "Race Winners by Season"
	p.X.Label.Text = "Season"

	seasonSet := make(map[int]bool)
	categorySet := make(map[string]bool)
	var races []string
	raceIdx := make(map[string]int)
	for _, cell := range cells {
		seasonSet[cell.Season] = true
		if cell.Team != aggregate.OtherTeam {
			categorySet[cell.Team] = true
		}
		if _, ok := raceIdx[cell.RaceName]; !ok {
			raceIdx[cell.RaceName] = len(races)
			races = append(races, cell.RaceName)
		}
	}

	seasons := make([]int, 0, len(seasonSet))
	for s := range seasonSet {
		seasons = append(seasons, s)
	}
	sort.Ints(seasons)
	seasonIdx := make(map[int]int, len(seasons))
	for i, s := range seasons {
		seasonIdx[s] = i
	}

	// Named categories sorted for a stable palette, "other" always last
	categories := make([]string, 0, len(categorySet)+1)
	for c := range categorySet {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	categories = append(categories, aggregate.OtherTeam)
	categoryIdx := make(map[string]int, len(categories))
	colors := make([]color.Color, len(categories))
	for i, c := range categories {
		categoryIdx[c] = i
		if c == aggregate.OtherTeam {
			colors[i] = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
		} else {
			colors[i] = r.teamColor(c, i)
		}
	}

	z := make([][]float64, len(races))
	for i := range z {
		z[i] = make([]float64, len(seasons))
		for j := range z[i] {
			z[i][j] = math.NaN()
		}
	}
	for _, cell := range cells {
		z[raceIdx[cell.RaceName]][seasonIdx[cell.Season]] = float64(categoryIdx[cell.Team])
	}

	// An empty grid has no data range and breaks axis scaling; an empty
	// chart is still written so the run completes.
	if len(cells) > 0 {
		grid := &categoryGrid{seasons: seasons, races: races, z: z}
		heatmap := plotter.NewHeatMap(grid, &teamPalette{colors: colors})
		heatmap.Min = 0
		heatmap.Max = float64(len(categories) - 1)
		p.Add(heatmap)

		ticks := make([]plot.Tick, len(races))
		for i, race := range races {
			ticks[i] = plot.Tick{Value: float64(i), Label: race}
		}
		p.Y.Tick.Marker = plot.ConstantTicks(ticks)
		p.Y.Tick.Label.Font.Size = vg.Points(8)
	}

	path := filepath.Join(r.outputDir, "race_heatmap.png")
	if err := p.Save(12*vg.Inch, 8*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save chart: %w", err)
	}
	return path, nil
}
