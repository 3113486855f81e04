package parser

import (
	"fmt"
	"strconv"
	"strings"

	"f1-charts/models"

	"github.com/PuerkitoBio/goquery"
)

// StrideConfig describes how to subsample the repeated text nodes on the
// standings page. The page markup repeats each value in several nested
// elements, so a fixed stride over the matched nodes recovers exactly one
// value per team. The strides are tied to the page markup and live in
// configuration, not code.
type StrideConfig struct {
	NameSelector   string
	PointsSelector string
	NameStride     int
	NameOffset     int
	PointsStride   int
	PointsOffset   int
}

// StandingsParser extracts team names and point totals from the teams page
type StandingsParser struct {
	cfg StrideConfig
}

// NewStandingsParser creates a new StandingsParser instance
func NewStandingsParser(cfg StrideConfig) *StandingsParser {
	return &StandingsParser{cfg: cfg}
}

// ParseStandings extracts the TeamPoints table from the teams page HTML.
// The two selector matches must subsample to lists of equal length; a
// mismatch means the page markup changed and pairing by index would
// silently associate wrong points with wrong teams, so it is an error.
func (sp *StandingsParser) ParseStandings(htmlContent string) ([]models.TeamPoints, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	names := subsample(collectText(doc, sp.cfg.NameSelector), sp.cfg.NameStride, sp.cfg.NameOffset)
	pointsText := subsample(collectText(doc, sp.cfg.PointsSelector), sp.cfg.PointsStride, sp.cfg.PointsOffset)

	if len(names) != len(pointsText) {
		return nil, fmt.Errorf("standings page structure mismatch: %d names vs %d point values (selectors %q / %q)",
			len(names), len(pointsText), sp.cfg.NameSelector, sp.cfg.PointsSelector)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("standings page yielded no teams (selector %q)", sp.cfg.NameSelector)
	}

	standings := make([]models.TeamPoints, 0, len(names))
	for i, name := range names {
		points, err := parsePoints(pointsText[i])
		if err != nil {
			return nil, fmt.Errorf("bad points value for %q: %w", name, err)
		}
		standings = append(standings, models.TeamPoints{
			Team:   name,
			Points: points,
		})
	}

	return standings, nil
}

// collectText gathers the trimmed text of every node matched by the selector
func collectText(doc *goquery.Document, selector string) []string {
	var texts []string
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

// subsample keeps every stride-th element starting at offset. Out-of-range
// stride and offset values are clamped so a misconfigured StrideConfig
// cannot index outside the input.
func subsample(values []string, stride, offset int) []string {
	if stride <= 0 {
		stride = 1
	}
	if offset < 0 {
		offset = 0
	}
	var out []string
	for i := offset; i < len(values); i += stride {
		out = append(out, values[i])
	}
	return out
}

// parsePoints converts a scraped points string ("590", "1,234", "25 pts")
// to a number
func parsePoints(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, "pts")
	cleaned = strings.TrimSuffix(cleaned, "PTS")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("empty points text")
	}
	points, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable points text %q: %w", text, err)
	}
	return points, nil
}
