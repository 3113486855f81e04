package parser

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"f1-charts/models"
)

// ResultParser extracts race winners from fetched API pages
type ResultParser struct{}

// NewResultParser creates a new ResultParser instance
func NewResultParser() *ResultParser {
	return &ResultParser{}
}

// ParsePage decodes one API page and extracts the winner of each race in
// it, preserving the original race order. Races with no position==1 row
// are kept with Winner.Found == false so the caller can count and drop
// them; the page itself is discarded after extraction.
func (p *ResultParser) ParsePage(body []byte) ([]models.RaceResult, error) {
	var page models.RacePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to decode results page: %w", err)
	}

	var results []models.RaceResult
	for _, race := range page.MRData.RaceTable.Races {
		results = append(results, models.RaceResult{
			Season:   race.Season,
			RaceName: race.RaceName,
			Winner:   extractWinner(race),
		})
	}

	return results, nil
}

// extractWinner scans a race's result rows for the one with position 1.
// If more than one row claims position 1 the first in source order wins
// and a diagnostic is logged; the data is malformed either way.
func extractWinner(race models.Race) models.Winner {
	var winner models.Winner
	for _, row := range race.Results {
		if row.Position != "1" {
			continue
		}
		if winner.Found {
			log.Printf("Warning: multiple position-1 rows for %s %s, keeping first (%s)\n",
				race.Season, race.RaceName, winner.DriverID)
			continue
		}
		winner = models.Winner{
			DriverID:      row.Driver.DriverID,
			ConstructorID: row.Constructor.ConstructorID,
			Found:         true,
		}
	}
	return winner
}

// BuildWinTable concatenates the races of all fetched pages in fetch
// order, drops races without a resolvable winner, and projects the rest
// down to flat WinRows. Pages that fail to decode are logged and skipped,
// mirroring how failed fetches are handled upstream.
func (p *ResultParser) BuildWinTable(pages [][]byte) []models.WinRow {
	var rows []models.WinRow
	dropped := 0

	for i, body := range pages {
		results, err := p.ParsePage(body)
		if err != nil {
			log.Printf("Skipping page %d: %v\n", i+1, err)
			continue
		}

		for _, res := range results {
			if !res.Winner.Found {
				dropped++
				continue
			}
			season, err := strconv.Atoi(res.Season)
			if err != nil {
				log.Printf("Dropping race %q: bad season %q\n", res.RaceName, res.Season)
				dropped++
				continue
			}
			rows = append(rows, models.WinRow{
				Driver:   res.Winner.DriverID,
				Season:   season,
				Team:     res.Winner.ConstructorID,
				RaceName: res.RaceName,
			})
		}
	}

	if dropped > 0 {
		log.Printf("Dropped %d races without a resolvable winner\n", dropped)
	}

	return rows
}
