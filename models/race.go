package models

// RacePage mirrors the paginated results API response. Numeric fields
// arrive as JSON strings ("season": "2021", "position": "1") and are
// coerced during extraction.
type RacePage struct {
	MRData struct {
		Total     string `json:"total"`
		Limit     string `json:"limit"`
		Offset    string `json:"offset"`
		RaceTable struct {
			Races []Race `json:"Races"`
		} `json:"RaceTable"`
	} `json:"MRData"`
}

// Race is one race within a RacePage, with its per-participant results.
type Race struct {
	Season   string      `json:"season"`
	Round    string      `json:"round"`
	RaceName string      `json:"raceName"`
	Results  []ResultRow `json:"Results"`
}

// ResultRow is one participant's classification in a race.
type ResultRow struct {
	Position string `json:"position"`
	Driver   struct {
		DriverID   string `json:"driverId"`
		GivenName  string `json:"givenName"`
		FamilyName string `json:"familyName"`
	} `json:"Driver"`
	Constructor struct {
		ConstructorID string `json:"constructorId"`
		Name          string `json:"name"`
	} `json:"Constructor"`
}

// Winner is the extraction result for a single race. Found is false when
// no result row carried position 1; such races are dropped when the win
// table is built.
type Winner struct {
	DriverID      string
	ConstructorID string
	Found         bool
}

// RaceResult pairs a race with its extracted winner, preserving source order.
type RaceResult struct {
	Season   string
	RaceName string
	Winner   Winner
}

// WinRow is one race with a resolvable winner, the unit of all downstream
// aggregation. Immutable once built.
type WinRow struct {
	Driver   string
	Season   int
	Team     string
	RaceName string
}

// SeasonTeamCount is one team's win tally for one season, with the running
// total over all seasons up to and including it.
type SeasonTeamCount struct {
	Season     int
	Team       string
	Wins       int
	Cumulative int
}

// RaceRow is one row of the race-by-season winners matrix. WinnerBySeason
// is sparse: a race not held in a given season has no entry.
type RaceRow struct {
	RaceName       string
	Appearances    int
	WinnerBySeason map[int]string
}

// RaceSeasonCell is the long-form (unpivoted) shape of the matrix, as
// consumed by the heatmap renderer.
type RaceSeasonCell struct {
	RaceName string
	Season   int
	Team     string
}

// TeamPoints is one team's current championship points, scraped from the
// standings page. Independent of the API-sourced tables.
type TeamPoints struct {
	Team   string
	Points float64
}
