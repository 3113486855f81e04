package parser

import (
	"testing"

	"f1-charts/models"
)

const pageWithWinner = `{
	"MRData": {
		"total": "1",
		"RaceTable": {
			"Races": [
				{
					"season": "2021",
					"round": "1",
					"raceName": "R1",
					"Results": [
						{"position": "1", "Driver": {"driverId": "d1"}, "Constructor": {"constructorId": "t1"}},
						{"position": "2", "Driver": {"driverId": "d2"}, "Constructor": {"constructorId": "t2"}}
					]
				}
			]
		}
	}
}`

const pageWithoutWinner = `{
	"MRData": {
		"total": "1",
		"RaceTable": {
			"Races": [
				{
					"season": "2021",
					"round": "2",
					"raceName": "R2",
					"Results": [
						{"position": "2", "Driver": {"driverId": "d2"}, "Constructor": {"constructorId": "t2"}},
						{"position": "3", "Driver": {"driverId": "d3"}, "Constructor": {"constructorId": "t3"}}
					]
				}
			]
		}
	}
}`

const pageWithDuplicateWinners = `{
	"MRData": {
		"RaceTable": {
			"Races": [
				{
					"season": "2020",
					"raceName": "R3",
					"Results": [
						{"position": "1", "Driver": {"driverId": "first"}, "Constructor": {"constructorId": "t1"}},
						{"position": "1", "Driver": {"driverId": "second"}, "Constructor": {"constructorId": "t2"}}
					]
				}
			]
		}
	}
}`

func TestParsePage(t *testing.T) {
	p := NewResultParser()

	tests := []struct {
		name       string
		body       string
		wantRaces  int
		wantFound  bool
		wantDriver string
	}{
		{"race with winner", pageWithWinner, 1, true, "d1"},
		{"race without winner kept but marked", pageWithoutWinner, 1, false, ""},
		{"duplicate winners keep first", pageWithDuplicateWinners, 1, true, "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := p.ParsePage([]byte(tt.body))
			if err != nil {
				t.Fatalf("ParsePage() error = %v", err)
			}
			if len(results) != tt.wantRaces {
				t.Fatalf("got %d races, want %d", len(results), tt.wantRaces)
			}
			if results[0].Winner.Found != tt.wantFound {
				t.Errorf("Winner.Found = %v, want %v", results[0].Winner.Found, tt.wantFound)
			}
			if results[0].Winner.DriverID != tt.wantDriver {
				t.Errorf("Winner.DriverID = %q, want %q", results[0].Winner.DriverID, tt.wantDriver)
			}
		})
	}
}

func TestParsePageBadJSON(t *testing.T) {
	p := NewResultParser()
	if _, err := p.ParsePage([]byte("<html>not json</html>")); err == nil {
		t.Error("expected error for non-JSON body")
	}
}

func TestBuildWinTable(t *testing.T) {
	p := NewResultParser()

	// Page A has one race with a winner, page B has a race with no
	// position-1 row; only the page A race survives.
	rows := p.BuildWinTable([][]byte{
		[]byte(pageWithWinner),
		[]byte(pageWithoutWinner),
	})

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	want := models.WinRow{Driver: "d1", Season: 2021, Team: "t1", RaceName: "R1"}
	if rows[0] != want {
		t.Errorf("got %+v, want %+v", rows[0], want)
	}
}

func TestBuildWinTableSkipsBadPages(t *testing.T) {
	p := NewResultParser()

	rows := p.BuildWinTable([][]byte{
		[]byte("garbage"),
		[]byte(pageWithWinner),
	})

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (bad page skipped)", len(rows))
	}
}

func TestBuildWinTableEmptyInput(t *testing.T) {
	p := NewResultParser()

	if rows := p.BuildWinTable(nil); len(rows) != 0 {
		t.Errorf("got %d rows for no pages, want 0", len(rows))
	}
}

func TestBuildWinTableDropsBadSeasons(t *testing.T) {
	p := NewResultParser()

	badSeason := `{"MRData": {"RaceTable": {"Races": [
		{"season": "??", "raceName": "R9", "Results": [
			{"position": "1", "Driver": {"driverId": "d1"}, "Constructor": {"constructorId": "t1"}}
		]}
	]}}}`

	if rows := p.BuildWinTable([][]byte{[]byte(badSeason)}); len(rows) != 0 {
		t.Errorf("got %d rows, want 0 (unparseable season dropped)", len(rows))
	}
}

func TestWinTableFieldsNeverEmpty(t *testing.T) {
	p := NewResultParser()
	rows := p.BuildWinTable([][]byte{[]byte(pageWithWinner), []byte(pageWithDuplicateWinners)})

	for i, row := range rows {
		if row.Driver == "" || row.Team == "" || row.RaceName == "" {
			t.Errorf("row %d has empty fields: %+v", i, row)
		}
		if row.Season == 0 {
			t.Errorf("row %d has zero season: %+v", i, row)
		}
	}
}
