package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"f1-charts/config"
)

const testPageTemplate = `{
	"MRData": {
		"RaceTable": {
			"Races": [
				{
					"season": %q,
					"raceName": "R1",
					"Results": [
						{"position": "1", "Driver": {"driverId": %q}, "Constructor": {"constructorId": "t1"}},
						{"position": "2", "Driver": {"driverId": "d9"}, "Constructor": {"constructorId": "t9"}}
					]
				}
			]
		}
	}
}`

func testAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("offset") {
		case "0":
			fmt.Fprintf(w, testPageTemplate, "2020", "d1")
		default:
			fmt.Fprintf(w, testPageTemplate, "2021", "d2")
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testStandingsServer(t *testing.T) *httptest.Server {
	t.Helper()
	var b strings.Builder
	b.WriteString("<html><body>")
	teams := []string{"Red Bull Racing", "Ferrari"}
	points := []string{"590", "432"}
	for i := range teams {
		for j := 0; j < 5; j++ {
			b.WriteString(`<span class="team-name">` + teams[i] + `</span>`)
		}
		for j := 0; j < 2; j++ {
			b.WriteString(`<span class="team-points">` + points[i] + `</span>`)
		}
	}
	b.WriteString("</body></html>")
	html := b.String()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunPipeline(t *testing.T) {
	api := testAPIServer(t)
	standings := testStandingsServer(t)

	cfg := config.GetDefaultConfig()
	cfg.API.BaseURL = api.URL
	cfg.API.Limit = 100
	cfg.API.OffsetStart = 0
	cfg.API.OffsetEnd = 200
	cfg.API.OffsetStep = 100
	cfg.API.DelaySeconds = 0
	cfg.Standings.URL = standings.URL
	cfg.Standings.NameSelector = ".team-name"
	cfg.Standings.PointsSelector = ".team-points"
	cfg.Charts.TeamAllowlist = []string{"t1"}
	cfg.Charts.OutputDir = t.TempDir()

	result, err := runPipeline(cfg, false)
	if err != nil {
		t.Fatalf("runPipeline() error = %v", err)
	}

	if len(result.ChartPaths) != 4 {
		t.Errorf("got %d charts, want 4: %v", len(result.ChartPaths), result.ChartPaths)
	}

	// The wins table backs CLI output and bot replies
	if result.WinsText == "" {
		t.Fatal("WinsText is empty")
	}
	for _, want := range []string{"t1", "2020", "2021"} {
		if !strings.Contains(result.WinsText, want) {
			t.Errorf("wins table missing %q:\n%s", want, result.WinsText)
		}
	}

	if !strings.Contains(result.StandingsText, "Ferrari") || !strings.Contains(result.StandingsText, "590") {
		t.Errorf("standings table missing scraped values:\n%s", result.StandingsText)
	}
}

func TestRunPipelineSkipsStandings(t *testing.T) {
	api := testAPIServer(t)

	cfg := config.GetDefaultConfig()
	cfg.API.BaseURL = api.URL
	cfg.API.OffsetStart = 0
	cfg.API.OffsetEnd = 100
	cfg.API.OffsetStep = 100
	cfg.API.DelaySeconds = 0
	cfg.Charts.TeamAllowlist = []string{"t1"}
	cfg.Charts.OutputDir = t.TempDir()

	result, err := runPipeline(cfg, true)
	if err != nil {
		t.Fatalf("runPipeline() error = %v", err)
	}

	if result.StandingsText != "" {
		t.Error("standings branch should be skipped")
	}
	if len(result.ChartPaths) != 3 {
		t.Errorf("got %d charts, want 3 without the points chart", len(result.ChartPaths))
	}
}
