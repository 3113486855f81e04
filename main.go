package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"f1-charts/aggregate"
	"f1-charts/charts"
	"f1-charts/config"
	"f1-charts/fetcher"
	"f1-charts/models"
	"f1-charts/pagination"
	"f1-charts/parser"
	"f1-charts/report"
	"f1-charts/scheduler"
	"f1-charts/scraper"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	outDir := flag.String("out", "", "Chart output directory (overrides config)")
	botMode := flag.Bool("bot", false, "Run as a Telegram bot instead of a one-shot job")
	skipStandings := flag.Bool("skip-standings", false, "Skip scraping the current standings page")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *outDir != "" {
		cfg.Charts.OutputDir = *outDir
	}

	if *botMode {
		runTelegramBot(cfg, *skipStandings)
		return
	}

	runCLIMode(cfg, *skipStandings)
}

// loadConfig loads the config file, falling back to defaults when missing
func loadConfig(path string) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v\n", path, err)
		log.Println("Using default configuration")
		return config.GetDefaultConfig()
	}
	return cfg
}

// runCLIMode runs the pipeline once and writes the charts to disk
func runCLIMode(cfg *config.Config, skipStandings bool) {
	result, err := runPipeline(cfg, skipStandings)
	if err != nil {
		log.Fatalf("Pipeline failed: %v\n", err)
	}

	fmt.Println("Charts written:")
	for _, path := range result.ChartPaths {
		fmt.Printf("  %s\n", path)
	}

	if result.WinsText != "" {
		fmt.Println("\nWins per Season:")
		fmt.Println(result.WinsText)
	}

	if result.StandingsText != "" {
		fmt.Println("\nCurrent Constructor Standings:")
		fmt.Println(result.StandingsText)
	}
}

// runPipeline executes the fetch, reshape and render stages. Failures of
// individual pages or of the standings branch are logged and survived;
// the run always completes with whatever data made it through.
func runPipeline(cfg *config.Config, skipStandings bool) (*scheduler.Result, error) {
	// Plan and fetch the paginated results API
	plan, err := pagination.GenerateOffsetURLs(
		cfg.API.BaseURL, cfg.API.Limit, cfg.API.OffsetStart, cfg.API.OffsetEnd, cfg.API.OffsetStep)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch plan: %w", err)
	}

	f := fetcher.NewCollyFetcher(time.Duration(cfg.API.DelaySeconds) * time.Second)
	pages, err := f.Fetch(plan)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	// Extract winners and build the flat win table
	p := parser.NewResultParser()
	winRows := p.BuildWinTable(pages)
	log.Printf("Built win table with %d rows from %d pages\n", len(winRows), len(pages))

	// Derive both aggregate shapes
	counts := aggregate.CumulativeWins(winRows)
	allowed := aggregate.FilterTeams(counts, cfg.Charts.TeamAllowlist)

	matrix := aggregate.RaceMatrix(winRows, cfg.Charts.TopRaces)
	cells := aggregate.BoundTeamCategories(aggregate.Unpivot(matrix), cfg.Charts.TopTeams)

	// Render charts
	renderer, err := charts.NewRenderer(cfg.Charts.OutputDir, cfg.Charts.TeamColors)
	if err != nil {
		return nil, err
	}

	result := &scheduler.Result{}
	if len(allowed) > 0 {
		result.WinsText = report.WinsTable(allowed)
	}

	if path, err := renderer.RenderCumulativeWins(allowed); err != nil {
		log.Printf("Warning: cumulative wins chart failed: %v\n", err)
	} else {
		result.ChartPaths = append(result.ChartPaths, path)
	}

	if path, err := renderer.RenderSeasonWins(counts); err != nil {
		log.Printf("Warning: season wins chart failed: %v\n", err)
	} else {
		result.ChartPaths = append(result.ChartPaths, path)
	}

	if path, err := renderer.RenderRaceHeatmap(cells); err != nil {
		log.Printf("Warning: race heatmap failed: %v\n", err)
	} else {
		result.ChartPaths = append(result.ChartPaths, path)
	}

	// Standings branch runs independently of the API branch
	if !skipStandings {
		standings, err := fetchStandings(cfg)
		if err != nil {
			log.Printf("Warning: standings scrape failed, continuing without it: %v\n", err)
		} else {
			result.StandingsText = report.StandingsTable(standings)
			if path, err := renderer.RenderTeamPoints(standings); err != nil {
				log.Printf("Warning: team points chart failed: %v\n", err)
			} else {
				result.ChartPaths = append(result.ChartPaths, path)
			}
		}
	}

	return result, nil
}

// fetchStandings scrapes and parses the current constructor standings
func fetchStandings(cfg *config.Config) ([]models.TeamPoints, error) {
	var s scraper.Scraper
	if cfg.Standings.UseBrowser {
		rs, err := scraper.NewRodScraper()
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		defer rs.Close()
		s = rs
	} else {
		s = scraper.NewCollyScraper()
	}

	html, err := s.Scrape(cfg.Standings.URL)
	if err != nil {
		return nil, err
	}

	sp := parser.NewStandingsParser(parser.StrideConfig{
		NameSelector:   cfg.Standings.NameSelector,
		PointsSelector: cfg.Standings.PointsSelector,
		NameStride:     cfg.Standings.NameStride,
		NameOffset:     cfg.Standings.NameOffset,
		PointsStride:   cfg.Standings.PointsStride,
		PointsOffset:   cfg.Standings.PointsOffset,
	})

	return sp.ParseStandings(html)
}

// runTelegramBot runs the pipeline on demand from chat commands
func runTelegramBot(cfg *config.Config, skipStandings bool) {
	// Get bot token from environment
	botToken := os.Getenv("F1_KEY_TG")
	if botToken == "" {
		log.Fatalf("Error: F1_KEY_TG environment variable is not set")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v\n", err)
	}

	log.Printf("Authorized on account %s\n", bot.Self.UserName)

	sched := scheduler.NewScheduler(bot, func() (*scheduler.Result, error) {
		return runPipeline(cfg, skipStandings)
	})
	sched.Start()
	defer sched.Stop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}

		chatID := update.Message.Chat.ID
		switch update.Message.Command() {
		case "start":
			bot.Send(tgbotapi.NewMessage(chatID,
				"🏎 F1 charts bot\n\n/charts — fetch results and render all charts\n/standings — current constructor standings"))
		case "charts":
			if !sched.Enqueue(chatID) {
				bot.Send(tgbotapi.NewMessage(chatID, "Queue is full, try again later"))
				continue
			}
			bot.Send(tgbotapi.NewMessage(chatID, "✅ Request queued"))
		case "standings":
			standings, err := fetchStandings(cfg)
			if err != nil {
				bot.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Standings scrape failed: %v", err)))
				continue
			}
			msg := tgbotapi.NewMessage(chatID, "```\n"+report.StandingsTable(standings)+"\n```")
			msg.ParseMode = tgbotapi.ModeMarkdown
			bot.Send(msg)
		default:
			bot.Send(tgbotapi.NewMessage(chatID, "Unknown command, try /charts or /standings"))
		}
	}
}
