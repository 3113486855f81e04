package scraper

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// RodScraper implements the Scraper interface using rod (headless browser).
// Needed when the standings page renders its content with JavaScript and a
// plain HTTP fetch returns an empty shell.
type RodScraper struct {
	browser *rod.Browser
}

// NewRodScraper creates a new RodScraper instance
func NewRodScraper() (*RodScraper, error) {
	// Get user data directory from environment or use default
	// This should be mounted as a volume to use disk instead of memory
	userDataDir := os.Getenv("BOT_DATA_DIR")
	if userDataDir == "" {
		userDataDir = "/tmp/f1-charts-data"
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(userDataDir, 0755); err != nil {
		log.Printf("Warning: Failed to create browser data directory %s: %v\n", userDataDir, err)
		userDataDir = "" // Fall back to default if we can't create it
	}

	l := launcher.New().
		Headless(true).
		Set("disable-blink-features", "AutomationControlled").
		NoSandbox(true).
		Leakless(false). // Disable leakless to avoid antivirus issues
		UserDataDir(userDataDir).
		// Flags for Linux container compatibility
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("disable-extensions").
		Set("disable-background-networking").
		Set("mute-audio")

	// Prefer a system Chrome/Chromium over downloading one
	chromePaths := []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/snap/bin/chromium",
	}
	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			l = l.Bin(path)
			break
		}
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	return &RodScraper{
		browser: browser,
	}, nil
}

// Scrape implements the Scraper interface
func (rs *RodScraper) Scrape(url string) (string, error) {
	var page *rod.Page
	var pageErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				pageErr = fmt.Errorf("panic while creating page: %v", r)
				log.Printf("Panic while creating page: %v\n", r)
			}
		}()
		page = rs.browser.MustPage()
	}()
	if pageErr != nil {
		return "", pageErr
	}
	if page == nil {
		return "", fmt.Errorf("failed to create page")
	}
	defer page.Close()

	if err := page.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate: %w", err)
	}

	page.WaitLoad()

	// Give JavaScript time to render the standings cards
	if err := page.Timeout(10 * time.Second).WaitStable(500 * time.Millisecond); err != nil {
		log.Printf("Warning: Standings page did not stabilize within timeout, continuing anyway: %v\n", err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page HTML: %w", err)
	}

	return html, nil
}

// Close shuts down the headless browser
func (rs *RodScraper) Close() {
	if rs.browser != nil {
		if err := rs.browser.Close(); err != nil {
			log.Printf("Warning: Failed to close browser: %v\n", err)
		}
	}
}
