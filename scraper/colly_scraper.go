package scraper

import (
	"fmt"
	"log"

	"github.com/gocolly/colly/v2"
)

// CollyScraper implements the Scraper interface with a plain HTTP fetch.
// Sufficient while the standings page serves its markup server-side; if
// the page moves behind JavaScript rendering, switch to the RodScraper.
type CollyScraper struct {
	collector *colly.Collector
}

// NewCollyScraper creates a new CollyScraper instance
func NewCollyScraper() *CollyScraper {
	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)

	c.OnError(func(r *colly.Response, err error) {
		log.Printf("Error fetching %s (status %d): %v\n", r.Request.URL, r.StatusCode, err)
	})

	return &CollyScraper{
		collector: c,
	}
}

// Scrape implements the Scraper interface
func (cs *CollyScraper) Scrape(url string) (string, error) {
	var html string

	cs.collector.OnResponse(func(r *colly.Response) {
		html = string(r.Body)
	})

	if err := cs.collector.Visit(url); err != nil {
		return "", fmt.Errorf("failed to fetch standings page: %w", err)
	}
	cs.collector.Wait()

	if html == "" {
		return "", fmt.Errorf("standings page returned no content")
	}

	return html, nil
}
