package fetcher

import (
	"log"
	"time"

	"f1-charts/pagination"

	"github.com/gocolly/colly/v2"
)

// CollyFetcher implements the Fetcher interface using colly. Safe to reuse
// across runs: each Fetch call starts from an empty page list.
type CollyFetcher struct {
	collector *colly.Collector
	pages     [][]byte
	planned   int
}

// NewCollyFetcher creates a new CollyFetcher instance. The delay is applied
// after every request regardless of outcome, to respect the API rate limit.
func NewCollyFetcher(delay time.Duration) *CollyFetcher {
	cf := &CollyFetcher{}

	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		colly.AllowURLRevisit(),
	)

	// One request at a time with a fixed delay between them
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       delay,
	})

	// A failed page is dropped, never fatal
	c.OnError(func(r *colly.Response, err error) {
		log.Printf("Error fetching %s (status %d): %v\n", r.Request.URL, r.StatusCode, err)
	})

	c.OnResponse(func(r *colly.Response) {
		body := make([]byte, len(r.Body))
		copy(body, r.Body)
		cf.pages = append(cf.pages, body)
		log.Printf("Fetched page %d/%d: %s\n", len(cf.pages), cf.planned, r.Request.URL)
	})

	cf.collector = c
	return cf
}

// Fetch implements the Fetcher interface
func (cf *CollyFetcher) Fetch(plan []pagination.PageURL) ([][]byte, error) {
	cf.pages = nil
	cf.planned = len(plan)

	for _, page := range plan {
		// Visit returns an error for skipped or failed requests; the
		// OnError handler has already logged it, so just move on to
		// the next offset.
		if err := cf.collector.Visit(page.URL); err != nil {
			log.Printf("Skipping %s: %v\n", page.Label, err)
		}
	}

	cf.collector.Wait()

	if len(cf.pages) == 0 {
		log.Println("Warning: no pages fetched; downstream tables will be empty")
	}

	log.Printf("Fetching completed. Total pages fetched: %d (requested: %d)\n", len(cf.pages), len(plan))

	return cf.pages, nil
}
