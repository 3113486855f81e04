package scraper

// Scraper interface defines the contract for fetching the standings page
type Scraper interface {
	// Scrape fetches the page at the given URL and returns its HTML
	Scrape(url string) (string, error)
}
