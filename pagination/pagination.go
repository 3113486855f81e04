package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

// DefaultStep is the default offset step size
const DefaultStep = 100

// PageURL represents one paginated request URL
type PageURL struct {
	URL    string
	Label  string // e.g., "offset 100-199"
	Offset int
	Limit  int
}

// GenerateOffsetURLs takes a base URL and generates one URL per page of the
// offset range [start, end) with the given step. Each generated URL has
// limit and offset query parameters set, preserving any other parameters
// already on the base URL. An empty or inverted range degrades to a
// single-page plan at the start offset.
func GenerateOffsetURLs(baseURL string, limit, start, end, step int) ([]PageURL, error) {
	if step <= 0 {
		step = DefaultStep
	}
	if limit <= 0 {
		limit = step
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	if end <= start {
		u := withParams(*parsedURL, limit, start)
		return []PageURL{{URL: u, Label: pageLabel(start, limit), Offset: start, Limit: limit}}, nil
	}

	var pages []PageURL
	for offset := start; offset < end; offset += step {
		u := withParams(*parsedURL, limit, offset)
		pages = append(pages, PageURL{
			URL:    u,
			Label:  pageLabel(offset, limit),
			Offset: offset,
			Limit:  limit,
		})
	}

	return pages, nil
}

func withParams(u url.URL, limit, offset int) string {
	query := u.Query()
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))
	u.RawQuery = query.Encode()
	return u.String()
}

func pageLabel(offset, limit int) string {
	return fmt.Sprintf("offset %d-%d", offset, offset+limit-1)
}
