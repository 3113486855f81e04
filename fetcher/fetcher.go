package fetcher

import "f1-charts/pagination"

// Fetcher interface defines the contract for paginated API fetching
// implementations
type Fetcher interface {
	// Fetch retrieves the body of every page in the plan, in order.
	// Pages that fail are logged and omitted; a fully failed plan
	// returns an empty slice, not an error.
	Fetch(plan []pagination.PageURL) ([][]byte, error)
}
