package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("missing catalog API key")

	// Catalog API errors
	ErrAPIRequest    = fmt.Errorf("API request failed")
	ErrDecode        = fmt.Errorf("unexpected response shape")
	ErrMovieNotFound = fmt.Errorf("movie not found")

	// Local persistence errors
	ErrStorage   = fmt.Errorf("storage operation failed")
	ErrCacheMiss = fmt.Errorf("no cached data available")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
