package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption = goerr.New("invalid option")

	// ErrNetwork covers connection and timeout failures where no HTTP
	// response was observed. Always retryable.
	ErrNetwork = goerr.New("network error")

	// ErrRateLimited is returned when the API rejects a request because the
	// quota is exhausted. It is retryable after the reset time passes.
	ErrRateLimited = goerr.New("API rate limit exceeded")

	// ErrServerError is a 5xx response. Retryable with backoff.
	ErrServerError = goerr.New("server error")

	// ErrClientError is a 4xx response other than a rate limit. Never retried.
	ErrClientError = goerr.New("client error")

	// ErrMalformedResponse means the API returned a payload that cannot be
	// mapped to a domain entity. The wrapping error names the offending field.
	ErrMalformedResponse = goerr.New("malformed API response")

	// ErrRetryExhausted wraps the last retryable cause after the attempt
	// budget is spent.
	ErrRetryExhausted = goerr.New("retry attempts exhausted")

	ErrDownloadFailed = goerr.New("asset download failed")
	ErrFileExists     = goerr.New("destination file already exists")
)
