package http

import (
	"net/http"
	"time"
)

const UserAgentHeader = "User-Agent"

// ProvideHTTPClient returns a client that sends the releasegate user agent
// and the given headers with every request.
func ProvideHTTPClient(headers map[string]string, timeout time.Duration) *http.Client {
	standard := map[string]string{
		UserAgentHeader: UserAgent(),
	}
	for k, v := range headers {
		standard[k] = v
	}

	return &http.Client{
		Timeout: timeout,
		Transport: &Transport{
			headers: standard,
		},
	}
}
