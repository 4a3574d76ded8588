package httpclient

import "net/http"

// HTTPClient is satisfied by *http.Client; tests swap in a mock.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
