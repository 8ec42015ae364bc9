package simulation

import (
	"net/http"
	"net/url"
)

// Request is one live request as observed by the proxy runtime. It carries
// everything the matching engine evaluates patterns against, and is what
// the journal records verbatim.
type Request struct {
	Scheme      string              `json:"scheme"`
	Method      string              `json:"method"`
	Destination string              `json:"destination"`
	Path        string              `json:"path"`
	Query       map[string][]string `json:"query,omitempty"`
	Headers     map[string][]string `json:"headers,omitempty"`
	Body        string              `json:"body"`
}

// RequestFromHTTP captures an *http.Request into the matching vocabulary.
// The body must be supplied by the caller, since reading it consumes the
// request stream.
func RequestFromHTTP(r *http.Request, body []byte) Request {
	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	destination := r.URL.Host
	if destination == "" {
		destination = r.Host
	}
	return Request{
		Scheme:      scheme,
		Method:      r.Method,
		Destination: destination,
		Path:        r.URL.Path,
		Query:       r.URL.Query(),
		Headers:     r.Header,
		Body:        string(body),
	}
}

// QueryValues returns the query map as url.Values.
func (r *Request) QueryValues() url.Values {
	return url.Values(r.Query)
}

// URL reconstructs the request target without the query string.
func (r *Request) URL() string {
	u := url.URL{Scheme: r.Scheme, Host: r.Destination, Path: r.Path}
	return u.String()
}
