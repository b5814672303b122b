package workers

import "net/http"

// HeadProber issues a protocol-level existence check against a URL.
// *http.Client satisfies it; the client's Timeout bounds every probe.
type HeadProber interface {
	Head(url string) (*http.Response, error)
}

// IsURLAlive reports whether url still responds to a HEAD probe.
// It is a total function: any transport failure (timeout, refused
// connection, DNS, TLS) counts as dead, the same as a 4xx/5xx status.
// An empty url is dead without a network call.
func IsURLAlive(url string, prober HeadProber) bool {
	if url == "" {
		return false
	}

	resp, err := prober.Head(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode < 400
}
