package ports

import (
	"context"
	"net/url"
)

// BeaconSender issues a single POST of an already encoded JSON body.
// It does not guard against overlapping calls.
type BeaconSender interface {
	// Post sends body to dest with Content-Type application/json and
	// returns the response status code. Any status, including 4xx/5xx, is
	// a successful exchange. Client failures are returned as
	// *domain.TransportError.
	Post(ctx context.Context, dest *url.URL, body []byte) (int, error)
}
