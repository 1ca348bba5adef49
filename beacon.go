// Package beacon sends a single JSON document to an HTTP endpoint and
// reports the response status.
//
// Example usage:
//
//	c := beacon.New("http://localhost:2000", beacon.WithBundleDir("./fixtures"))
//	res := <-c.SendLiteral(ctx, beacon.PayloadA())
//	fmt.Println(res) // Status: 200
//
//	res = <-c.SendResource(ctx, "login")
package beacon

import (
	"net/http"

	"github.com/bft-labs/beacon/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/beacon/internal/adapters/http"
	"github.com/bft-labs/beacon/internal/app"
	"github.com/bft-labs/beacon/internal/assets"
	"github.com/bft-labs/beacon/internal/domain"
)

// Controller owns the destination, the sending flag and the last result.
type Controller = app.Controller

// Result is the outcome of one send attempt.
type Result = domain.Result

// ResultKind classifies a Result.
type ResultKind = domain.ResultKind

// Result kinds.
const (
	ResultNone               = domain.ResultNone
	ResultStatus             = domain.ResultStatus
	ResultInvalidDestination = domain.ResultInvalidDestination
	ResultInvalidPayload     = domain.ResultInvalidPayload
	ResultResourceNotFound   = domain.ResultResourceNotFound
	ResultTransportError     = domain.ResultTransportError
	ResultBusy               = domain.ResultBusy
)

// Errors returned in Result.Err; check them with errors.Is.
var (
	ErrInvalidDestination = domain.ErrInvalidDestination
	ErrInvalidPayload     = domain.ErrInvalidPayload
	ErrResourceNotFound   = domain.ErrResourceNotFound
	ErrTransport          = domain.ErrTransport
	ErrSendInProgress     = domain.ErrSendInProgress
)

// New creates a Controller posting to destination. Without options it uses
// http.DefaultClient, the embedded bundle and a no-op logger.
func New(destination string, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	client := o.httpClient
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}

	bundle := o.bundle
	if bundle == nil {
		bundle = fs.NewBundle(assets.Bundle)
	}

	sender := httpAdapter.NewBeaconSender(client, o.logger, o.userAgent)
	return app.NewController(sender, bundle, o.logger, destination)
}

// PayloadA returns the built-in "A" beacon.
func PayloadA() map[string]any { return domain.PayloadA() }

// PayloadB returns the built-in "B" beacon.
func PayloadB() map[string]any { return domain.PayloadB() }

// BuiltinPayload resolves a built-in beacon by name ("a" or "b").
func BuiltinPayload(name string) (map[string]any, bool) { return domain.BuiltinPayload(name) }

// PrettyPrint renders a payload (or raw JSON bytes) as indented JSON.
func PrettyPrint(v any) string { return domain.PrettyPrint(v) }
