package beacon

import (
	iofs "io/fs"
	"time"

	"github.com/bft-labs/beacon/internal/adapters/fs"
	"github.com/bft-labs/beacon/internal/ports"
	"github.com/bft-labs/beacon/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// ResourceLoader loads <name>.json resources.
type ResourceLoader = ports.ResourceLoader

// Option configures optional behavior of New.
type Option func(*options)

type options struct {
	httpClient ports.HTTPClient
	timeout    time.Duration
	logger     log.Logger
	bundle     ports.ResourceLoader
	userAgent  string
}

func defaultOptions() options {
	return options{
		logger: log.NewNoopLogger(),
	}
}

// WithHTTPClient sets a custom HTTP client. It takes precedence over WithTimeout.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the timeout of the default HTTP client.
// Zero (the default) means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBundleDir loads resources from a directory instead of the embedded bundle.
func WithBundleDir(dir string) Option {
	return func(o *options) {
		o.bundle = fs.NewDirBundle(dir)
	}
}

// WithBundleFS loads resources from fsys instead of the embedded bundle.
func WithBundleFS(fsys iofs.FS) Option {
	return func(o *options) {
		o.bundle = fs.NewBundle(fsys)
	}
}

// WithResourceLoader installs a custom resource loader.
func WithResourceLoader(loader ResourceLoader) Option {
	return func(o *options) {
		o.bundle = loader
	}
}

// WithUserAgent sets the User-Agent header of every beacon.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}
