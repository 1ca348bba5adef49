package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"

	"github.com/google/uuid"

	"github.com/bft-labs/beacon/internal/domain"
	"github.com/bft-labs/beacon/internal/ports"
	"github.com/bft-labs/beacon/pkg/log"
)

const contentTypeJSON = "application/json"

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "beacon/dev"

// BeaconSender implements ports.BeaconSender using HTTP.
type BeaconSender struct {
	client    ports.HTTPClient
	logger    ports.Logger
	userAgent string
}

// NewBeaconSender creates a new HTTP beacon sender.
func NewBeaconSender(client ports.HTTPClient, logger ports.Logger, userAgent string) *BeaconSender {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &BeaconSender{
		client:    client,
		logger:    logger,
		userAgent: userAgent,
	}
}

// Post sends body to dest and returns the response status code.
func (s *BeaconSender) Post(ctx context.Context, dest *url.URL, body []byte) (int, error) {
	if dest == nil {
		return 0, fmt.Errorf("%w: nil destination", domain.ErrInvalidDestination)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, dest.String(), bytes.NewReader(body))
	if err != nil {
		return 0, &domain.TransportError{Err: fmt.Errorf("create request: %w", err)}
	}

	beaconID := uuid.NewString()
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("X-Beacon-Id", beaconID)
	req.Header.Set("X-Agent-OSArch", runtime.GOOS+"/"+runtime.GOARCH)

	s.logger.Debug("posting beacon",
		log.String("beacon_id", beaconID),
		log.String("destination", dest.Redacted()),
		log.Int("bytes", len(body)),
	)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	// Only the status is surfaced; drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Debug("beacon response",
		log.String("beacon_id", beaconID),
		log.Int("status", resp.StatusCode),
	)
	return resp.StatusCode, nil
}

var _ ports.BeaconSender = (*BeaconSender)(nil)
