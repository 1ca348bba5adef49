package app

import (
	"context"
	"sync"
	"time"

	"github.com/bft-labs/beacon/internal/domain"
	"github.com/bft-labs/beacon/internal/ports"
	"github.com/bft-labs/beacon/pkg/log"
)

// subscriberBuffer is the per-subscriber channel capacity. Updates to a
// full subscriber are dropped rather than blocking the send path.
const subscriberBuffer = 8

// Controller owns the state a front end displays: the destination, the
// advisory sending flag and the last result. Sends run on their own
// goroutine and report back through a one-shot channel and to subscribers.
type Controller struct {
	sender ports.BeaconSender
	bundle ports.ResourceLoader
	logger ports.Logger

	mu          sync.Mutex
	destination string
	state       domain.SendState
	last        domain.Result
	subscribers map[int]chan domain.Result
	nextSubID   int

	wg sync.WaitGroup
}

// NewController creates a controller that posts through sender and loads
// resources from bundle.
func NewController(sender ports.BeaconSender, bundle ports.ResourceLoader, logger ports.Logger, destination string) *Controller {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Controller{
		sender:      sender,
		bundle:      bundle,
		logger:      logger,
		destination: destination,
		state:       domain.StateIdle,
		subscribers: make(map[int]chan domain.Result),
	}
}

// SetDestination replaces the destination used by SendLiteral and SendResource.
func (c *Controller) SetDestination(destination string) {
	c.mu.Lock()
	c.destination = destination
	c.mu.Unlock()
}

// Destination returns the current destination as entered.
func (c *Controller) Destination() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destination
}

// State returns the current send state.
func (c *Controller) State() domain.SendState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Sending reports whether a send is outstanding.
func (c *Controller) Sending() bool {
	return c.State() == domain.StateSending
}

// LastResult returns the result of the most recent completed attempt.
func (c *Controller) LastResult() domain.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Subscribe registers for result updates. The returned cancel func
// unregisters and closes the channel.
func (c *Controller) Subscribe() (<-chan domain.Result, func()) {
	ch := make(chan domain.Result, subscriberBuffer)

	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// SendLiteral encodes payload and posts it to the current destination.
func (c *Controller) SendLiteral(ctx context.Context, payload any) <-chan domain.Result {
	return c.SendLiteralTo(ctx, payload, c.Destination())
}

// SendLiteralTo encodes payload and posts it to destination.
func (c *Controller) SendLiteralTo(ctx context.Context, payload any, destination string) <-chan domain.Result {
	return c.dispatch(ctx, destination, func() ([]byte, error) {
		return domain.EncodePayload(payload)
	})
}

// SendResource posts <name>.json from the bundle to the current destination.
func (c *Controller) SendResource(ctx context.Context, name string) <-chan domain.Result {
	return c.SendResourceTo(ctx, name, c.Destination())
}

// SendResourceTo posts <name>.json from the bundle to destination.
// The loaded bytes are sent as-is.
func (c *Controller) SendResourceTo(ctx context.Context, name, destination string) <-chan domain.Result {
	return c.dispatch(ctx, destination, func() ([]byte, error) {
		return c.bundle.Load(name)
	})
}

// Wait blocks until every outstanding send has completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// dispatch validates the destination, builds the body and, when both
// succeed, posts it on a new goroutine. Validation failures complete
// immediately without a network call.
func (c *Controller) dispatch(ctx context.Context, destination string, body func() ([]byte, error)) <-chan domain.Result {
	out := make(chan domain.Result, 1)

	c.mu.Lock()
	if c.state == domain.StateSending {
		c.mu.Unlock()
		c.logger.Warn("send ignored, another send is in flight", log.String("destination", destination))
		out <- domain.ErrorResult(domain.ErrSendInProgress, destination)
		close(out)
		return out
	}
	c.mu.Unlock()

	dest, err := domain.ParseDestination(destination)
	if err != nil {
		c.complete(out, domain.ErrorResult(err, destination), false)
		return out
	}

	data, err := body()
	if err != nil {
		c.complete(out, domain.ErrorResult(err, dest.String()), false)
		return out
	}

	c.mu.Lock()
	if c.state == domain.StateSending {
		c.mu.Unlock()
		out <- domain.ErrorResult(domain.ErrSendInProgress, dest.String())
		close(out)
		return out
	}
	c.state = domain.StateSending
	c.mu.Unlock()

	c.logger.Info("sending beacon",
		log.String("destination", dest.Redacted()),
		log.Int("bytes", len(data)),
	)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		start := time.Now()
		status, err := c.sender.Post(ctx, dest, data)

		var res domain.Result
		if err != nil {
			res = domain.ErrorResult(err, dest.String())
			c.logger.Error("beacon failed", log.Err(err), log.Duration("elapsed", time.Since(start)))
		} else {
			res = domain.StatusResult(status, dest.String())
			c.logger.Info("beacon delivered", log.Int("status", status), log.Duration("elapsed", time.Since(start)))
		}
		c.complete(out, res, true)
	}()

	return out
}

// complete records res as the last result, clears the sending flag when
// the attempt held it, and fans the result out. A validation failure that
// lands while another send holds the flag goes only to its caller, so the
// in-flight send keeps ownership of the last result.
func (c *Controller) complete(out chan<- domain.Result, res domain.Result, wasSending bool) {
	c.mu.Lock()
	switch {
	case wasSending:
		c.state = domain.StateIdle
		c.record(res)
	case c.state != domain.StateSending:
		c.record(res)
	}
	c.mu.Unlock()

	if res.Failed() && res.Kind != domain.ResultTransportError {
		c.logger.Warn("beacon rejected", log.String("result", res.String()))
	}

	out <- res
	close(out)
}

// record stores res and offers it to every subscriber. c.mu must be held.
func (c *Controller) record(res domain.Result) {
	c.last = res
	for _, sub := range c.subscribers {
		select {
		case sub <- res:
		default:
		}
	}
}
