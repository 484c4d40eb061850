package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var errNotConnected = errors.New("client not connected - call Connect() first")

// Client is the entry point of the SDK. Create it with [New], call
// [Client.Connect] once, then use [Client.Contacts] and [Client.Messages].
// A Client is safe for concurrent use.
type Client struct {
	baseURL  string
	options  Options
	mu       sync.Mutex
	exec     atomic.Pointer[requestExecutor]
	contacts ContactsAPI
	messages MessagesAPI
}

// New creates a client for the API at baseURL. Options are applied on top of
// [DefaultOptions]; invalid values are ignored and reported by
// [Client.Connect].
func New(baseURL string, opts ...Option) *Client {
	return NewWithOptions(baseURL, DefaultOptions().With(opts...))
}

// NewWithOptions creates a client from a prepared [Options] value.
func NewWithOptions(baseURL string, options Options) *Client {
	c := &Client{
		baseURL: baseURL,
		options: options.With(),
	}

	contacts := &contactsService{client: c}
	messages := &messagesService{client: c}
	c.contacts, c.messages = contacts, messages

	if sink := c.options.metricSink; sink != nil {
		c.contacts = &instrumentedContacts{next: contacts, sink: sink}
		c.messages = &instrumentedMessages{next: messages, sink: sink}
	}

	contacts.items = c.contacts
	messages.items = c.messages

	return c
}

// Connect validates the options and prepares the shared HTTP transport. It
// does not contact the API. Calling Connect again after it succeeded is a
// no-op.
func (c *Client) Connect(_ context.Context) error {
	if c == nil {
		return errors.New("devexp client is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.exec.Load() != nil {
		return nil
	}

	if c.baseURL == "" {
		return errors.New("base URL must be set")
	}

	if err := c.options.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	c.exec.Store(newRequestExecutor(c.baseURL, c.options))

	c.options.requestLogger.Debug("devexp client connected", "base_url", c.baseURL,
		"metrics", c.options.MetricsEnabled(), "bulk", c.options.bulkEnabled)

	return nil
}

// Close releases idle connections held by the transport. Calls made after
// Close fail until Connect is called again.
func (c *Client) Close() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e := c.exec.Swap(nil); e != nil {
		e.close()
	}
}

func (c *Client) Contacts() ContactsAPI {
	return c.contacts
}

func (c *Client) Messages() MessagesAPI {
	return c.messages
}

// Options returns the options the client was created with.
func (c *Client) Options() Options {
	return c.options.With()
}

func (c *Client) executor() (*requestExecutor, error) {
	if c == nil {
		return nil, errors.New("devexp client is nil")
	}

	if e := c.exec.Load(); e != nil {
		return e, nil
	}

	return nil, errNotConnected
}
