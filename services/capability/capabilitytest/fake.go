// Package capabilitytest provides a scripted capability.Client for tests.
package capabilitytest

import (
	"context"
	"fmt"
	"sync"

	"lessontutor/models"
	"lessontutor/services/capability"
)

type reply struct {
	raw string
	err error
}

// Call records one request made to the fake.
type Call struct {
	Schema   string
	Messages []models.Message
}

// Client replays queued replies. Structured replies are raw JSON decoded with
// capability.DecodeStructured, so invalid scripts fail like a real provider.
type Client struct {
	mu         sync.Mutex
	text       []reply
	structured map[string][]reply
	calls      []Call
}

func New() *Client {
	return &Client{structured: map[string][]reply{}}
}

func (c *Client) QueueText(text string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = append(c.text, reply{raw: text})
	return c
}

func (c *Client) QueueTextError(err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = append(c.text, reply{err: err})
	return c
}

func (c *Client) QueueStructured(schema, raw string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.structured[schema] = append(c.structured[schema], reply{raw: raw})
	return c
}

func (c *Client) QueueStructuredError(schema string, err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.structured[schema] = append(c.structured[schema], reply{err: err})
	return c
}

func (c *Client) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

func (c *Client) Generate(ctx context.Context, messages []models.Message, opts ...capability.Option) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, Call{Messages: append([]models.Message(nil), messages...)})
	if err := ctx.Err(); err != nil {
		return "", &capability.Error{Provider: "fake", Op: "generate", Err: err}
	}
	if len(c.text) == 0 {
		return "", &capability.Error{Provider: "fake", Op: "generate", Err: fmt.Errorf("no text reply queued")}
	}

	r := c.text[0]
	c.text = c.text[1:]
	if r.err != nil {
		return "", &capability.Error{Provider: "fake", Op: "generate", Err: r.err}
	}
	return r.raw, nil
}

func (c *Client) GenerateStructured(ctx context.Context, messages []models.Message, schema capability.Schema, out any, opts ...capability.Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, Call{Schema: schema.Name, Messages: append([]models.Message(nil), messages...)})
	if err := ctx.Err(); err != nil {
		return &capability.Error{Provider: "fake", Op: "generate_structured", Err: err}
	}

	queue := c.structured[schema.Name]
	if len(queue) == 0 {
		return &capability.Error{Provider: "fake", Op: "generate_structured", Err: fmt.Errorf("no %s reply queued", schema.Name)}
	}

	r := queue[0]
	c.structured[schema.Name] = queue[1:]
	if r.err != nil {
		return &capability.Error{Provider: "fake", Op: "generate_structured", Err: r.err}
	}

	o := capability.Options{}
	for _, opt := range opts {
		opt(&o)
	}

	if err := capability.DecodeStructured(r.raw, schema, out, o.Strict); err != nil {
		return &capability.Error{Provider: "fake", Op: "generate_structured", Err: err}
	}
	return nil
}
