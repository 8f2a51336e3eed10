// servs/s_huff/huff_client/client.go
package huff_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rskv-p/huff/servs/s_huff/huff_api"
)

// ErrRemote wraps an error reported by the encode service.
var ErrRemote = errors.New("remote error")

type Client interface {
	Encode(ctx context.Context, req huff_api.EncodeRequest) (*huff_api.EncodeResponse, error)
	EncodeText(ctx context.Context, text string) (*huff_api.EncodeResponse, error)
}

type client struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

// New returns a Client sending requests on subject. An empty subject uses
// the default encode subject.
func New(nc *nats.Conn, subject string, timeout time.Duration) Client {
	if subject == "" {
		subject = huff_api.SubjectEncode
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &client{
		nc:      nc,
		subject: subject,
		timeout: timeout,
	}
}

func (c *client) Encode(ctx context.Context, req huff_api.EncodeRequest) (*huff_api.EncodeResponse, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg, err := c.nc.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		return nil, err
	}

	var out huff_api.EncodeResponse
	if err := json.Unmarshal(msg.Data, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return &out, fmt.Errorf("%w: %s", ErrRemote, out.Error)
	}
	return &out, nil
}

func (c *client) EncodeText(ctx context.Context, text string) (*huff_api.EncodeResponse, error) {
	return c.Encode(ctx, huff_api.EncodeRequest{Text: text})
}
