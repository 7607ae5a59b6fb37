package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// Watch opens a websocket to path and calls fn with every text message
// until ctx is done or the server closes the connection. Both of those end
// with a nil error.
func (c *Client) Watch(ctx context.Context, path string, fn func([]byte)) error {
	target, err := c.websocketURL(path)
	if err != nil {
		return err
	}

	header := c.headers.Clone()
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, target, header)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("watch %s: HTTP %d: %w", path, resp.StatusCode, err)
		}
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline())
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if typ == websocket.TextMessage {
			fn(data)
		}
	}
}

func (c *Client) websocketURL(path string) (string, error) {
	u, err := url.Parse(c.base + path)
	if err != nil {
		return "", fmt.Errorf("watch %s: %w", path, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", errors.New("watch " + path + ": base URL must be absolute http(s)")
	}
	return u.String(), nil
}

func deadline() time.Time { return time.Now().Add(time.Second) }
