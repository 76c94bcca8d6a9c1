// Package chat hosts dialogue sessions over websocket connections, one
// session per connection.
package chat

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"complaint-service/internal/dialogue"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// Cosmetic pacing only: replies are still delivered in production order.
	replyDelay    = 500 * time.Millisecond
	greetingDelay = 3 * time.Second
)

// Frame is one inbound client message: either a quick-option selection or a
// free-text utterance.
type Frame struct {
	Type   string `json:"type"` // "option" or "message"
	Option string `json:"option,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Client owns one websocket connection and its dialogue session. Frames are
// processed strictly one at a time; the read pump does not pick up the next
// frame until the session has finished with the previous one.
type Client struct {
	conn    *websocket.Conn
	session *dialogue.Session
	send    chan dialogue.Reply
	done    chan struct{} // closed when the write pump exits
	log     zerolog.Logger
}

func NewClient(conn *websocket.Conn, session *dialogue.Session, log zerolog.Logger) *Client {
	return &Client{
		conn:    conn,
		session: session,
		send:    make(chan dialogue.Reply, 64),
		done:    make(chan struct{}),
		log:     log,
	}
}

// Run drives the connection until it closes. The write pump gets its own
// goroutine; reading happens on the caller's.
func (c *Client) Run(ctx context.Context) {
	go c.writePump()
	c.queue(c.session.Greeting())
	c.readPump(ctx)
}

func (c *Client) readPump(ctx context.Context) {
	defer func() {
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame Frame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("websocket read failed")
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var replies []dialogue.Reply
		switch frame.Type {
		case "option":
			replies = c.session.HandleOption(ctx, frame.Option)
		case "message":
			replies = c.session.HandleMessage(ctx, frame.Text)
		default:
			continue
		}

		if c.queue(replies) {
			// Forced logout: stop reading, let the write pump flush and close.
			return
		}
	}
}

// queue hands replies to the write pump and reports whether the connection
// is finished, either because a reply terminates it or because the write
// pump is already gone. Sends race against done so the read pump cannot
// block on a full buffer after a write failure.
func (c *Client) queue(replies []dialogue.Reply) bool {
	logout := false
	for _, reply := range replies {
		select {
		case c.send <- reply:
		case <-c.done:
			return true
		}
		if reply.Kind == dialogue.ReplyLogout {
			logout = true
		}
	}
	return logout
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case reply, ok := <-c.send:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			switch reply.Kind {
			case dialogue.ReplyGreeting:
				time.Sleep(greetingDelay)
			default:
				time.Sleep(replyDelay)
			}

			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(reply); err != nil {
				return
			}

			if reply.Kind == dialogue.ReplyLogout {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session expired"),
				)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
