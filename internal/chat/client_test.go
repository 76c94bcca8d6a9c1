package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaint-service/internal/dialogue"
)

func TestQueue_UnblocksAfterWriterExit(t *testing.T) {
	c := &Client{
		send: make(chan dialogue.Reply, 1),
		done: make(chan struct{}),
	}
	c.send <- dialogue.Reply{} // fill the buffer so further sends would block
	close(c.done)              // write pump is gone

	finished := make(chan bool, 1)
	go func() {
		finished <- c.queue([]dialogue.Reply{
			{Kind: dialogue.ReplyMessage, Text: "one"},
			{Kind: dialogue.ReplyMessage, Text: "two"},
		})
	}()

	select {
	case terminated := <-finished:
		assert.True(t, terminated, "queue must report the connection as finished")
	case <-time.After(time.Second):
		t.Fatal("queue blocked on a full buffer after the write pump exited")
	}
}

func TestQueue_ReportsLogout(t *testing.T) {
	c := &Client{
		send: make(chan dialogue.Reply, 4),
		done: make(chan struct{}),
	}

	terminated := c.queue([]dialogue.Reply{
		{Kind: dialogue.ReplyMessage, Text: "Session expired. Please logout and login again."},
		{Kind: dialogue.ReplyLogout},
	})

	assert.True(t, terminated)
	require.Len(t, c.send, 2)
}
