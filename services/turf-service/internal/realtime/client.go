package realtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/you/turf-booking/services/turf-service/internal/domain"
)

const sendBuffer = 16

// Client is one websocket connection. Frames are queued on send and written
// by the connection's write loop.
type Client struct {
	id   string
	who  domain.Identity
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
}

func newClient(who domain.Identity) *Client {
	return &Client{
		id:   uuid.NewString(),
		who:  who,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

func (c *Client) enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}
