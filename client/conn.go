// Package client is the renderer side of a tile session: the websocket
// connection to the server and the view state built from its messages.
package client

import (
	"context"
	"encoding/gob"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/madwhistler/artsite/model"
)

// Conn moves gob messages over one websocket. Received messages arrive on
// Messages; the channel is closed when the connection ends.
type Conn struct {
	ws *websocket.Conn

	Messages chan model.ServerMessage
	outgoing chan model.ClientMessage
	done     chan struct{}

	closeOnce sync.Once
	wg        sync.WaitGroup

	mu  sync.Mutex
	err error
}

// Dial connects to a tile server, e.g. ws://localhost:8080/play.
func Dial(ctx context.Context, url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	c := &Conn{
		ws:       ws,
		Messages: make(chan model.ServerMessage, 16),
		outgoing: make(chan model.ClientMessage, 16),
		done:     make(chan struct{}),
	}
	c.wg.Add(2)
	go c.loopRead()
	go c.loopWrite()
	return c, nil
}

// Send queues a message. It returns false once the connection is closed.
func (c *Conn) Send(cm model.ClientMessage) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.outgoing <- cm:
		return true
	case <-c.done:
		return false
	}
}

// Err is the error that ended the connection, if any.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close says goodbye to the server and waits for both loops.
func (c *Conn) Close() error {
	c.shutdown(nil)
	c.wg.Wait()
	return c.Err()
}

func (c *Conn) shutdown(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		c.ws.Close()
	})
}

func (c *Conn) loopRead() {
	defer c.wg.Done()
	defer close(c.Messages)
	for {
		_, r, err := c.ws.NextReader()
		if err != nil {
			select {
			case <-c.done:
			default:
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					c.shutdown(nil)
				} else {
					log.WithError(err).Warn("client read failed")
					c.shutdown(err)
				}
			}
			return
		}
		sm := model.ServerMessage{}
		if err := gob.NewDecoder(r).Decode(&sm); err != nil {
			log.WithError(err).Warn("client cant decode")
			c.shutdown(err)
			return
		}
		select {
		case c.Messages <- sm:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) loopWrite() {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case cm := <-c.outgoing:
			w, err := c.ws.NextWriter(websocket.BinaryMessage)
			if err != nil {
				c.shutdown(err)
				return
			}
			if err := gob.NewEncoder(w).Encode(cm); err != nil {
				c.shutdown(err)
				return
			}
			if err := w.Close(); err != nil {
				c.shutdown(err)
				return
			}
		}
	}
}
