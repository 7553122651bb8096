package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/hyphengolang/prelude/types/suid"
	"github.com/rapidmidiex/pianoweb/internal/note"
)

type conn struct {
	id  string
	hub *Hub
	rwc *websocket.Conn

	send chan []byte
	deb  *note.Debouncer
}

func newConn(hub *Hub, rwc *websocket.Conn) *conn {
	return &conn{
		id:   suid.NewUUID().ShortUUID().String(),
		hub:  hub,
		rwc:  rwc,
		send: make(chan []byte, sendBuffer),
		deb:  note.NewDebouncer(hub.Debounce),
	}
}

func (c *conn) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.rwc.Close()
		c.hub.log.Info().Str("conn", c.id).Msg("client disconnected")
	}()

	c.rwc.SetReadLimit(maxMessageSize)
	c.rwc.SetReadDeadline(time.Now().Add(pongWait))
	c.rwc.SetPongHandler(func(string) error {
		return c.rwc.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		typ, p, err := c.rwc.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warn().Str("conn", c.id).Err(err).Msg("read failed")
			}
			return
		}

		if typ != websocket.TextMessage {
			continue
		}

		e, err := note.ParseEvent(string(p))
		if err != nil {
			c.hub.log.Debug().Str("conn", c.id).Bytes("frame", p).Err(err).Msg("dropping frame")
			continue
		}

		if !c.deb.Accept(e, time.Now()) {
			continue
		}

		c.hub.log.Debug().Str("conn", c.id).Stringer("event", e).Msg("relay")
		if !c.hub.broadcast(message{from: c, data: []byte(e.String())}) {
			return
		}
	}
}

func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.rwc.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.rwc.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.rwc.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.rwc.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.hub.log.Warn().Str("conn", c.id).Err(err).Msg("write failed")
				return
			}
		case <-ticker.C:
			c.rwc.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.rwc.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
