// Package websocket relays note events between keyboards and browsers.
// Every accepted frame is sent to all other connections, in the same way
// the touch keyboard broadcasts to every client connected to it.
package websocket

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	h "github.com/hyphengolang/prelude/http"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer.
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer.
	maxMessageSize = 64

	sendBuffer = 16
)

// DefaultDebounce matches the touch sensor debounce of the keyboard firmware.
const DefaultDebounce = 100 * time.Millisecond

var (
	ErrCapacity = errors.New("websocket: maximum number of connections reached")
	ErrClosed   = errors.New("websocket: hub closed")
)

type Option func(*Hub)

func WithLogger(l zerolog.Logger) Option {
	return func(hub *Hub) { hub.log = l }
}

// WithCapacity limits concurrent connections, zero meaning no limit.
func WithCapacity(n uint) Option {
	return func(hub *Hub) { hub.Capacity = n }
}

func WithDebounce(d time.Duration) Option {
	return func(hub *Hub) { hub.Debounce = d }
}

// WithOrigins lists the browser origins allowed to connect besides the
// site itself. A pattern may hold one '*', e.g. "http://localhost:*".
// Requests without an Origin header (keyboards, terminal clients) are
// always accepted.
func WithOrigins(origins ...string) Option {
	return func(hub *Hub) { hub.origins = origins }
}

type Hub struct {
	r, d chan *conn
	bc   chan message
	cs   map[*conn]struct{}
	u    *websocket.Upgrader
	log  zerolog.Logger

	origins []string

	size int64 // reserved slots, checked against Capacity
	live int64
	done chan struct{}
	once sync.Once

	Capacity uint
	Debounce time.Duration
}

func NewHub(opts ...Option) *Hub {
	hub := &Hub{
		r:    make(chan *conn),
		d:    make(chan *conn),
		bc:   make(chan message),
		cs:   make(map[*conn]struct{}),
		done: make(chan struct{}),
		u: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log:      zerolog.Nop(),
		Debounce: DefaultDebounce,
	}

	for _, o := range opts {
		o(hub)
	}
	hub.u.CheckOrigin = hub.checkOrigin

	go hub.listen()
	return hub
}

// Len is the number of registered connections.
func (hub *Hub) Len() int { return int(atomic.LoadInt64(&hub.live)) }

// Close disconnects every client. Further upgrades are refused.
func (hub *Hub) Close() error {
	hub.once.Do(func() { close(hub.done) })
	return nil
}

func (hub *Hub) listen() {
	for {
		select {
		case c := <-hub.r:
			hub.cs[c] = struct{}{}
			atomic.StoreInt64(&hub.live, int64(len(hub.cs)))
		case c := <-hub.d:
			hub.drop(c)
		case m := <-hub.bc:
			for c := range hub.cs {
				if c == m.from {
					continue
				}

				select {
				case c.send <- m.data:
				default:
					hub.log.Warn().Str("conn", c.id).Msg("send buffer full, dropping connection")
					hub.drop(c)
				}
			}
		case <-hub.done:
			for c := range hub.cs {
				hub.drop(c)
			}
			return
		}
	}
}

func (hub *Hub) drop(c *conn) {
	if _, ok := hub.cs[c]; ok {
		delete(hub.cs, c)
		close(c.send)
		atomic.StoreInt64(&hub.live, int64(len(hub.cs)))
	}
}

func (hub *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-hub.done:
		h.Respond(w, r, ErrClosed.Error(), http.StatusServiceUnavailable)
		return
	default:
	}

	if n := atomic.AddInt64(&hub.size, 1); hub.Capacity > 0 && n > int64(hub.Capacity) {
		atomic.AddInt64(&hub.size, -1)
		h.Respond(w, r, ErrCapacity.Error(), http.StatusServiceUnavailable)
		return
	}

	rwc, err := hub.u.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		atomic.AddInt64(&hub.size, -1)
		hub.log.Debug().Err(err).Msg("upgrade failed")
		return
	}

	c := newConn(hub, rwc)

	select {
	case hub.r <- c:
	case <-hub.done:
		atomic.AddInt64(&hub.size, -1)
		rwc.Close()
		return
	}

	hub.log.Info().Str("conn", c.id).Str("remote", r.RemoteAddr).Msg("client connected")

	go c.writePump()
	go c.readPump()
}

func (hub *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}

	for _, pattern := range hub.origins {
		if matchOrigin(pattern, origin) {
			return true
		}
	}

	hub.log.Warn().Str("origin", origin).Str("remote", r.RemoteAddr).Msg("origin not allowed")
	return false
}

func matchOrigin(pattern, origin string) bool {
	pattern, origin = strings.ToLower(pattern), strings.ToLower(origin)
	if pattern == "*" {
		return true
	}

	prefix, suffix, wild := strings.Cut(pattern, "*")
	if !wild {
		return pattern == origin
	}
	return len(origin) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(origin, prefix) &&
		strings.HasSuffix(origin, suffix)
}

func (hub *Hub) unregister(c *conn) {
	select {
	case hub.d <- c:
	case <-hub.done:
	}
	atomic.AddInt64(&hub.size, -1)
}

func (hub *Hub) broadcast(m message) bool {
	select {
	case hub.bc <- m:
		return true
	case <-hub.done:
		return false
	}
}
