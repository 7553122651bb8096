package cmd

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/hyphengolang/prelude/testing/is"
	"github.com/rs/zerolog"

	"github.com/rapidmidiex/pianoweb/internal/cmd/config"
	"github.com/rapidmidiex/pianoweb/internal/http/websocket"
)

func newTestServer(t *testing.T, cfg *config.Config) (*httptest.Server, *websocket.Hub) {
	cfg.Notes.Debounce = 0
	hub := newHub(cfg, zerolog.Nop())
	srv := httptest.NewServer(Handler(cfg, zerolog.Nop(), hub))

	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	return srv, hub
}

func TestHandler(t *testing.T) {
	is := is.New(t)

	srv, _ := newTestServer(t, config.Default())

	res, err := srv.Client().Get(srv.URL + "/")
	is.NoErr(err)
	res.Body.Close()
	is.Equal(res.StatusCode, http.StatusOK)

	res, err = srv.Client().Get(srv.URL + "/training")
	is.NoErr(err)
	res.Body.Close()
	is.Equal(res.StatusCode, http.StatusNotFound) // minigames is the default demo
}

func TestCORS(t *testing.T) {
	is := is.New(t)

	srv, _ := newTestServer(t, config.Default())

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/melodies", nil)
	is.NoErr(err)
	req.Header.Set("Origin", "http://localhost:5173")

	res, err := srv.Client().Do(req)
	is.NoErr(err)
	res.Body.Close()
	is.Equal(res.Header.Get("Access-Control-Allow-Origin"), "http://localhost:5173")

	req.Header.Set("Origin", "http://evil.example")
	res, err = srv.Client().Do(req)
	is.NoErr(err)
	res.Body.Close()
	is.Equal(res.Header.Get("Access-Control-Allow-Origin"), "")
}

func TestNotesThroughStack(t *testing.T) {
	is := is.New(t)

	srv, hub := newTestServer(t, config.Default())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	device, _, err := gws.DefaultDialer.Dial(url, nil)
	is.NoErr(err)
	defer device.Close()

	browser, _, err := gws.DefaultDialer.Dial(url, nil)
	is.NoErr(err)
	defer browser.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	is.NoErr(device.WriteMessage(gws.TextMessage, []byte("b4_on")))

	browser.SetReadDeadline(time.Now().Add(2 * time.Second))
	typ, msg, err := browser.ReadMessage()
	is.NoErr(err)
	is.Equal(typ, gws.TextMessage)
	is.Equal(string(msg), "b4_on")
}

func TestRelayOrigins(t *testing.T) {
	is := is.New(t)

	srv, _ := newTestServer(t, config.Default())
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	ws, res, err := gws.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	is.True(err != nil)
	is.True(ws == nil)
	is.Equal(res.StatusCode, http.StatusForbidden)

	ws, _, err = gws.DefaultDialer.Dial(url, http.Header{"Origin": {"http://localhost:5173"}})
	is.NoErr(err) // allowed by the default origins
	ws.Close()

	ws, _, err = gws.DefaultDialer.Dial(url, nil)
	is.NoErr(err) // devices send no Origin
	ws.Close()
}
