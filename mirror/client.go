/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Seednode/impostor/game"
	"github.com/Seednode/impostor/room"
	"github.com/gorilla/websocket"
)

// Client is the transport a Mirror talks to the authoritative server over.
type Client interface {
	FetchState(ctx context.Context, code, playerID string) (game.Snapshot, error)
	Send(ctx context.Context, code string, req room.Request) (game.Snapshot, error)
	Subscribe(ctx context.Context, code, playerID string) (Stream, error)
}

// Stream yields pushed events until it fails or is closed.
type Stream interface {
	Recv() (room.Event, error)
	Close() error
}

// RemoteError is a rejection reported by the server. It unwraps to the
// matching game error, so errors.Is works across the wire.
type RemoteError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("server rejected request (%d %s): %s", e.Status, e.Code, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return game.FromCode(e.Code)
}

// HTTPClient speaks the JSON API for requests and a websocket for events.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
	Dialer  *websocket.Dialer
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

func (c *HTTPClient) roomURL(code, suffix string) string {
	return c.BaseURL + "/api/rooms/" + url.PathEscape(code) + suffix
}

func (c *HTTPClient) FetchState(ctx context.Context, code, playerID string) (game.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.roomURL(code, "/state?player="+url.QueryEscape(playerID)), nil)
	if err != nil {
		return game.Snapshot{}, err
	}

	return c.do(req)
}

func (c *HTTPClient) Send(ctx context.Context, code string, r room.Request) (game.Snapshot, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return game.Snapshot{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.roomURL(code, "/actions"), bytes.NewReader(body))
	if err != nil {
		return game.Snapshot{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Player-ID", r.PlayerID)

	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (game.Snapshot, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return game.Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		rerr := &RemoteError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(rerr); err != nil {
			rerr.Code = "internal"
			rerr.Message = resp.Status
		}
		return game.Snapshot{}, rerr
	}

	var snap game.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}

func (c *HTTPClient) Subscribe(ctx context.Context, code, playerID string) (Stream, error) {
	u, err := url.Parse(c.roomURL(code, "/ws"))
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.RawQuery = url.Values{"player": {playerID}}.Encode()

	conn, resp, err := c.Dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", game.ErrRoomNotFound, code)
		}
		return nil, err
	}

	return &wsStream{conn: conn}, nil
}

type wsStream struct {
	conn *websocket.Conn
}

func (s *wsStream) Recv() (room.Event, error) {
	var ev room.Event
	err := s.conn.ReadJSON(&ev)
	return ev, err
}

func (s *wsStream) Close() error {
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return s.conn.Close()
}
