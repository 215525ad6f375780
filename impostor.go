// Impostor
//
// Everyone in a room is dealt the same secret football word except one
// player, the impostor, who is told only that they are the impostor.
// Players take turns giving one short clue per round; after the last round
// everyone votes on who they think the impostor is. The group wins only if
// the impostor gets the most votes outright. Ties go to the impostor.
//
// Routes, all under --prefix:
//   - POST /api/rooms                 open a room, joining as host if a name is given
//   - POST /api/rooms/:code/join      join a room's lobby
//   - POST /api/rooms/:code/actions   any action, as a room.Request
//   - GET  /api/rooms/:code/state     the caller's snapshot
//   - GET  /api/rooms/:code/results   tally and winner, once voting has begun
//   - GET  /api/rooms/:code/ws        event stream; requests may also be sent here
//   - GET  /api/rooms/:code/qr        PNG QR code that opens the room
//
// Players are whoever they say they are: the player query parameter, the
// X-Player-ID header or the impostor_id cookie, in that order.

package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/Seednode/impostor/game"
	"github.com/Seednode/impostor/room"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const (
	playerCookieName = "impostor_id"
	maxBodyBytes     = 64 << 10
	writeWait        = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// joinRequest is the body of the create and join endpoints.
type joinRequest struct {
	Name string `json:"name"`
}

// joinResponse tells a client which id to use from now on.
type joinResponse struct {
	Code     string        `json:"code"`
	PlayerID string        `json:"playerId"`
	HostID   string        `json:"hostId"`
	Snapshot game.Snapshot `json:"snapshot"`
}

func playerID(r *http.Request) string {
	if id := r.URL.Query().Get("player"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Player-ID"); id != "" {
		return id
	}
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if id := playerID(r); id != "" {
		return id
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, game.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, game.ErrInvalidPhaseTransition),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrStaleVersion),
		errors.Is(err, game.ErrDuplicateName),
		errors.Is(err, game.ErrRoomFull),
		errors.Is(err, game.ErrInsufficientPlayers):
		return http.StatusConflict
	case errors.Is(err, game.ErrSelfVote),
		errors.Is(err, game.ErrUnknownPlayer),
		errors.Is(err, game.ErrEmptyClue),
		errors.Is(err, game.ErrEmptyName),
		errors.Is(err, game.ErrInvalidConfig),
		errors.Is(err, game.ErrUnknownAction):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(cfg *Config, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}

func writeError(cfg *Config, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logf(cfg, "SERVE: Internal error: %v", err)
	}

	writeJSON(cfg, w, status, room.ErrorPayload{
		Code:    game.Code(err),
		Message: err.Error(),
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(game.ErrInvalidConfig, err)
	}
	return nil
}

func serveCreateRoom(cfg *Config, rooms *room.Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var body joinRequest
		if r.ContentLength != 0 {
			if err := decodeBody(w, r, &body); err != nil {
				writeError(cfg, w, err)
				return
			}
		}

		rm, err := rooms.Create()
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		logf(cfg, "GAMES: %s opened room %s", realIP(r), rm.Code())

		resp := joinResponse{Code: rm.Code()}

		if body.Name != "" {
			resp.PlayerID = getOrSetPlayerID(w, r)
			if resp.Snapshot, err = rm.Join(resp.PlayerID, body.Name); err != nil {
				writeError(cfg, w, err)
				return
			}
		} else {
			resp.Snapshot, _ = rm.FullState("")
		}
		resp.HostID = rm.HostID()

		writeJSON(cfg, w, http.StatusCreated, resp)
	}
}

func serveJoinRoom(cfg *Config, rooms *room.Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rm, err := rooms.Get(ps.ByName("code"))
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		var body joinRequest
		if err := decodeBody(w, r, &body); err != nil {
			writeError(cfg, w, err)
			return
		}

		id := getOrSetPlayerID(w, r)

		snap, err := rm.Join(id, body.Name)
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		writeJSON(cfg, w, http.StatusOK, joinResponse{
			Code:     rm.Code(),
			PlayerID: id,
			HostID:   rm.HostID(),
			Snapshot: snap,
		})
	}
}

func serveAction(cfg *Config, rooms *room.Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rm, err := rooms.Get(ps.ByName("code"))
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		var req room.Request
		if err := decodeBody(w, r, &req); err != nil {
			writeError(cfg, w, err)
			return
		}
		if req.PlayerID == "" {
			req.PlayerID = playerID(r)
		}

		snap, err := rm.Apply(req)
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		writeJSON(cfg, w, http.StatusOK, snap)
	}
}

func serveState(cfg *Config, rooms *room.Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rm, err := rooms.Get(ps.ByName("code"))
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		snap, err := rm.FullState(playerID(r))
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		writeJSON(cfg, w, http.StatusOK, snap)
	}
}

func serveResults(cfg *Config, rooms *room.Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rm, err := rooms.Get(ps.ByName("code"))
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		res, err := rm.Results()
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		writeJSON(cfg, w, http.StatusOK, res)
	}
}

// wsClient is one websocket connection. Only writePump writes to conn.
type wsClient struct {
	conn   *websocket.Conn
	sub    *room.Subscriber
	direct chan room.Event
	done   chan struct{}
}

func serveWS(cfg *Config, rooms *room.Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rm, err := rooms.Get(ps.ByName("code"))
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		id := playerID(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "SERVE: Upgrade for %s failed: %v", realIP(r), err)
			return
		}

		c := &wsClient{
			conn:   conn,
			sub:    rm.Subscribe(id),
			direct: make(chan room.Event, 4),
			done:   make(chan struct{}),
		}

		logf(cfg, "SERVE: %s subscribed to %s", realIP(r), rm.Code())

		go c.writePump()
		c.readPump(rm, id)
	}
}

func (c *wsClient) readPump(rm *room.Room, id string) {
	defer func() {
		close(c.done)
		rm.Unsubscribe(c.sub)
		_ = c.conn.Close()
	}()

	// The server's ReadTimeout still applies to the hijacked connection.
	_ = c.conn.SetReadDeadline(time.Time{})

	for {
		var req room.Request
		if err := c.conn.ReadJSON(&req); err != nil {
			return
		}

		// A socket only ever acts as the player it was opened for.
		req.PlayerID = id

		if _, err := rm.Apply(req); err != nil {
			select {
			case c.direct <- room.ErrorEvent(rm.Code(), err):
			default:
			}
		}
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	events := c.sub.Events()

	for {
		var ev room.Event

		select {
		case <-c.done:
			return
		case ev = <-c.direct:
		case e, ok := <-events:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "dropped"),
					time.Now().Add(writeWait))
				return
			}
			ev = e
		}

		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

// serveQR renders a QR code pointing at the home page with the room
// preselected, for players to scan from the host's screen.
func serveQR(cfg *Config, rooms *room.Manager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		rm, err := rooms.Get(ps.ByName("code"))
		if err != nil {
			writeError(cfg, w, err)
			return
		}

		scheme := cfg.scheme()
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		target := url.URL{
			Scheme:   scheme,
			Host:     r.Host,
			Path:     cfg.prefix + "/",
			RawQuery: url.Values{"room": {rm.Code()}}.Encode(),
		}

		const qrSize = 320
		png, err := qrcode.Encode(target.String(), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)
		_, _ = w.Write(png)
	}
}

func registerImpostorGame(cfg *Config, rooms *room.Manager, mux *httprouter.Router) {
	base := cfg.prefix + "/api/rooms"

	mux.POST(base, serveCreateRoom(cfg, rooms))
	mux.POST(base+"/:code/join", serveJoinRoom(cfg, rooms))
	mux.POST(base+"/:code/actions", serveAction(cfg, rooms))
	mux.GET(base+"/:code/state", serveState(cfg, rooms))
	mux.GET(base+"/:code/results", serveResults(cfg, rooms))
	mux.GET(base+"/:code/ws", serveWS(cfg, rooms))
	mux.GET(base+"/:code/qr", serveQR(cfg, rooms))
}
