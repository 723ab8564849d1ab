package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/coreman2200/beatlights/internal/beatmap"
	diag "github.com/coreman2200/beatlights/internal/diagnostics"
	"github.com/coreman2200/beatlights/internal/lightshow"
	"github.com/coreman2200/beatlights/internal/render"
	"github.com/coreman2200/beatlights/internal/telemetry"
)

var ErrNoDocument = errors.New("no document loaded")

// State serves one loaded difficulty: it recomputes offsets on load,
// broadcasts frames to /frames subscribers and answers /control requests.
// It is the engine's Driver.
type State struct {
	Engine       *render.Engine
	Log          zerolog.Logger
	WriteTimeout time.Duration

	// renderMu serializes engine runs.
	renderMu sync.Mutex

	mu        sync.RWMutex
	revision  *lightshow.Revision
	doc       *beatmap.Difficulty
	source    string
	last      render.Frame
	startTime time.Time

	// connMu guards the client sets and serializes writes to them.
	connMu      sync.Mutex
	clients     map[*websocket.Conn]string
	diagClients map[*websocket.Conn]string

	upgrader websocket.Upgrader
}

// NewState wires s as eng's driver.
func NewState(eng *render.Engine, log zerolog.Logger) *State {
	s := &State{
		Engine:       eng,
		Log:          log,
		WriteTimeout: 200 * time.Millisecond,
		startTime:    time.Now(),
		clients:      map[*websocket.Conn]string{},
		diagClients:  map[*websocket.Conn]string{},
		upgrader:     websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
	eng.Drv = s
	return s
}

// SetRevision forces a filter revision on every document loaded afterwards.
func (s *State) SetRevision(r lightshow.Revision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revision = &r
}

func (s *State) decodeOptions() []beatmap.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.revision == nil {
		return nil
	}
	return []beatmap.Option{beatmap.WithRevision(*s.revision)}
}

// LoadFile decodes a difficulty from disk and makes it current.
func (s *State) LoadFile(ctx context.Context, path string) (render.Frame, error) {
	d, err := beatmap.Load(path, s.decodeOptions()...)
	if err != nil {
		return render.Frame{}, err
	}
	return s.Load(ctx, d, path)
}

// LoadJSON decodes an inline difficulty document and makes it current.
func (s *State) LoadJSON(ctx context.Context, raw []byte) (render.Frame, error) {
	d, err := beatmap.Decode(bytes.NewReader(raw), s.decodeOptions()...)
	if err != nil {
		return render.Frame{}, err
	}
	return s.Load(ctx, d, "inline")
}

// Load makes d current, computes its frame and broadcasts it. Diagnostics
// found in d go to /diag subscribers.
func (s *State) Load(ctx context.Context, d *beatmap.Difficulty, source string) (render.Frame, error) {
	f, err := s.publish(ctx, d, source)
	if err != nil {
		return render.Frame{}, err
	}

	telemetry.DocumentsLoaded.WithLabelValues(d.Revision.String()).Inc()
	s.Log.Info().
		Str("source", source).
		Str("version", d.Version).
		Str("revision", d.Revision.String()).
		Int("lights", len(f.Lights)).
		Float32("end_beat", f.EndBeat).
		Msg("document loaded")

	for _, dg := range d.Check() {
		s.pushDiag(dg)
	}
	return f, nil
}

// publish renders d and stores it as current. renderMu stays held until the
// state is stored, so the current document always matches the last frame
// broadcast.
func (s *State) publish(ctx context.Context, d *beatmap.Difficulty, source string) (render.Frame, error) {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	start := time.Now()
	f, err := s.Engine.RenderOnce(ctx, d)
	telemetry.ObserveFrame(time.Since(start).Seconds(), len(f.Lights), err)
	if err != nil {
		return render.Frame{}, err
	}

	s.mu.Lock()
	s.doc, s.source, s.last = d, source, f
	s.mu.Unlock()
	return f, nil
}

func (s *State) current() (*beatmap.Difficulty, render.Frame) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, s.last
}

// Write broadcasts a computed frame to every /frames subscriber.
func (s *State) Write(f render.Frame) error {
	b, err := json.Marshal(frameMessage{Type: "frame", Frame: f})
	if err != nil {
		return err
	}
	s.connMu.Lock()
	defer s.connMu.Unlock()
	for c, id := range s.clients {
		c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			s.Log.Debug().Err(err).Str("session", id).Msg("write frame")
		}
	}
	return nil
}

type frameMessage struct {
	Type  string       `json:"type"`
	Frame render.Frame `json:"frame"`
}

func (s *State) subscribe(w http.ResponseWriter, r *http.Request, set map[*websocket.Conn]string, kind string) (*websocket.Conn, string, bool) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Debug().Err(err).Str("kind", kind).Msg("upgrade")
		return nil, "", false
	}
	id := uuid.NewString()
	s.connMu.Lock()
	set[conn] = id
	if kind == "frames" {
		telemetry.FrameSubscribers.Set(float64(len(set)))
	}
	s.connMu.Unlock()
	s.Log.Debug().Str("session", id).Str("kind", kind).Msg("client connected")
	return conn, id, true
}

// drain reads until the peer goes away, then forgets the connection.
func (s *State) drain(conn *websocket.Conn, set map[*websocket.Conn]string, kind string) {
	defer func() {
		s.connMu.Lock()
		id := set[conn]
		delete(set, conn)
		if kind == "frames" {
			telemetry.FrameSubscribers.Set(float64(len(set)))
		}
		s.connMu.Unlock()
		conn.Close()
		s.Log.Debug().Str("session", id).Str("kind", kind).Msg("client gone")
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// HandleFramesWS subscribes the client to frames. The current frame, if
// any, is sent right away.
func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, _, ok := s.subscribe(w, r, s.clients, "frames")
	if !ok {
		return
	}
	if doc, f := s.current(); doc != nil {
		b, err := json.Marshal(frameMessage{Type: "frame", Frame: f})
		if err == nil {
			s.connMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
			_ = conn.WriteMessage(websocket.TextMessage, b)
			s.connMu.Unlock()
		}
	}
	go s.drain(conn, s.clients, "frames")
}

// HandleDiagWS streams diagnostics found in loaded documents.
func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, _, ok := s.subscribe(w, r, s.diagClients, "diag")
	if !ok {
		return
	}
	go s.drain(conn, s.diagClients, "diag")
}

func (s *State) pushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	s.connMu.Lock()
	defer s.connMu.Unlock()
	for c := range s.diagClients {
		c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}

// Request is a /control message.
type Request struct {
	ID  string `json:"id,omitempty"`
	Cmd string `json:"cmd"`

	// load
	Path     string          `json:"path,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`

	// offsets
	Family string `json:"family,omitempty"`
	Box    int    `json:"box,omitempty"`
	Group  int    `json:"group,omitempty"`
}

// Response answers one Request.
type Response struct {
	ID    string `json:"id,omitempty"`
	Cmd   string `json:"cmd"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`

	Seq         uint64                `json:"seq,omitempty"`
	Version     string                `json:"version,omitempty"`
	Revision    string                `json:"revision,omitempty"`
	Offsets     []render.LightOffsets `json:"offsets,omitempty"`
	Spans       []render.BoxSpan      `json:"spans,omitempty"`
	EndBeat     float32               `json:"end_beat,omitempty"`
	Diagnostics diag.List             `json:"diagnostics,omitempty"`
}

// HandleControlWS answers JSON requests: load, offsets and duration.
func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	session := uuid.NewString()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var req Request
		var resp Response
		if err := json.Unmarshal(data, &req); err != nil {
			resp = Response{Cmd: "invalid", Error: "malformed request: " + err.Error()}
		} else {
			resp = s.handle(r.Context(), req)
		}
		if !resp.OK {
			s.Log.Warn().Str("session", session).Str("cmd", resp.Cmd).Str("error", resp.Error).Msg("control request failed")
		}
		b, _ := json.Marshal(resp)
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
}

func (s *State) handle(ctx context.Context, req Request) Response {
	resp := Response{ID: req.ID, Cmd: req.Cmd}
	fail := func(err error) Response {
		resp.OK = false
		resp.Error = err.Error()
		return resp
	}

	switch req.Cmd {
	case "load":
		var (
			f   render.Frame
			err error
		)
		switch {
		case len(req.Document) > 0:
			f, err = s.LoadJSON(ctx, req.Document)
		case req.Path != "":
			f, err = s.LoadFile(ctx, req.Path)
		default:
			err = errors.New("load needs a path or a document")
		}
		if err != nil {
			return fail(err)
		}
		doc, _ := s.current()
		resp.Seq, resp.Version, resp.Revision = f.Seq, f.Version, f.Revision
		resp.EndBeat = f.EndBeat
		resp.Diagnostics = doc.Check()

	case "offsets":
		doc, _ := s.current()
		if doc == nil {
			return fail(ErrNoDocument)
		}
		fam, err := render.ParseFamily(req.Family)
		if err != nil {
			return fail(err)
		}
		offs, err := s.Engine.Offsets(doc, fam, req.Box, req.Group)
		if err != nil {
			return fail(err)
		}
		resp.Offsets = offs

	case "duration":
		doc, _ := s.current()
		if doc == nil {
			return fail(ErrNoDocument)
		}
		resp.Spans = s.Engine.Timeline(doc)
		resp.EndBeat = s.Engine.EndBeat(doc)

	default:
		return fail(fmt.Errorf("unknown command %q", req.Cmd))
	}
	resp.OK = true
	return resp
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	doc, f := s.current()
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()
	s.connMu.Lock()
	subs := len(s.clients)
	s.connMu.Unlock()

	resp := map[string]any{
		"loaded":       doc != nil,
		"source":       source,
		"frame_seq":    f.Seq,
		"lights":       len(f.Lights),
		"end_beat":     f.EndBeat,
		"uptime_s":     time.Since(s.startTime).Seconds(),
		"subscribers":  subs,
		"workers":      s.Engine.Workers,
		"fixtures":     s.Engine.Layout.Count(),
		"light_groups": s.Engine.Layout.IDs(),
	}
	if doc != nil {
		resp["version"] = doc.Version
		resp["revision"] = doc.Revision.String()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Routes mounts the server's endpoints on a mux, wrapped in metrics.
func (s *State) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/frames", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.Handle("/metrics", telemetry.Handler())
	return withCORS(telemetry.MetricsMiddleware(mux))
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}
