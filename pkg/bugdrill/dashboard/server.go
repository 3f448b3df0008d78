// Package dashboard serves the practice surface: a web page with an
// embedded code editor and result panel, driven over a websocket channel.
// The page is the concrete editor/result-panel pair the engine's Binder
// expects; the engine itself stays purely in-process.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/practicelabs/bugdrill/pkg/bugdrill"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/exercises"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/feedback"
)

// Server hosts the practice dashboard over HTTP and websocket.
type Server struct {
	addr       string
	engine     *bugdrill.Engine
	catalog    *exercises.Catalog
	registry   *feedback.Registry
	checkDelay time.Duration

	server       *http.Server
	upgrader     websocket.Upgrader
	clients      map[*client]bool
	clientsMutex sync.RWMutex
	maxClients   int
	stop         chan struct{}
	stopOnce     sync.Once
}

// Options configures a Server beyond its required collaborators.
type Options struct {
	Addr       string
	CheckDelay time.Duration
	MaxClients int
}

// NewServer wires the dashboard to an engine and an exercise catalog.
// The feedback registry receives an event for every session presented and
// every check completed over the websocket channel.
func NewServer(engine *bugdrill.Engine, catalog *exercises.Catalog, registry *feedback.Registry, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":9090"
	}
	if opts.CheckDelay <= 0 {
		opts.CheckDelay = bugdrill.DefaultCheckDelay
	}
	if opts.MaxClients <= 0 {
		opts.MaxClients = 100
	}

	return &Server{
		addr:       opts.Addr,
		engine:     engine,
		catalog:    catalog,
		registry:   registry,
		checkDelay: opts.CheckDelay,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Same-host browsers only; the Host header carries the addr
				// the page was served from.
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return origin == "http://"+r.Host || origin == "https://"+r.Host
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients:    make(map[*client]bool),
		maxClients: opts.MaxClients,
		stop:       make(chan struct{}),
	}
}

// Handler returns the dashboard's HTTP handler. Exposed separately from
// Start so tests can mount it on httptest servers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/exercises", s.handleExercises)
	mux.HandleFunc("/api/stats", s.handleStats)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start listens on the configured address and blocks until the server
// stops. It returns http.ErrServerClosed after a clean Stop.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	log.Printf("Starting bugdrill dashboard on %s", s.addr)
	return s.server.ListenAndServe()
}

// Stop shuts the server down, closing websocket clients first.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.catalog.List()); err != nil {
		log.Printf("Error encoding exercises: %v", err)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.engine.Stats().GetStats()); err != nil {
		log.Printf("Error encoding stats: %v", err)
	}
}

// command is a client-to-server websocket message.
type command struct {
	Type     string `json:"type"`
	Exercise string `json:"exercise,omitempty"`
	Text     string `json:"text,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.clientsMutex.RLock()
	clientCount := len(s.clients)
	s.clientsMutex.RUnlock()
	if clientCount >= s.maxClients {
		http.Error(w, "Maximum clients reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	c := &client{conn: conn, server: s}

	s.clientsMutex.Lock()
	s.clients[c] = true
	s.clientsMutex.Unlock()
	defer func() {
		s.clientsMutex.Lock()
		delete(s.clients, c)
		s.clientsMutex.Unlock()
	}()

	go s.keepAlive(c)

	for {
		var cmd command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		s.dispatch(c, cmd)
	}
}

// keepAlive pings the client until it disconnects or the server stops.
func (s *Server) keepAlive(c *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.writeControl(websocket.PingMessage); err != nil {
				return
			}
		case <-s.stop:
			c.writeControl(websocket.CloseMessage)
			return
		}
	}
}

func (s *Server) dispatch(c *client, cmd command) {
	switch cmd.Type {
	case "present":
		s.present(c, cmd.Exercise)
	case "edit":
		c.edit(cmd.Text)
	case "check":
		s.check(c)
	case "reset":
		c.reset()
	default:
		c.sendError(fmt.Sprintf("unknown command %q", cmd.Type))
	}
}

// present starts a fresh session for the requested exercise and binds the
// websocket client as the session's editor surface and result panel.
func (s *Server) present(c *client, exerciseID string) {
	ex, ok := s.catalog.Get(exerciseID)
	if !ok {
		c.sendError(fmt.Sprintf("unknown exercise %q", exerciseID))
		return
	}

	session := bugdrill.NewSession(s.engine, ex.Snippet,
		bugdrill.WithLanguage(ex.Language),
		bugdrill.WithCheckDelay(s.checkDelay),
	)
	c.attach(session, ex)

	s.registry.Publish(feedback.Event{
		Type:      feedback.SessionPresented,
		SessionID: session.ID(),
		Language:  string(session.Language()),
		Message:   fmt.Sprintf("exercise %s presented", ex.ID),
	})
}

func (s *Server) check(c *client) {
	c.mu.Lock()
	binder := c.binder
	c.mu.Unlock()
	if binder == nil {
		c.sendError("no exercise presented")
		return
	}

	// Binder ignores the call when a check is already in flight, matching
	// the one-outstanding-check contract. The result lands on the panel
	// adapter, which also publishes the feedback event.
	binder.Check()
}

// publishCheck reports a committed check outcome to the feedback registry.
func (s *Server) publishCheck(session *bugdrill.Session, result bugdrill.AnalysisResult) {
	eventType := feedback.CheckSucceeded
	message := result.SuccessMessage
	if result.HasDefects {
		eventType = feedback.CheckFailed
		message = result.SummaryMessage
	}
	s.registry.Publish(feedback.Event{
		Type:      eventType,
		SessionID: session.ID(),
		Language:  string(session.Language()),
		Message:   message,
	})
}
