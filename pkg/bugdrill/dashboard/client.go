package dashboard

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/practicelabs/bugdrill/pkg/bugdrill"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/diff"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/exercises"
	"github.com/practicelabs/bugdrill/pkg/bugdrill/feedback"
)

// client is one websocket connection. The browser page behind it is the
// editor surface and result panel for the session it has presented, so the
// client carries small adapters implementing both collaborator interfaces.
type client struct {
	conn    *websocket.Conn
	server  *Server
	writeMu sync.Mutex

	mu      sync.Mutex
	session *bugdrill.Session
	binder  *bugdrill.Binder
	editor  *wsEditor
}

// send writes one JSON message. gorilla connections allow a single
// concurrent writer, hence the write mutex.
func (c *client) send(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *client) writeControl(messageType int) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(messageType, nil)
}

func (c *client) sendError(message string) {
	if err := c.send(map[string]interface{}{
		"type":    "error",
		"message": message,
	}); err != nil {
		log.Printf("Error sending to client: %v", err)
	}
}

// active reports whether session is still the one this connection presents.
// Adapters of a superseded session use it to drop their late messages, which
// otherwise would render against the newly presented exercise.
func (c *client) active(session *bugdrill.Session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session == session
}

// attach swaps in a fresh session for the presented exercise and binds the
// connection's adapters to it.
func (c *client) attach(session *bugdrill.Session, ex exercises.Exercise) {
	editor := &wsEditor{client: c, session: session}
	panel := &wsPanel{client: c}

	c.mu.Lock()
	c.session = session
	c.editor = editor
	panel.session = session
	c.mu.Unlock()

	// Bind outside the lock: it drives the adapters, and the adapters check
	// c.session to decide whether they are still current. Commands arrive
	// serially off the read loop, so nothing observes the binder field
	// between the swap and the bind.
	binder := bugdrill.Bind(session, editor, panel)
	c.mu.Lock()
	c.binder = binder
	c.mu.Unlock()

	if err := c.send(map[string]interface{}{
		"type": "exercise",
		"data": map[string]interface{}{
			"exercise":   ex,
			"session_id": session.ID(),
			"language":   session.Language(),
		},
	}); err != nil {
		log.Printf("Error sending exercise to client: %v", err)
	}
}

// edit routes a text change from the browser into the editor surface's
// change callback, which the binder pointed at Session.Edit.
func (c *client) edit(text string) {
	c.mu.Lock()
	editor := c.editor
	c.mu.Unlock()
	if editor == nil {
		c.sendError("no exercise presented")
		return
	}
	editor.changed(text)
}

func (c *client) reset() {
	c.mu.Lock()
	binder := c.binder
	session := c.session
	c.mu.Unlock()
	if binder == nil {
		c.sendError("no exercise presented")
		return
	}
	binder.Reset()
	c.server.registry.Publish(feedback.Event{
		Type:      feedback.SessionReset,
		SessionID: session.ID(),
		Language:  string(session.Language()),
		Message:   "session reset to the original snippet",
	})
}

// wsEditor implements bugdrill.EditorSurface over the websocket channel.
// The browser textarea is the real widget; this adapter relays text and
// annotations to it and change notifications from it.
type wsEditor struct {
	client  *client
	session *bugdrill.Session

	mu       sync.Mutex
	text     string
	onChange func(string)
}

func (e *wsEditor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

func (e *wsEditor) SetText(text string) {
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
	if !e.client.active(e.session) {
		return
	}
	if err := e.client.send(map[string]interface{}{
		"type": "text",
		"data": map[string]interface{}{"text": text},
	}); err != nil {
		log.Printf("Error sending text to client: %v", err)
	}
}

func (e *wsEditor) OnChange(fn func(string)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

func (e *wsEditor) SetAnnotations(annotations []bugdrill.Annotation) error {
	if !e.client.active(e.session) {
		return nil
	}
	return e.client.send(map[string]interface{}{
		"type": "markers",
		"data": map[string]interface{}{"annotations": annotations},
	})
}

// changed records the new text and fires the registered change callback.
func (e *wsEditor) changed(text string) {
	e.mu.Lock()
	e.text = text
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn(text)
	}
}

// wsPanel implements bugdrill.ResultPanel over the websocket channel and
// enriches results with session status and the learner's patch.
type wsPanel struct {
	client  *client
	session *bugdrill.Session
}

func (p *wsPanel) ShowResult(result bugdrill.AnalysisResult) {
	if !p.client.active(p.session) {
		return
	}
	payload := map[string]interface{}{
		"result":   result,
		"state":    p.session.State(),
		"modified": p.session.Modified(),
	}
	if patch := diff.Unified(p.session.Original(), p.session.Current()); patch != "" {
		payload["diff"] = patch
	}
	if err := p.client.send(map[string]interface{}{
		"type": "result",
		"data": payload,
	}); err != nil {
		log.Printf("Error sending result to client: %v", err)
	}

	p.client.server.publishCheck(p.session, result)
}

func (p *wsPanel) ShowPrompt(message string) {
	if !p.client.active(p.session) {
		return
	}
	if err := p.client.send(map[string]interface{}{
		"type": "prompt",
		"data": map[string]interface{}{
			"message":  message,
			"state":    p.session.State(),
			"modified": p.session.Modified(),
		},
	}); err != nil {
		log.Printf("Error sending prompt to client: %v", err)
	}
}
