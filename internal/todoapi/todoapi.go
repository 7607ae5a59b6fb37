// Package todoapi is the in-memory REST service behind the example to-do
// application.
//
// Mount Routes under /api:
//
//	GET    /todo          greeting with the runtime's feature list
//	GET    /todos         the collection
//	POST   /todos         add an item
//	PUT    /todos/{id}    merge the body over an item
//	DELETE /todos/{id}    remove an item
//	GET    /todos/live    websocket feed of the collection
//
// Every successful mutation responds with the full collection.
package todoapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// Todo is one item of the collection.
type Todo struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Features is the list reported by the greeting endpoint.
var Features = []string{"HTTP client", "State store", "Routing", "Event delegation"}

const writeWait = 5 * time.Second

var errNotFound = errors.New("Todo not found")

// Service holds the collection and its live subscribers. It is safe for
// concurrent use.
type Service struct {
	mu      sync.Mutex
	todos   []Todo
	nextID  int
	version uint64

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
	sent      uint64

	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// New returns an empty service. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		todos:   []Todo{},
		nextID:  1,
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "todoapi"),
	}
}

// Routes returns the service's router, meant to be mounted under /api.
func (s *Service) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/todo", s.hello)
	r.Route("/todos", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/live", s.live)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.remove)
	})
	return r
}

// Todos returns a copy of the collection.
func (s *Service) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Close disconnects every live subscriber.
func (s *Service) Close() error {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
		_ = conn.Close()
		delete(s.clients, conn)
	}
	return nil
}

func (s *Service) snapshot() []Todo {
	out := make([]Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// changed bumps the collection version and returns a copy tagged with it.
// Callers hold s.mu.
func (s *Service) changed() ([]Todo, uint64) {
	s.version++
	return s.snapshot(), s.version
}

func (s *Service) hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Hello from API",
		"features": Features,
	})
}

func (s *Service) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Todos())
}

func (s *Service) create(w http.ResponseWriter, r *http.Request) {
	var in Todo
	if err := decodeBody(r.Body, &in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	if in.ID == 0 {
		in.ID = s.nextID
		s.nextID++
	}
	s.todos = append(s.todos, in)
	if in.ID >= s.nextID {
		s.nextID = in.ID + 1
	}
	todos, ver := s.changed()
	s.mu.Unlock()

	s.logger.Debug("todo created", "id", in.ID)
	s.respond(w, todos, ver)
}

func (s *Service) update(w http.ResponseWriter, r *http.Request) {
	var patch map[string]json.RawMessage
	if err := decodeBody(r.Body, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	i, ok := s.indexOf(chi.URLParam(r, "id"))
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	merged, err := merge(s.todos[i], patch)
	if err != nil {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.todos[i] = merged
	todos, ver := s.changed()
	s.mu.Unlock()

	s.logger.Debug("todo updated", "id", merged.ID)
	s.respond(w, todos, ver)
}

func (s *Service) remove(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	i, ok := s.indexOf(chi.URLParam(r, "id"))
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	id := s.todos[i].ID
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	todos, ver := s.changed()
	s.mu.Unlock()

	s.logger.Debug("todo deleted", "id", id)
	s.respond(w, todos, ver)
}

// respond writes the collection and pushes it to live subscribers.
func (s *Service) respond(w http.ResponseWriter, todos []Todo, ver uint64) {
	writeJSON(w, http.StatusOK, todos)
	s.broadcast(todos, ver)
}

// indexOf must be called with s.mu held.
func (s *Service) indexOf(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	for i, t := range s.todos {
		if t.ID == id {
			return i, true
		}
	}
	return 0, false
}

// merge overlays the patch's top-level keys on t.
func merge(t Todo, patch map[string]json.RawMessage) (Todo, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return t, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return t, err
	}
	for k, v := range patch {
		fields[k] = v
	}
	data, err = json.Marshal(fields)
	if err != nil {
		return t, err
	}
	var out Todo
	if err := json.Unmarshal(data, &out); err != nil {
		return t, err
	}
	return out, nil
}

func decodeBody(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return errors.New("invalid JSON body: " + err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
