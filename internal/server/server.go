// Package server exposes the HTTP surface: guest token issuance and the
// per-room websocket endpoint, with its read loop feeding the room state
// machine.
package server

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Prem-Healthinformatics/pruno/internal/auth"
	"github.com/Prem-Healthinformatics/pruno/internal/config"
	"github.com/Prem-Healthinformatics/pruno/internal/game"
	"github.com/Prem-Healthinformatics/pruno/internal/models"
	"github.com/Prem-Healthinformatics/pruno/internal/session"
)

// Room codes are short uppercase alphanumeric identifiers.
var roomCodeRe = regexp.MustCompile(`^[A-Z0-9]{1,12}$`)

// Server wires HTTP routes to the session registry and room manager.
type Server struct {
	cfg      *config.Config
	registry *session.Registry
	rooms    *game.Manager
	log      *logrus.Entry
}

// New creates the HTTP server surface.
func New(cfg *config.Config, registry *session.Registry, rooms *game.Manager) *Server {
	return &Server{
		cfg:      cfg,
		registry: registry,
		rooms:    rooms,
		log:      logrus.WithField("component", "server"),
	}
}

// Router returns the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/guest", s.handleGuest).Methods(http.MethodPost)
	r.HandleFunc("/api/room/{code}", s.handleRoom)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// handleGuest mints a guest identity token so clients keep a stable player id
// across reconnects.
func (s *Server) handleGuest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if r.Body != nil {
		// An empty or malformed body just means an anonymous guest.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Name == "" {
		req.Name = "Guest"
	}

	playerID := uuid.New()
	token, err := auth.IssueGuestToken([]byte(s.cfg.JWTSecret), playerID, req.Name, auth.DefaultTTL)
	if err != nil {
		s.log.WithError(err).Error("failed issuing guest token")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token":    token,
		"playerId": playerID.String(),
		"name":     req.Name,
	})
}

// handleRoom upgrades the connection and pumps inbound actions into the room.
// Malformed frames are logged and dropped without closing the connection.
func (s *Server) handleRoom(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(mux.Vars(r)["code"])
	if !roomCodeRe.MatchString(code) {
		http.Error(w, "invalid room code", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.AllowedOrigins,
	})
	if err != nil {
		s.log.WithError(err).Debug("websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection dropped")

	log := s.log.WithField("room", code)

	room, err := s.rooms.GetOrCreate(r.Context(), code)
	if err != nil {
		log.WithError(err).Error("failed resolving room")
		conn.Close(websocket.StatusInternalError, "room unavailable")
		return
	}

	sess := session.New(conn, code)
	s.registry.Add(sess)
	defer s.registry.Remove(sess)

	// A valid guest token restores the player identity before any JOIN.
	if token := r.URL.Query().Get("token"); token != "" {
		if playerID, _, err := auth.ParseGuestToken([]byte(s.cfg.JWTSecret), token); err == nil {
			sess.BindPlayer(playerID)
		} else {
			log.Debug("ignoring invalid guest token")
		}
	}

	log.Info("connection attached")
	start := time.Now()

	for {
		_, data, err := conn.Read(r.Context())
		if err != nil {
			log.WithError(err).WithField("connected", time.Since(start)).Debug("connection detached")
			return
		}
		var env models.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			log.WithError(err).Warn("dropping malformed message")
			continue
		}
		room.HandleAction(sess, env)
	}
}
