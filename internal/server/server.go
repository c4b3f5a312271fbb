package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/midnighthunt/hunt-server-go/internal/game"
	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
	"github.com/midnighthunt/hunt-server-go/internal/monitor"
	"github.com/midnighthunt/hunt-server-go/internal/repository"
)

// Server exposes the engine over HTTP plus a websocket event stream.
type Server struct {
	logger  *zap.Logger
	engine  *game.Engine
	hub     *Hub
	metrics *monitor.Metrics
	matches *repository.MatchRepository
}

// New creates a server. metrics and matches may be nil.
func New(logger *zap.Logger, engine *game.Engine, hub *Hub, metrics *monitor.Metrics, matches *repository.MatchRepository) *Server {
	return &Server{
		logger:  logger,
		engine:  engine,
		hub:     hub,
		metrics: metrics,
		matches: matches,
	}
}

// Handler builds the HTTP route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /games", s.handleCreateGame)
	mux.HandleFunc("GET /games/{id}", s.handleSnapshot)
	mux.HandleFunc("POST /games/{id}/actions", s.handleAction)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /ws", s.hub.HandleWS)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

type createGameRequest struct {
	Players []struct {
		Name string `json:"name"`
		Bot  bool   `json:"bot"`
	} `json:"players"`
	Seed *int64 `json:"seed,omitempty"`
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	specs := make([]game.PlayerSpec, 0, len(req.Players))
	for _, p := range req.Players {
		specs = append(specs, game.PlayerSpec{Name: p.Name, Bot: p.Bot})
	}

	var opts []game.SessionOption
	if req.Seed != nil {
		opts = append(opts, game.WithSeed(*req.Seed))
	}

	session, err := s.engine.StartGame(specs, opts...)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.attachSession(session)
	if err := s.engine.Begin(session.ID); err != nil {
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"game_id": session.ID})
}

// attachSession wires the broadcast, metrics and persistence listeners to a
// new session's bus. Listeners run synchronously under the session lock, so
// the database write is handed off to a goroutine with a copied snapshot.
func (s *Server) attachSession(session *game.Session) {
	gameID := session.ID

	session.Bus().Subscribe(func(evt rules.Event) {
		s.hub.Broadcast(map[string]any{
			"game_id":   gameID,
			"type":      string(evt.Type),
			"player_id": evt.PlayerID,
			"actor_id":  evt.ActorID,
			"amount":    evt.Amount,
			"turn":      evt.Turn,
			"data":      evt.Data,
			"ts":        evt.Timestamp,
		})
	})

	if s.metrics != nil {
		s.metrics.Observe(session.Bus())
		s.metrics.GamesStarted.Inc()
		s.metrics.ActiveGames.Inc()
	}

	if s.matches != nil {
		session.Bus().SubscribeTyped(rules.EventGameEnded, func(evt rules.Event) {
			view := session.Snapshot()
			faction := evt.Data
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := s.matches.SaveResult(ctx, view, faction); err != nil {
					s.logger.Error("failed to save match result",
						zap.String("game_id", gameID),
						zap.Error(err),
					)
				}
			}()
		})
	}
}

// handleResults lists recently finished games. Persistence is optional, so
// the route answers 404 when no repository is configured.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if s.matches == nil {
		httpError(w, http.StatusNotFound, "match persistence is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			httpError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	results, err := s.matches.RecentResults(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list match results", zap.Error(err))
		httpError(w, http.StatusInternalServerError, "failed to list results")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	view, err := s.engine.Snapshot(r.PathValue("id"))
	if err != nil {
		httpError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type actionRequest struct {
	Action   string `json:"action"`
	PlayerID int    `json:"player_id"`
	TargetID *int   `json:"target_id,omitempty"`
	Zone     *int   `json:"zone,omitempty"`
	Targets  []int  `json:"targets,omitempty"`
	CardID   string `json:"card_id,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var result any
	var err error
	switch req.Action {
	case "roll_movement":
		result, err = s.engine.RollMovement(gameID, req.PlayerID)
	case "move":
		if req.Zone == nil {
			httpError(w, http.StatusBadRequest, "move requires a zone")
			return
		}
		err = s.engine.Move(gameID, req.PlayerID, game.ZoneID(*req.Zone))
	case "draw_card":
		result, err = s.engine.DrawCard(gameID, req.PlayerID)
	case "attack":
		if req.TargetID == nil {
			httpError(w, http.StatusBadRequest, "attack requires a target")
			return
		}
		result, err = s.engine.Attack(gameID, req.PlayerID, *req.TargetID)
	case "discard_equipment":
		if req.CardID == "" {
			httpError(w, http.StatusBadRequest, "discard_equipment requires a card_id")
			return
		}
		err = s.engine.DiscardEquipment(gameID, req.PlayerID, req.CardID)
	case "activate_ability":
		result, err = s.engine.ActivateAbility(gameID, req.PlayerID, req.Targets)
	case "advance_phase":
		err = s.engine.AdvancePhase(gameID)
	case "end_turn":
		err = s.engine.EndTurn(gameID, req.PlayerID)
	default:
		httpError(w, http.StatusBadRequest, "unknown action")
		return
	}

	switch {
	case errors.Is(err, game.ErrGameNotFound):
		httpError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrActionDenied), errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoLivingPlayers):
		httpError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrPlayerNotFound):
		httpError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		httpError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]any{"result": result})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func httpError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
