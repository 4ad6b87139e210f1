// Package http adapts the dialog engine to the JSON-over-HTTP contract
// USSD gateways speak: POST bodies carrying USERID/MSISDN/USERDATA/
// MSGTYPE/SESSIONID, answered with USERID/MSISDN/MSG/MSGTYPE.
package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yawmintah/ussdflow/internal/logging"
	"github.com/yawmintah/ussdflow/pkg/domain"
)

// Engine is the part of the dialog engine this adapter needs.
type Engine interface {
	Handle(ctx context.Context, req domain.DialogRequest) (domain.DialogResponse, error)
}

// dialogRequest is the gateway's wire shape. MSGTYPE is a pointer so an
// absent field can default to true (new dialog), matching gateways that
// omit it on the opening request.
type dialogRequest struct {
	UserID    string `json:"USERID"`
	Msisdn    string `json:"MSISDN"`
	UserData  string `json:"USERDATA"`
	MsgType   *bool  `json:"MSGTYPE"`
	SessionID string `json:"SESSIONID"`
}

// dialogResponse is the wire shape sent back to the gateway.
type dialogResponse struct {
	UserID  string `json:"USERID"`
	Msisdn  string `json:"MSISDN"`
	Msg     string `json:"MSG"`
	MsgType bool   `json:"MSGTYPE"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server routes gateway traffic to the engine.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the boundary logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for the engine. The gateway posts
// to /; /health, /metrics and /debug/request are operational endpoints.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Invalid request method. POST required."})
	})

	r.Post("/", s.handleDialog)
	r.Get("/health", s.handleHealth)
	r.HandleFunc("/debug/request", s.handleDebugRequest)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// handleDialog decodes, validates and dispatches one gateway request.
// Transport and validation failures answer with 4xx and never touch a
// session; everything else is the engine's decision.
func (s *Server) handleDialog(w http.ResponseWriter, r *http.Request) {
	var body dialogRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("invalid request body", "err", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body."})
		return
	}

	userID := strings.TrimSpace(body.UserID)
	msisdn := strings.TrimSpace(body.Msisdn)
	userData := strings.TrimSpace(body.UserData)
	sessionID := strings.TrimSpace(body.SessionID)

	if userID == "" || msisdn == "" || sessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required parameters."})
		return
	}
	if !isDigits(msisdn) || len(msisdn) < 10 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid MSISDN format."})
		return
	}

	newDialog := true
	if body.MsgType != nil {
		newDialog = *body.MsgType
	}

	resp, err := s.engine.Handle(r.Context(), domain.DialogRequest{
		SubscriberID: userID,
		Msisdn:       msisdn,
		Input:        userData,
		NewDialog:    newDialog,
		SessionID:    sessionID,
	})
	if err != nil {
		s.logger.Error("dialog handling failed", "session_id", sessionID, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error."})
		return
	}

	writeJSON(w, http.StatusOK, dialogResponse{
		UserID:  resp.SubscriberID,
		Msisdn:  resp.Msisdn,
		Msg:     resp.Message,
		MsgType: resp.Continue,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDebugRequest echoes the request back, for poking at what a
// gateway actually sends.
func (s *Server) handleDebugRequest(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}
	query := make(map[string]string)
	for k := range r.URL.Query() {
		query[k] = r.URL.Query().Get(k)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"method":  r.Method,
		"headers": headers,
		"query":   query,
		"body":    string(body),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
