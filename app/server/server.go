// Package server provides an http api for the detection engine: message
// checks, whitelist management, recent detections and counter resets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/guardbot/tg-guard/app/storage"
	"github.com/guardbot/tg-guard/lib/check"
)

//go:generate moq --out mocks/detector.go --pkg mocks --skip-ensure --with-resets . Detector
//go:generate moq --out mocks/detections_store.go --pkg mocks --skip-ensure --with-resets . DetectionsStore
//go:generate moq --out mocks/approved_store.go --pkg mocks --skip-ensure --with-resets . ApprovedStore
//go:generate moq --out mocks/counters_store.go --pkg mocks --skip-ensure --with-resets . CountersStore

// Server provides http api
type Server struct {
	Config
}

// Config defines server parameters
type Config struct {
	ListenAddr string
	Version    string
	AuthPasswd string // basic auth password for the user "guard", disabled if empty

	NewUserMessages int // messages below this mark the user as new

	Detector   Detector
	Detections DetectionsStore
	Approved   ApprovedStore
	Counters   CountersStore
}

// Detector is a spam detection engine
type Detector interface {
	Detect(ctx context.Context, req check.Request, uc check.UserContext, chat check.ChatConfig) check.Verdict
}

// DetectionsStore reads archived detections and per-user rolling stats
type DetectionsStore interface {
	Read(ctx context.Context, limit int) ([]storage.DetectionRecord, error)
	UserStats(ctx context.Context, userID int64) (storage.UserStats, error)
}

// ApprovedStore manages the whitelist
type ApprovedStore interface {
	Add(ctx context.Context, userID, chatID int64, name string) error
	Remove(ctx context.Context, userID, chatID int64) error
	List(ctx context.Context) ([]storage.UserInfo, error)
}

// CountersStore resets daily spam counters
type CountersStore interface {
	ResetDailyCount(ctx context.Context, userID int64) error
}

// NewServer creates a new web API server
func NewServer(config Config) *Server {
	return &Server{Config: config}
}

// Run starts server and accepts requests until the context is done
func (s *Server) Run(ctx context.Context) error {
	router := routegroup.New(http.NewServeMux())
	router.Use(rest.Recoverer(lgr.Default()))
	router.Use(rest.AppInfo("tg-guard", "guardbot", s.Version), rest.Ping)
	router.Use(tollbooth.HTTPMiddleware(tollbooth.NewLimiter(50, nil)))
	router.Use(rest.SizeLimit(64 * 1024))

	if s.AuthPasswd != "" {
		log.Printf("[INFO] basic auth enabled for api server")
		router.Use(rest.BasicAuthWithPrompt("guard", s.AuthPasswd))
	} else {
		log.Printf("[WARN] basic auth disabled, access to api is not protected")
	}

	s.routes(router)

	srv := &http.Server{Addr: s.ListenAddr, Handler: router,
		ReadHeaderTimeout: 5 * time.Second, WriteTimeout: 30 * time.Second, IdleTimeout: 30 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown api server: %v", err)
		} else {
			log.Printf("[INFO] api server stopped")
		}
	}()

	log.Printf("[INFO] start api server on %s", s.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

func (s *Server) routes(router *routegroup.Bundle) {
	router.HandleFunc("POST /check", s.checkHandler)          // check a message for spam
	router.HandleFunc("GET /detections", s.detectionsHandler) // recent detection results

	router.Mount("/users").Route(func(users *routegroup.Bundle) { // manage approved users
		users.HandleFunc("POST /", s.addUserHandler)
		users.HandleFunc("DELETE /{id}", s.deleteUserHandler)
		users.HandleFunc("GET /", s.listUsersHandler)
	})

	router.HandleFunc("POST /counters/reset", s.resetCounterHandler) // drop daily spam counter
}

// checkHandler handles POST /check request.
// it runs the full detection pipeline for a single message and returns the verdict.
func (s *Server) checkHandler(w http.ResponseWriter, r *http.Request) {
	req := struct {
		MsgID         int64          `json:"msg_id"`
		UserID        int64          `json:"user_id"`
		ChatID        int64          `json:"chat_id"`
		Text          string         `json:"text"`
		Meta          check.MetaData `json:"meta"`
		SpamThreshold float64        `json:"spam_threshold,omitempty"` // per-chat override
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "can't decode request", "details": err.Error()})
		log.Printf("[WARN] can't decode request: %v", err)
		return
	}
	if req.UserID == 0 {
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "user_id is required"})
		return
	}

	uc, err := s.userContext(r.Context(), req.UserID)
	if err != nil {
		log.Printf("[WARN] failed to get stats for user %d, treating as new: %v", req.UserID, err)
		uc = check.UserContext{New: true}
	}

	verdict := s.Detector.Detect(r.Context(), check.Request{
		MsgID:  req.MsgID,
		UserID: req.UserID,
		ChatID: req.ChatID,
		Text:   req.Text,
		Meta:   req.Meta,
	}, uc, check.ChatConfig{SpamThreshold: req.SpamThreshold})

	rest.RenderJSON(w, verdict)
}

// userContext builds the detection user context from the rolling stats
func (s *Server) userContext(ctx context.Context, userID int64) (check.UserContext, error) {
	stats, err := s.Detections.UserStats(ctx, userID)
	if err != nil {
		return check.UserContext{}, err
	}
	newUserMessages := s.NewUserMessages
	if newUserMessages == 0 {
		newUserMessages = 10
	}
	return check.UserContext{
		MessageCount: stats.MessageCount,
		SpamScore:    stats.SpamScore,
		New:          stats.MessageCount < newUserMessages,
	}, nil
}

// detectionsHandler handles GET /detections?limit=N request.
// it returns the most recent detection records, newest first.
func (s *Server) detectionsHandler(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		var err error
		if limit, err = strconv.Atoi(v); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			rest.RenderJSON(w, rest.JSON{"error": "invalid limit", "details": err.Error()})
			return
		}
	}
	res, err := s.Detections.Read(r.Context(), limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		rest.RenderJSON(w, rest.JSON{"error": "can't read detections", "details": err.Error()})
		return
	}
	rest.RenderJSON(w, res)
}

// addUserHandler handles POST /users request, adds a user to the whitelist
func (s *Server) addUserHandler(w http.ResponseWriter, r *http.Request) {
	req := struct {
		UserID int64  `json:"user_id"`
		ChatID int64  `json:"chat_id"`
		Name   string `json:"name"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "can't decode request", "details": err.Error()})
		return
	}
	if req.UserID == 0 {
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "user_id is required"})
		return
	}
	if err := s.Approved.Add(r.Context(), req.UserID, req.ChatID, req.Name); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		rest.RenderJSON(w, rest.JSON{"error": "can't add user", "details": err.Error()})
		return
	}
	rest.RenderJSON(w, rest.JSON{"user_id": req.UserID, "updated": true})
}

// deleteUserHandler handles DELETE /users/{id}?chat_id=N request
func (s *Server) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "invalid user id", "details": err.Error()})
		return
	}
	var chatID int64
	if v := r.URL.Query().Get("chat_id"); v != "" {
		if chatID, err = strconv.ParseInt(v, 10, 64); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			rest.RenderJSON(w, rest.JSON{"error": "invalid chat id", "details": err.Error()})
			return
		}
	}
	if err := s.Approved.Remove(r.Context(), userID, chatID); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "can't remove user", "details": err.Error()})
		return
	}
	rest.RenderJSON(w, rest.JSON{"user_id": userID, "deleted": true})
}

// listUsersHandler handles GET /users request, returns the whitelist
func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.Approved.List(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		rest.RenderJSON(w, rest.JSON{"error": "can't list users", "details": err.Error()})
		return
	}
	rest.RenderJSON(w, res)
}

// resetCounterHandler handles POST /counters/reset request.
// it drops the daily spam counter for a user, used by admins on false positives.
func (s *Server) resetCounterHandler(w http.ResponseWriter, r *http.Request) {
	req := struct {
		UserID int64 `json:"user_id"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "can't decode request", "details": err.Error()})
		return
	}
	if err := s.Counters.ResetDailyCount(r.Context(), req.UserID); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		rest.RenderJSON(w, rest.JSON{"error": "can't reset counter", "details": err.Error()})
		return
	}
	rest.RenderJSON(w, rest.JSON{"user_id": req.UserID, "reset": true})
}
