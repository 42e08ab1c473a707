// Package http exposes document generation and notification dispatch over HTTP.
package http

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/strogmv/appdoc/internal/adapter/notifications"
	"github.com/strogmv/appdoc/internal/adapter/notify"
	"github.com/strogmv/appdoc/internal/pkg/logger"
	"github.com/strogmv/appdoc/internal/port"
)

const maxBodyBytes = 64 << 10

// ChannelLister reports the notification channels that can be dispatched to.
type ChannelLister interface {
	Channels() []string
}

// ConnectionChecker reports whether an event bus connection is up.
type ConnectionChecker interface {
	IsConnected() bool
}

type Handler struct {
	Documents      port.ApplicationDocumentGenerator
	Dispatcher     port.NotificationDispatcher
	Templates      fs.FS
	DefaultBaseURI string
	Log            *slog.Logger

	// Channels and Events feed /healthz; both are optional.
	Channels ChannelLister
	Events   ConnectionChecker
}

// Routes builds the service router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())
	if h.Templates != nil {
		r.Handle("/templates/*", http.StripPrefix("/templates/", http.FileServerFS(h.Templates)))
	}
	r.Get("/applications/{id}/document", h.getDocument)
	r.Post("/notifications", h.postNotification)

	return otelhttp.NewHandler(r, "appdoc")
}

type healthBody struct {
	Status   string   `json:"status"`
	Channels []string `json:"channels"`
	Events   string   `json:"events"`
}

// health reports configured channels and event bus state. A configured but
// disconnected event bus makes the service unhealthy.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	body := healthBody{Status: "ok", Channels: []string{}, Events: "disabled"}
	if h.Channels != nil {
		body.Channels = h.Channels.Channels()
	}
	status := http.StatusOK
	if h.Events != nil {
		body.Events = "connected"
		if !h.Events.IsConnected() {
			body.Events = "disconnected"
			body.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid application id", nil)
		return
	}
	baseURI := strings.TrimSpace(r.URL.Query().Get("baseUri"))
	if baseURI == "" {
		baseURI = h.DefaultBaseURI
	}

	doc, err := h.Documents.Generate(r.Context(), id, baseURI)
	if err != nil {
		logger.From(r.Context(), h.Log).Error("document generation failed",
			slog.String("application_id", id.String()),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "document generation failed", nil)
		return
	}
	if doc == nil {
		writeError(w, http.StatusNotFound, "no document available for application", nil)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="application-`+id.String()+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

type notificationRequest struct {
	Channels []string          `json:"channels"`
	Event    string            `json:"event"`
	To       string            `json:"to"`
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Metadata map[string]string `json:"metadata"`
}

func (h *Handler) postNotification(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification payload", nil)
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "body is required", nil)
		return
	}

	msg := port.NotificationMessage{Event: req.Event, To: req.To, Title: req.Title, Body: req.Body, Metadata: req.Metadata}
	err := h.Dispatcher.Dispatch(r.Context(), msg, req.Channels...)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusAccepted)
	case errors.Is(err, notifications.ErrUnknownChannel):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(w, http.StatusBadGateway, "notification delivery failed", causesOf(err))
	}
}

// causesOf lists per-channel causes of a dispatch error, prefixed by channel.
func causesOf(err error) []string {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	var out []string
	for _, c := range errs {
		var sendErr *notify.SendError
		if errors.As(c, &sendErr) {
			for _, cause := range sendErr.Causes {
				out = append(out, sendErr.Channel+": "+cause.Error())
			}
			continue
		}
		out = append(out, c.Error())
	}
	return out
}

type errorBody struct {
	Error  string   `json:"error"`
	Causes []string `json:"causes,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, causes []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, Causes: causes})
}
