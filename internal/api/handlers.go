package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"microservice-loadtest/internal/logger"
	"microservice-loadtest/internal/metrics"
	"microservice-loadtest/internal/service"
)

var Endpoints = []string{"health", "ready", "payload", "metrics"}

type Handlers struct {
	store           *metrics.Store
	logger          *logger.Logger
	maxRandomNumber int

	rngMu sync.Mutex
	rng   *rand.Rand
}

func NewHandlers(store *metrics.Store, maxRandomNumber int, logger *logger.Logger) *Handlers {
	return &Handlers{
		store:           store,
		logger:          logger,
		maxRandomNumber: maxRandomNumber,
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	defer h.store.Record("health", time.Now())
	h.writeJSON(w, "Service is healthy")
}

func (h *Handlers) HandleReady(w http.ResponseWriter, r *http.Request) {
	defer h.store.Record("ready", time.Now())
	h.writeJSON(w, "Service is ready")
}

func (h *Handlers) HandlePayload(w http.ResponseWriter, r *http.Request) {
	defer h.store.Record("payload", time.Now())

	h.rngMu.Lock()
	payload := service.NewPayload(h.rng, h.maxRandomNumber)
	h.rngMu.Unlock()

	h.writeJSON(w, payload)
}

// HandleMetrics serves the counters as they were before this request.
func (h *Handlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	defer h.store.Record("metrics", time.Now())
	h.writeJSON(w, h.store.Snapshot())
}

func (h *Handlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	body, err := json.Marshal(data)
	if err != nil {
		h.logger.Error(err.Error(), "Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Write(body)
}
