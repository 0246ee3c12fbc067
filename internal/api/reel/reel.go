package reel

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	dto "reel_engine/internal/api/dto/reel"
	"reel_engine/internal/converter"
	"reel_engine/internal/middleware"
	"reel_engine/internal/service"
	"reel_engine/internal/service/session"
	"reel_engine/internal/sse"
	"reel_engine/pkg/req"
	"reel_engine/pkg/resp"

	"go.uber.org/zap"
)

const (
	defaultHeartbeat    = 15 * time.Second
	subscriberBuffer    = 16
	defaultHistoryLimit = 100
)

type HandlerDeps struct {
	Reel         service.ReelService
	Stats        service.StatsService
	Journal      service.JournalService
	Log          *zap.Logger
	HistoryLimit int
	Heartbeat    time.Duration
}

type Handler struct {
	reel         service.ReelService
	stats        service.StatsService
	journal      service.JournalService
	log          *zap.Logger
	historyLimit int
	heartbeat    time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	h := &Handler{
		reel:         deps.Reel,
		stats:        deps.Stats,
		journal:      deps.Journal,
		log:          deps.Log,
		historyLimit: deps.HistoryLimit,
		heartbeat:    deps.Heartbeat,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.historyLimit <= 0 {
		h.historyLimit = defaultHistoryLimit
	}
	if h.heartbeat <= 0 {
		h.heartbeat = defaultHeartbeat
	}
	return h
}

// Spin запускает спин. Результат приходит через снимки
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	gen := h.reel.RequestSpin()

	reqID, _ := middleware.RequestIDFromContext(r.Context())
	op, _ := middleware.OperatorFromContext(r.Context())
	h.log.Debug("spin accepted",
		zap.String("request_id", reqID),
		zap.String("operator", op),
		zap.Uint64("generation", gen))

	resp.WriteJSONResponse(w, http.StatusAccepted, dto.SpinResponse{Generation: gen})
}

// SetBet ставка на следующий спин
func (h *Handler) SetBet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.BetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.reel.SetBet(payload.Bet)
	if errors.Is(err, session.ErrInvalidBet) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSnapshotResponse(h.reel.Snapshot()))
}

func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSnapshotResponse(h.reel.Snapshot()))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.stats.Stats()))
}

// History последние спины из журнала, ?limit=N
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := h.historyLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, h.historyLimit)
	}

	records, err := h.journal.Recent(r.Context(), limit)
	if err != nil {
		h.log.Error("failed to read journal", zap.Error(err))
		http.Error(w, "history unavailable", http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToHistoryResponse(records))
}

// Events поток снимков text/event-stream.
// Первым событием уходит текущий снимок
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)

	updates, cancel := h.reel.Subscribe(subscriberBuffer)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := sse.Write(w, sse.EventSnapshot, converter.ToSnapshotResponse(h.reel.Snapshot())); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		h.log.Warn("event stream is not flushable", zap.Error(err))
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := sse.Write(w, sse.EventSnapshot, converter.ToSnapshotResponse(snap)); err != nil {
				return
			}
		case <-ticker.C:
			if err := sse.Ping(w); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}
