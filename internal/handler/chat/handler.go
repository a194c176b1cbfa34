// Package chat exposes the development server's HTTP surface: the
// streaming chat endpoint, the non-streaming fallback, the health probe
// and the cache controls. The wire contract matches the production
// backend exactly.
package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	chatmodel "github.com/mulbot/mulchat/internal/model/chat"
	"github.com/mulbot/mulchat/internal/service/answers"
	"github.com/mulbot/mulchat/internal/service/cache"
	"github.com/mulbot/mulchat/pkg/utils"
)

// maxMessageLen matches the production input validation.
const maxMessageLen = 1000

// Handler serves the chat endpoints from the scripted responder.
type Handler struct {
	answers   *answers.Service
	cache     *cache.Cache
	stepDelay time.Duration
	log       zerolog.Logger
}

// New wires the handler. stepDelay paces the replayed status frames so
// the client-side status display is visible during manual testing; tests
// pass zero.
func New(svc *answers.Service, c *cache.Cache, stepDelay time.Duration, log zerolog.Logger) *Handler {
	return &Handler{
		answers:   svc,
		cache:     c,
		stepDelay: stepDelay,
		log:       log.With().Str("component", "chat-handler").Logger(),
	}
}

// RegisterRoutes mounts the chat routes on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat/stream", h.handleStream)
	r.Post("/chat", h.handleChat)
	r.Get("/health", h.handleHealth)
	r.Get("/cache/stats", h.handleCacheStats)
	r.Post("/cache/clear", h.handleCacheClear)
}

// decodeRequest parses and validates the shared request body.
func decodeRequest(r *http.Request) (chatmodel.SendRequest, string, bool) {
	var req chatmodel.SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, "invalid request body", false
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return req, "Message cannot be empty", false
	}
	if len([]rune(req.Message)) > maxMessageLen {
		return req, "Message too long (max 1000 characters)", false
	}
	return req, "", true
}

func threadIDOrNew(req chatmodel.SendRequest) string {
	if req.ThreadID != nil && *req.ThreadID != "" {
		return *req.ThreadID
	}
	return uuid.NewString()
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	req, msg, ok := decodeRequest(r)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	threadID := threadIDOrNew(req)
	utils.SetupSSEHeaders(w)

	if cached, hit := h.cache.Get(req.Message); hit {
		h.log.Debug().Str("thread_id", threadID).Msg("serving cached response")
		utils.SendSSEChunk(w, flusher, chatmodel.Event{
			Type: chatmodel.EventStatus,
			Icon: "⚡",
			Text: "Retrieved from cache...",
			Node: "cache",
		})
		utils.SendSSEChunk(w, flusher, chatmodel.Event{
			Type:     chatmodel.EventResponse,
			Response: cached,
			ThreadID: threadID,
			Cached:   true,
		})
		utils.SendSSEChunk(w, flusher, map[string]string{"type": "done"})
		return
	}

	turn := h.answers.Respond(req.Message)
	for _, step := range turn.Steps {
		utils.SendSSEChunk(w, flusher, chatmodel.Event{
			Type: chatmodel.EventStatus,
			Icon: step.Icon,
			Text: step.Text,
			Node: step.Node,
		})
		if !h.pause(r.Context()) {
			h.log.Debug().Str("thread_id", threadID).Msg("client disconnected mid-turn")
			return
		}
	}

	utils.SendSSEChunk(w, flusher, chatmodel.Event{
		Type:     chatmodel.EventResponse,
		Response: turn.Answer,
		ThreadID: threadID,
	})
	h.cache.Put(req.Message, turn.Answer)
	utils.SendSSEChunk(w, flusher, map[string]string{"type": "done"})

	h.log.Info().Str("thread_id", threadID).Msg("turn completed")
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	req, msg, ok := decodeRequest(r)
	if !ok {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	threadID := threadIDOrNew(req)

	if cached, hit := h.cache.Get(req.Message); hit {
		utils.RespondJSON(w, http.StatusOK, chatmodel.SendResponse{
			Response: cached,
			ThreadID: threadID,
			Cached:   true,
		})
		return
	}

	turn := h.answers.Respond(req.Message)
	h.cache.Put(req.Message, turn.Answer)
	utils.RespondJSON(w, http.StatusOK, chatmodel.SendResponse{
		Response: turn.Answer,
		ThreadID: threadID,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "MUL Chatbot (dev)",
	})
}

func (h *Handler) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.cache.Stats())
}

func (h *Handler) handleCacheClear(w http.ResponseWriter, _ *http.Request) {
	h.cache.Clear()
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"status":  "cleared",
		"message": "Cache cleared. Next requests will replay fresh responses.",
	})
}

// pause waits one step delay, or reports false when the client hung up.
func (h *Handler) pause(ctx context.Context) bool {
	if h.stepDelay <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(h.stepDelay):
		return true
	}
}
