package handler

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"tax-engine/internal/engine"
	"tax-engine/internal/model"
	"tax-engine/internal/session"
)

const sessionsPrefix = "/sessions/"

// Handler serves one-shot calculations and the session endpoints.
type Handler struct {
	engine   *engine.Engine
	sessions *session.Store
	log      *zap.Logger
}

func New(e *engine.Engine, sessions *session.Store, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{engine: e, sessions: sessions, log: log}
}

// Handle is the fasthttp entry point.
func (h *Handler) Handle(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch {
	case path == "/healthz":
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case path == "/calculate":
		h.calculate(ctx)
	case strings.HasPrefix(path, sessionsPrefix):
		h.session(ctx, strings.TrimPrefix(path, sessionsPrefix))
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (h *Handler) calculate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.CalculationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Situation == nil && len(req.CalculationInstructions.Mutations) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "A situation or at least one mutation is required")
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, h.engine.Process(&req))
}

type mutationsRequest struct {
	Mutations []model.Mutation `json:"mutations"`
}

// session routes /sessions/{id} and /sessions/{id}/mutations.
func (h *Handler) session(ctx *fasthttp.RequestCtx, rest string) {
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
		return
	}

	switch sub {
	case "":
		switch {
		case ctx.IsGet():
			snap, err := h.sessions.Get(id)
			if err != nil {
				writeError(ctx, fasthttp.StatusNotFound, "Session not found: "+id)
				return
			}
			writeJSON(ctx, fasthttp.StatusOK, snap)
		case ctx.IsDelete():
			if !h.sessions.Delete(id) {
				writeError(ctx, fasthttp.StatusNotFound, "Session not found: "+id)
				return
			}
			ctx.SetStatusCode(fasthttp.StatusNoContent)
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		}
	case "mutations":
		if !ctx.IsPost() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		var req mutationsRequest
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		if len(req.Mutations) == 0 {
			writeError(ctx, fasthttp.StatusBadRequest, "At least one mutation is required")
			return
		}
		res, err := h.sessions.Apply(id, req.Mutations)
		if err != nil {
			h.log.Error("session apply failed", zap.String("session_id", id), zap.Error(err))
			writeError(ctx, fasthttp.StatusInternalServerError, "Recompute failed")
			return
		}
		writeJSON(ctx, fasthttp.StatusOK, res)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.Error("encode response: "+err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, model.ErrorResponse{
		Status:  status,
		Message: message,
	})
}
