package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gridiron-league/pairdraft/internal/usecase"
)

type syncRostersRequest struct {
	MaxWorkers int `json:"max_workers" validate:"omitempty,min=1,max=32"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	query := r.URL.Query()
	input := usecase.ListPlayersInput{Position: query.Get("position")}

	if raw := strings.TrimSpace(query.Get("pool")); raw != "" {
		poolNumber, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: pool must be a number", usecase.ErrInvalidInput))
			return
		}
		input.Pool = &poolNumber
	}

	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a number", usecase.ErrInvalidInput))
			return
		}
		input.Limit = limit
	}

	players, err := h.playerService.ListPlayers(ctx, input)
	if err != nil {
		h.respondError(ctx, w, "ListPlayers", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, players)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	p, err := h.playerService.GetPlayer(ctx, r.PathValue("playerID"))
	if err != nil {
		h.respondError(ctx, w, "GetPlayer", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, p)
}

// SyncRosters triggers a pull of the external roster feed. The body is
// optional; an empty body runs with the default worker count.
func (h *Handler) SyncRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncRosters")
	defer span.End()

	var req syncRostersRequest
	if r.ContentLength > 0 {
		if err := h.decodeBody(r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
		if err := h.validateRequest(req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	result, err := h.rosterSyncService.SyncRosters(ctx, usecase.RosterSyncInput{MaxWorkers: req.MaxWorkers})
	if err != nil {
		h.respondError(ctx, w, "SyncRosters", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunDivision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDivision")
	defer span.End()

	outcome, err := h.divisionService.RunDivision(ctx)
	if err != nil {
		h.respondError(ctx, w, "RunDivision", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, outcome)
}

func (h *Handler) ListPools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPools")
	defer span.End()

	summaries, err := h.divisionService.ListPools(ctx)
	if err != nil {
		h.respondError(ctx, w, "ListPools", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaries)
}

func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPool")
	defer span.End()

	poolNumber, err := strconv.Atoi(r.PathValue("poolNumber"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: pool number must be a number", usecase.ErrInvalidInput))
		return
	}

	summary, err := h.divisionService.GetPool(ctx, poolNumber)
	if err != nil {
		h.respondError(ctx, w, "GetPool", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}
