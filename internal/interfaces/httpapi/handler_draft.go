package httpapi

import (
	"net/http"

	"github.com/gridiron-league/pairdraft/internal/usecase"
)

type makePickRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	PlayerID string `json:"player_id" validate:"required"`
}

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraft")
	defer span.End()

	d, err := h.draftService.StartDraft(ctx, r.PathValue("pairID"))
	if err != nil {
		h.respondError(ctx, w, "StartDraft", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, d)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	detail, err := h.draftService.GetDraftDetail(ctx, r.PathValue("draftID"))
	if err != nil {
		h.respondError(ctx, w, "GetDraft", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

func (h *Handler) MakePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakePick")
	defer span.End()

	var req makePickRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.draftService.MakePick(ctx, usecase.MakePickInput{
		DraftID:  r.PathValue("draftID"),
		MemberID: req.MemberID,
		PlayerID: req.PlayerID,
	})
	if err != nil {
		h.respondError(ctx, w, "MakePick", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, result)
}

func (h *Handler) GetDraftRosters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftRosters")
	defer span.End()

	rosters, err := h.draftService.GetDraftRosters(ctx, r.PathValue("draftID"))
	if err != nil {
		h.respondError(ctx, w, "GetDraftRosters", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosters)
}
