package httpapi

import (
	"net/http"

	"github.com/gridiron-league/pairdraft/internal/usecase"
)

type createLeagueRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=120"`
	CommissionerID    string `json:"commissioner_id" validate:"required"`
	CommissionerEmail string `json:"commissioner_email" validate:"omitempty,email"`
	CommissionerName  string `json:"commissioner_name" validate:"omitempty,max=120"`
}

type joinLeagueRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"display_name" validate:"omitempty,max=120"`
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	var req createLeagueRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(req); err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{
		Name:              req.Name,
		CommissionerID:    req.CommissionerID,
		CommissionerEmail: req.CommissionerEmail,
		CommissionerName:  req.CommissionerName,
	})
	if err != nil {
		h.respondError(ctx, w, "CreateLeague", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, detail)
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	var req joinLeagueRequest
	if err := h.decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(req); err != nil {
		writeError(ctx, w, err)
		return
	}

	member, err := h.leagueService.JoinLeague(ctx, usecase.JoinLeagueInput{
		LeagueID:    r.PathValue("leagueID"),
		UserID:      req.UserID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.respondError(ctx, w, "JoinLeague", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, member)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	detail, err := h.leagueService.GetLeague(ctx, r.PathValue("leagueID"))
	if err != nil {
		h.respondError(ctx, w, "GetLeague", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

func (h *Handler) CreatePairs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePairs")
	defer span.End()

	detail, err := h.leagueService.CreatePairs(ctx, r.PathValue("leagueID"))
	if err != nil {
		h.respondError(ctx, w, "CreatePairs", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, detail)
}
