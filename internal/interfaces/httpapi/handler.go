package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/gridiron-league/pairdraft/internal/draftroom"
	"github.com/gridiron-league/pairdraft/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// Handler exposes the league, pool, and draft use cases over HTTP.
type Handler struct {
	leagueService     *usecase.LeagueService
	playerService     *usecase.PlayerService
	divisionService   *usecase.DivisionService
	draftService      *usecase.DraftService
	rosterSyncService *usecase.RosterSyncService
	rooms             *draftroom.Registry
	logger            *slog.Logger
	validate          *validator.Validate
}

type HandlerConfig struct {
	LeagueService     *usecase.LeagueService
	PlayerService     *usecase.PlayerService
	DivisionService   *usecase.DivisionService
	DraftService      *usecase.DraftService
	RosterSyncService *usecase.RosterSyncService
	Rooms             *draftroom.Registry
	Logger            *slog.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		leagueService:     cfg.LeagueService,
		playerService:     cfg.PlayerService,
		divisionService:   cfg.DivisionService,
		draftService:      cfg.DraftService,
		rosterSyncService: cfg.RosterSyncService,
		rooms:             cfg.Rooms,
		logger:            logger,
		validate:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) decodeBody(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxRequestBodyBytes)
	if err := sonic.ConfigDefault.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", usecase.ErrInvalidInput)
	}
	return nil
}

func (h *Handler) validateRequest(req any) error {
	if err := h.validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				fields = append(fields, ve.Field())
			}
		}
		if len(fields) > 0 {
			return fmt.Errorf("%w: invalid fields: %s", usecase.ErrInvalidInput, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: invalid request", usecase.ErrInvalidInput)
	}
	return nil
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	mapped := mapError(ctx, err)
	if mapped.HTTPStatus >= http.StatusInternalServerError && mapped.HTTPStatus != http.StatusServiceUnavailable {
		h.logger.ErrorContext(ctx, "request failed", "op", op, "error", err)
		writeInternalError(ctx, w)
		return
	}
	writeError(ctx, w, err)
}
