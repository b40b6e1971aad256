package httpapi

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

type RouterConfig struct {
	Handler        *Handler
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter wires the route table and the middleware chain. Tracing sits
// outermost so request logs can carry trace ids.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := cfg.Handler

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.Healthz)

	mux.HandleFunc("POST /api/leagues", h.CreateLeague)
	mux.HandleFunc("GET /api/leagues/{leagueID}", h.GetLeague)
	mux.HandleFunc("POST /api/leagues/{leagueID}/join", h.JoinLeague)
	mux.HandleFunc("POST /api/leagues/{leagueID}/pairs", h.CreatePairs)

	mux.HandleFunc("GET /api/players", h.ListPlayers)
	mux.HandleFunc("GET /api/players/{playerID}", h.GetPlayer)
	mux.HandleFunc("POST /api/players/sync", h.SyncRosters)

	mux.HandleFunc("POST /api/pools/divide", h.RunDivision)
	mux.HandleFunc("GET /api/pools", h.ListPools)
	mux.HandleFunc("GET /api/pools/{poolNumber}", h.GetPool)

	mux.HandleFunc("POST /api/pairs/{pairID}/draft", h.StartDraft)
	mux.HandleFunc("GET /api/drafts/{draftID}", h.GetDraft)
	mux.HandleFunc("POST /api/drafts/{draftID}/picks", h.MakePick)
	mux.HandleFunc("GET /api/drafts/{draftID}/rosters", h.GetDraftRosters)
	mux.HandleFunc("GET /api/drafts/{draftID}/ws", h.DraftRoomWS)

	var root http.Handler = recoverPanic(logger, mux)
	root = CORS(cfg.AllowedOrigins, root)
	root = RequestLogging(logger, root)
	root = RequestTracing(root)

	return root
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered",
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
