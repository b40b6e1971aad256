// Package sleeper wraps the public Sleeper NFL API as a roster feed.
package sleeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gridiron-league/pairdraft/internal/platform/logging"
	"github.com/gridiron-league/pairdraft/internal/platform/resilience"
	"github.com/gridiron-league/pairdraft/internal/usecase"
)

const defaultBaseURL = "https://api.sleeper.app/v1"

// The full players payload runs to roughly 15 MB.
const maxResponseBytes = 64 << 20

var errSleeperTransient = crerr.New("sleeper transient failure")

type ClientConfig struct {
	HTTPClient       *http.Client
	BaseURL          string
	Timeout          time.Duration
	MaxRetries       int
	BreakerThreshold int
	BreakerCooldown  time.Duration
	Logger           *logging.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.Breaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 60 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    resilience.NewBreaker(cfg.BreakerThreshold, cfg.BreakerCooldown),
	}
}

type sleeperPlayerModel struct {
	PlayerID  string `json:"player_id"`
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Team      string `json:"team"`
	Position  string `json:"position"`
	Age       int    `json:"age"`
	Status    string `json:"status"`
}

// FetchAllPlayers pulls the complete NFL player map. Sleeper keys team
// defenses by their team code with no full name, so names fall back to
// first/last and finally the player id.
func (c *Client) FetchAllPlayers(ctx context.Context) ([]usecase.FeedPlayer, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "sleeper circuit breaker rejected request")
		return nil, fmt.Errorf("%w: roster feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	raw, err := c.executeRequest(ctx, c.baseURL+"/players/nfl")
	if err != nil {
		if crerr.Is(err, errSleeperTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return nil, err
	}
	c.breaker.RecordSuccess()

	var byID map[string]sleeperPlayerModel
	if err := sonic.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("decode sleeper players payload: %w", err)
	}

	out := make([]usecase.FeedPlayer, 0, len(byID))
	for id, model := range byID {
		sleeperID := strings.TrimSpace(model.PlayerID)
		if sleeperID == "" {
			sleeperID = strings.TrimSpace(id)
		}
		out = append(out, usecase.FeedPlayer{
			SleeperID: sleeperID,
			Name:      resolvePlayerName(model, sleeperID),
			Team:      strings.TrimSpace(model.Team),
			Position:  strings.TrimSpace(model.Position),
			Age:       model.Age,
			Status:    strings.TrimSpace(model.Status),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].SleeperID < out[j].SleeperID })
	return out, nil
}

func resolvePlayerName(model sleeperPlayerModel, sleeperID string) string {
	if name := strings.TrimSpace(model.FullName); name != "" {
		return name
	}
	first := strings.TrimSpace(model.FirstName)
	last := strings.TrimSpace(model.LastName)
	if first != "" || last != "" {
		return strings.TrimSpace(first + " " + last)
	}
	return sleeperID
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSleeperTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errSleeperTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: feed status=%d", errSleeperTransient, resp.StatusCode)
			default:
				return nil, fmt.Errorf("feed status=%d", resp.StatusCode)
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("feed request failed")
	}
	c.logger.WarnContext(ctx, "sleeper request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
