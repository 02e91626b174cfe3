package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/rinkside/fantasy-hockey/internal/domain/roster"
	"github.com/rinkside/fantasy-hockey/internal/platform/logging"
	"github.com/rinkside/fantasy-hockey/internal/usecase"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/fhl"

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Season     string
	Timeout    time.Duration
	Logger     *logging.Logger
}

// Client reads public ESPN fantasy hockey leagues. Private leagues need
// cookie auth this client deliberately does not carry; they surface as the
// private-league sentinel so callers can explain the failure to the user.
type Client struct {
	httpClient *http.Client
	baseURL    string
	season     string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		season:     strings.TrimSpace(cfg.Season),
		logger:     logger,
	}
}

type leagueResponse struct {
	ID       int64          `json:"id"`
	SeasonID int            `json:"seasonId"`
	Settings leagueSettings `json:"settings"`
	Teams    []leagueTeam   `json:"teams"`
}

type leagueSettings struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type leagueTeam struct {
	ID           int64        `json:"id"`
	Abbreviation string       `json:"abbrev"`
	Name         string       `json:"name"`
	Roster       leagueRoster `json:"roster"`
	Record       teamRecord   `json:"record"`
}

type leagueRoster struct {
	Entries []rosterEntry `json:"entries"`
}

type teamRecord struct {
	Overall recordDetails `json:"overall"`
}

type recordDetails struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

type rosterEntry struct {
	PlayerPoolEntry playerPoolEntry `json:"playerPoolEntry"`
	LineupSlotID    int             `json:"lineupSlotId"`
}

type playerPoolEntry struct {
	ID     int64  `json:"id"`
	Player player `json:"player"`
}

type player struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// FetchLeague returns the named teams and raw roster entries of one league.
// Player names come back as ESPN free text; canonical identity attachment is
// the caller's job.
func (c *Client) FetchLeague(ctx context.Context, leagueID int64) (usecase.ExternalFantasyLeague, error) {
	if leagueID <= 0 {
		return usecase.ExternalFantasyLeague{}, fmt.Errorf("%w: league id must be greater than zero", usecase.ErrInvalidInput)
	}

	fullURL := fmt.Sprintf(
		"%s/seasons/%s/segments/0/leagues/%d?view=mRoster&view=mTeam&view=mStandings",
		c.baseURL, c.season, leagueID,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return usecase.ExternalFantasyLeague{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "espn request failed", "league_id", leagueID, "error", err)
		return usecase.ExternalFantasyLeague{}, fmt.Errorf("%w: fantasy provider unreachable", usecase.ErrDependencyUnavailable)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return usecase.ExternalFantasyLeague{}, fmt.Errorf("%w: read response body", usecase.ErrDependencyUnavailable)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return usecase.ExternalFantasyLeague{}, fmt.Errorf("%w: league %d requires authentication", usecase.ErrPrivateLeague, leagueID)
	case resp.StatusCode == http.StatusNotFound:
		return usecase.ExternalFantasyLeague{}, fmt.Errorf("%w: league %d", usecase.ErrNotFound, leagueID)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.logger.WarnContext(ctx, "espn unexpected status", "league_id", leagueID, "status", resp.StatusCode)
		return usecase.ExternalFantasyLeague{}, fmt.Errorf("%w: fantasy provider status=%d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	}

	var payload leagueResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return usecase.ExternalFantasyLeague{}, fmt.Errorf("decode fantasy league payload: %w", err)
	}

	return mapLeague(payload), nil
}

func mapLeague(payload leagueResponse) usecase.ExternalFantasyLeague {
	out := usecase.ExternalFantasyLeague{
		ID:    payload.ID,
		Name:  payload.Settings.Name,
		Size:  payload.Settings.Size,
		Teams: make([]usecase.ExternalFantasyTeam, 0, len(payload.Teams)),
	}
	for _, team := range payload.Teams {
		name := strings.TrimSpace(team.Name)
		if name == "" {
			name = strings.TrimSpace(team.Abbreviation)
		}
		mapped := usecase.ExternalFantasyTeam{
			ID:      team.ID,
			Name:    name,
			Abbrev:  strings.TrimSpace(team.Abbreviation),
			Wins:    team.Record.Overall.Wins,
			Losses:  team.Record.Overall.Losses,
			Ties:    team.Record.Overall.Ties,
			Entries: make([]roster.Entry, 0, len(team.Roster.Entries)),
		}
		for _, entry := range team.Roster.Entries {
			playerName := strings.TrimSpace(entry.PlayerPoolEntry.Player.FullName)
			if playerName == "" {
				continue
			}
			mapped.Entries = append(mapped.Entries, roster.Entry{
				PlayerName:  playerName,
				FantasyTeam: name,
			})
		}
		out.Teams = append(out.Teams, mapped)
	}
	return out
}
