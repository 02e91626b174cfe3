package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/valyala/bytebufferpool"

	"github.com/rinkside/fantasy-hockey/internal/domain/roster"
	"github.com/rinkside/fantasy-hockey/internal/platform/cache"
)

// FantasyLeagueProvider is the third-party fantasy league API surface.
type FantasyLeagueProvider interface {
	FetchLeague(ctx context.Context, leagueID int64) (ExternalFantasyLeague, error)
}

// RosterService reconciles third-party roster names against the canonical
// player table and keeps one imported roster in memory for the save/load
// round trip.
type RosterService struct {
	provider    FantasyLeagueProvider
	table       *PlayerTableService
	leagueCache *cache.Store
	threshold   float64

	mu    sync.RWMutex
	saved []roster.Entry
}

func NewRosterService(
	provider FantasyLeagueProvider,
	table *PlayerTableService,
	leagueCache *cache.Store,
	threshold float64,
) *RosterService {
	if threshold <= 0 || threshold > 1 {
		threshold = roster.DefaultMatchThreshold
	}
	return &RosterService{
		provider:    provider,
		table:       table,
		leagueCache: leagueCache,
		threshold:   threshold,
	}
}

// LeagueRosters fetches one fantasy league and resolves every roster entry.
// Unresolvable names keep the placeholder identity; private leagues surface
// the distinct sentinel from the provider.
func (s *RosterService) LeagueRosters(ctx context.Context, leagueID int64) ([]roster.TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.LeagueRosters")
	defer span.End()

	if leagueID <= 0 {
		return nil, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	out, err := s.leagueCache.GetOrLoad(ctx, strconv.FormatInt(leagueID, 10), func(ctx context.Context) (any, error) {
		return s.provider.FetchLeague(ctx, leagueID)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch fantasy league %d: %w", leagueID, err)
	}
	league, ok := out.(ExternalFantasyLeague)
	if !ok {
		return nil, fmt.Errorf("unexpected cached league type %T", out)
	}

	resolver, err := s.resolver(ctx)
	if err != nil {
		return nil, err
	}

	rosters := make([]roster.TeamRoster, 0, len(league.Teams))
	for _, team := range league.Teams {
		mapped := roster.TeamRoster{
			TeamID:   strconv.FormatInt(team.ID, 10),
			TeamName: team.Name,
			Players:  make([]roster.Resolved, 0, len(team.Entries)),
		}
		for _, entry := range team.Entries {
			mapped.Players = append(mapped.Players, resolver.Resolve(entry))
		}
		rosters = append(rosters, mapped)
	}
	return rosters, nil
}

// ImportCSV reads a two-column roster (player name, fantasy team), validates
// every name against the canonical table, and saves the entries as the active
// roster. The resolved outcome is returned so callers can show which names
// fell back to the placeholder.
func (s *RosterService) ImportCSV(ctx context.Context, r io.Reader) ([]roster.Resolved, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ImportCSV")
	defer span.End()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	entries := make([]roster.Entry, 0, 32)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: malformed csv: %v", ErrInvalidInput, err)
		}
		if len(record) == 0 {
			continue
		}
		name := strings.TrimSpace(record[0])
		if name == "" || strings.EqualFold(name, "playerName") {
			continue
		}
		team := ""
		if len(record) > 1 {
			team = strings.TrimSpace(record[1])
		}
		entries = append(entries, roster.Entry{PlayerName: name, FantasyTeam: team})
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no roster rows in csv", ErrInvalidInput)
	}

	resolver, err := s.resolver(ctx)
	if err != nil {
		return nil, err
	}

	resolved := make([]roster.Resolved, 0, len(entries))
	for _, entry := range entries {
		resolved = append(resolved, resolver.Resolve(entry))
	}

	s.mu.Lock()
	s.saved = entries
	s.mu.Unlock()

	return resolved, nil
}

// ExportCSV renders the saved roster back into the two-column format.
func (s *RosterService) ExportCSV(ctx context.Context) ([]byte, error) {
	_, span := startUsecaseSpan(ctx, "usecase.RosterService.ExportCSV")
	defer span.End()

	s.mu.RLock()
	saved := make([]roster.Entry, len(s.saved))
	copy(saved, s.saved)
	s.mu.RUnlock()

	if len(saved) == 0 {
		return nil, fmt.Errorf("%w: no saved roster", ErrNotFound)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"playerName", "fantasyTeam"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range saved {
		if err := writer.Write([]string{entry.PlayerName, entry.FantasyTeam}); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func (s *RosterService) resolver(ctx context.Context) (*roster.Resolver, error) {
	records, err := s.table.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load canonical names: %w", err)
	}
	return roster.NewResolver(records, s.threshold), nil
}
