package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rinkside/fantasy-hockey/internal/domain/stats"
)

// TradeService evaluates hypothetical trades against the current table.
type TradeService struct {
	table *PlayerTableService
}

func NewTradeService(table *PlayerTableService) *TradeService {
	return &TradeService{table: table}
}

// Compare scores a proposed trade: rest-of-season fantasy point totals for
// each side and the per-stat net impact from the sending side's perspective.
// Names that do not match the canonical table are reported, not fatal.
func (s *TradeService) Compare(ctx context.Context, sending, receiving []string) (stats.TradeComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Compare")
	defer span.End()

	sending = cleanNames(sending)
	receiving = cleanNames(receiving)
	if len(sending) == 0 && len(receiving) == 0 {
		return stats.TradeComparison{}, fmt.Errorf("%w: at least one player name is required", ErrInvalidInput)
	}

	records, err := s.table.Snapshot(ctx)
	if err != nil {
		return stats.TradeComparison{}, fmt.Errorf("load records for trade: %w", err)
	}

	return stats.CompareTrade(records, s.table.Weights(), sending, receiving), nil
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
