package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTradeService_CompareSymmetry(t *testing.T) {
	t.Parallel()

	svc := NewTradeService(newTableService(seedProvider()))

	forward, err := svc.Compare(context.Background(), []string{"Connor McDavid"}, []string{"Leon Draisaitl"})
	require.NoError(t, err)
	reverse, err := svc.Compare(context.Background(), []string{"Leon Draisaitl"}, []string{"Connor McDavid"})
	require.NoError(t, err)

	require.Equal(t, forward.Net, -reverse.Net)
	for stat, net := range forward.PerStatNet {
		require.Equal(t, net, -reverse.PerStatNet[stat])
	}
}

func TestTradeService_UnknownNamesReported(t *testing.T) {
	t.Parallel()

	svc := NewTradeService(newTableService(seedProvider()))

	out, err := svc.Compare(context.Background(), []string{"Connor McDavid", "Ghost Player"}, nil)
	require.NoError(t, err)
	require.Contains(t, out.Unmatched, "Ghost Player")
}

func TestTradeService_EmptyComparisonRejected(t *testing.T) {
	t.Parallel()

	svc := NewTradeService(newTableService(seedProvider()))

	_, err := svc.Compare(context.Background(), []string{"  "}, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}
