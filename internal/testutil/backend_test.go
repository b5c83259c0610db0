package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/stratametrics/internal/app/system/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_ServesFixtures(t *testing.T) {
	b := NewBackend(t)
	api := b.Client(t).Dashboard()

	s, err := api.Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s.TotalProtocols)
	assert.Equal(t, 42.0, *s.TotalProtocols)

	mp, err := api.MarketPerformance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"UNI", "AAVE"}, mp.Protocols)
	assert.Equal(t, "7", b.LastQuery("/dashboard/market-performance").Get("days"))
	assert.Equal(t, 1, b.Hits("/dashboard/market-performance"))
}

func TestBackend_Fail(t *testing.T) {
	b := NewBackend(t)
	b.Fail("/dashboard/summary", http.StatusBadGateway)

	_, err := b.Client(t).Dashboard().Summary(context.Background())
	require.Error(t, err)
	assert.Equal(t, apiclient.KindStatus, apiclient.KindOf(err))
}

func TestBackend_HangHonorsCancel(t *testing.T) {
	b := NewBackend(t)
	b.Hang("/dashboard/gas-analysis")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := b.Client(t).Dashboard().GasAnalysis(ctx, 30)
	require.Error(t, err)
	assert.Equal(t, apiclient.KindTransport, apiclient.KindOf(err))
}
