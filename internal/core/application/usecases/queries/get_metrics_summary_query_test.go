package queries_test

import (
	"testing"
	"time"

	"herdshare/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetMetricsSummaryQuery_DefaultsToTrailing30Days(t *testing.T) {
	query, err := queries.NewGetMetricsSummaryQuery(time.Time{}, time.Time{})
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.InDelta(t, 30*24*time.Hour, query.To().Sub(query.From()), float64(time.Minute))
}

func TestNewGetMetricsSummaryQuery_KeepsExplicitRange(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	query, err := queries.NewGetMetricsSummaryQuery(from, to)
	require.NoError(t, err)

	assert.Equal(t, from, query.From())
	assert.Equal(t, to, query.To())
}

func TestNewGetMetricsSummaryQuery_RejectsInvertedRange(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := queries.NewGetMetricsSummaryQuery(from, to)
	require.Error(t, err)
}

func TestGetMetricsSummaryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetMetricsSummaryQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetMetricsSummaryQueryIsNotConstructed)
}
