package geo_test

import (
	"testing"
	"time"

	"herdshare/internal/core/domain/model/geo"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZip(t *testing.T, s string) kernel.ZipCode {
	t.Helper()
	zip, err := kernel.NewZipCode(s)
	require.NoError(t, err)
	return zip
}

func TestTier(t *testing.T) {
	t.Run("should round-trip valid tiers", func(t *testing.T) {
		for _, tier := range []geo.DensityTier{geo.High, geo.Medium, geo.Low} {
			parsed, err := geo.TierFromString(tier.String())
			require.NoError(t, err)
			assert.Equal(t, tier, parsed)
		}
	})

	t.Run("should reject unknown tiers", func(t *testing.T) {
		_, err := geo.TierFromString("URBAN")
		require.Error(t, err)
	})

	t.Run("default surcharges", func(t *testing.T) {
		assert.Equal(t, int64(25), geo.High.DefaultSurchargePerLb())
		assert.Equal(t, int64(50), geo.Medium.DefaultSurchargePerLb())
		assert.Equal(t, int64(75), geo.Low.DefaultSurchargePerLb())
	})

	t.Run("fallback is the medium tier", func(t *testing.T) {
		assert.Equal(t, int64(50), geo.FallbackSurchargePerLb())
	})
}

func TestNewCluster(t *testing.T) {
	t.Run("should create cluster with explicit surcharge", func(t *testing.T) {
		cluster, err := geo.NewCluster(
			kernel.NewUUID(), "Boulder", "CO Front Range",
			[]string{"803"}, 40.015, -105.2705, 25, geo.High, 30)

		require.NoError(t, err)
		require.NoError(t, cluster.Validate())
		assert.Equal(t, int64(30), cluster.SurchargePerLb())
		assert.True(t, cluster.IsActive())
	})

	t.Run("zero surcharge falls back to tier default", func(t *testing.T) {
		cluster, err := geo.NewCluster(
			kernel.NewUUID(), "Rural CO", "CO Rural",
			[]string{"806", "807", "808"}, 38.5, -106.0, 120, geo.Low, 0)

		require.NoError(t, err)
		assert.Equal(t, int64(75), cluster.SurchargePerLb())
	})

	t.Run("should reject bad prefixes", func(t *testing.T) {
		for _, prefixes := range [][]string{nil, {"80"}, {"8032"}, {"80a"}} {
			_, err := geo.NewCluster(
				kernel.NewUUID(), "Denver", "CO", prefixes, 0, 0, 0, geo.High, 25)
			require.Error(t, err, "prefixes %v", prefixes)
		}
	})

	t.Run("should reject negative surcharge", func(t *testing.T) {
		_, err := geo.NewCluster(
			kernel.NewUUID(), "Denver", "CO", []string{"800"}, 0, 0, 0, geo.High, -1)
		require.Error(t, err)
	})
}

func TestCluster_MatchesZip(t *testing.T) {
	cluster, err := geo.NewCluster(
		kernel.NewUUID(), "Denver Metro", "CO Front Range",
		[]string{"800", "801", "802", "803", "804", "805"},
		39.7392, -104.9903, 40, geo.High, 25)
	require.NoError(t, err)

	t.Run("should match by 3-digit prefix", func(t *testing.T) {
		assert.True(t, cluster.MatchesZip(mustZip(t, "80202")))
		assert.True(t, cluster.MatchesZip(mustZip(t, "80501")))
	})

	t.Run("should not match other prefixes", func(t *testing.T) {
		assert.False(t, cluster.MatchesZip(mustZip(t, "80601")))
		assert.False(t, cluster.MatchesZip(mustZip(t, "66101")))
	})
}

func TestRoute(t *testing.T) {
	dropDate := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	t.Run("should create empty active route", func(t *testing.T) {
		route, err := geo.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "CO Front Range", dropDate)

		require.NoError(t, err)
		require.NoError(t, route.Validate())
		assert.True(t, route.IsActive())
		assert.Zero(t, route.CommittedVolumeLbs())
		assert.Zero(t, route.AllocationCount())
	})

	t.Run("add volume accumulates additively", func(t *testing.T) {
		route, err := geo.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "CO", dropDate)
		require.NoError(t, err)

		require.NoError(t, route.AddVolume(270))
		require.NoError(t, route.AddVolume(67.2))

		assert.InDelta(t, 337.2, route.CommittedVolumeLbs(), 0.001)
		assert.Equal(t, 2, route.AllocationCount())
	})

	t.Run("should reject negative volume", func(t *testing.T) {
		route, err := geo.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "CO", dropDate)
		require.NoError(t, err)
		require.Error(t, route.AddVolume(-1))
	})

	t.Run("should require a drop date", func(t *testing.T) {
		_, err := geo.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "CO", time.Time{})
		require.Error(t, err)
	})
}

func TestDensityScore(t *testing.T) {
	testCases := []struct {
		name     string
		count    int
		volume   float64
		expected float64
	}{
		{"empty route", 0, 0, 0},
		{"small volume clamps denominator to one", 2, 50, 40},
		{"standard case", 5, 1000, 10},
		{"capped at one hundred", 50, 100, 100},
		{"exactly at cap", 5, 100, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, geo.DensityScore(tc.count, tc.volume), 0.001)
		})
	}
}

func TestRoute_RecomputeDensity(t *testing.T) {
	route, err := geo.NewRoute(kernel.NewUUID(), kernel.NewUUID(), "CO",
		time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, route.AddVolume(500))
	require.NoError(t, route.AddVolume(500))

	score := route.RecomputeDensity()
	assert.InDelta(t, 4, score, 0.001)
	assert.Equal(t, score, route.DensityScore())
}
