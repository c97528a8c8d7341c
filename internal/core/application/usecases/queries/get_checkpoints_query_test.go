package queries_test

import (
	"testing"

	"herdshare/internal/core/application/usecases/queries"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetCheckpointsQuery_Valid(t *testing.T) {
	allocationID := kernel.NewUUID()

	query, err := queries.NewGetCheckpointsQuery(allocationID)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	assert.True(t, query.AllocationID().IsEqual(allocationID))
}

func TestNewGetCheckpointsQuery_InvalidID(t *testing.T) {
	_, err := queries.NewGetCheckpointsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetCheckpointsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetCheckpointsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetCheckpointsQueryIsNotConstructed)
}
