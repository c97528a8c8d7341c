package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"herdshare/internal/core/application/usecases/commands"
	"herdshare/internal/core/domain/model/allocation"
	"herdshare/internal/pkg/errs"
)

func writeErrorResponse(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, writeError(e.NewContext(req, rec), err))
	return rec
}

func TestWriteError_OwnershipFailureHidesAllocation(t *testing.T) {
	rec := writeErrorResponse(t, commands.ErrNotAllocationOwner)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Allocation not found")
}

func TestWriteError_UnservedZipIsBadRequest(t *testing.T) {
	rec := writeErrorResponse(t, commands.ErrNoClusterForAllocation)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no active cluster")
}

func TestWriteError_MissingObjectIsNotFound(t *testing.T) {
	rec := writeErrorResponse(t, errs.NewObjectNotFoundError("allocation", "x"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteError_TransitionCarriesAllowedStatuses(t *testing.T) {
	err := allocation.NewStatusTransitionError(allocation.Draft, allocation.Processing)

	rec := writeErrorResponse(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"allowed":["CHECKOUT_STARTED","CANCELED"]`)
}

func TestWriteError_UnclassifiedNeverLeaksDetail(t *testing.T) {
	rec := writeErrorResponse(t, errors.New("pq: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pq:")
}
