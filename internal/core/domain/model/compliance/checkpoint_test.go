package compliance_test

import (
	"testing"
	"time"

	"herdshare/internal/core/domain/model/compliance"
	"herdshare/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointTypeFromString(t *testing.T) {
	t.Run("should round-trip valid types", func(t *testing.T) {
		types := []compliance.CheckpointType{
			compliance.TempAtPickup,
			compliance.TempAtHandoff,
			compliance.TempAtDelivery,
			compliance.SealIntact,
			compliance.DocUploaded,
		}
		for _, kind := range types {
			parsed, err := compliance.CheckpointTypeFromString(kind.String())
			require.NoError(t, err)
			assert.Equal(t, kind, parsed)
		}
	})

	t.Run("should reject unknown types", func(t *testing.T) {
		_, err := compliance.CheckpointTypeFromString("TEMP_AT_WAREHOUSE")
		require.Error(t, err)
	})
}

func TestVerdictFromString(t *testing.T) {
	t.Run("should round-trip valid verdicts", func(t *testing.T) {
		for _, verdict := range []compliance.Verdict{compliance.Pass, compliance.Fail, compliance.Pending} {
			parsed, err := compliance.VerdictFromString(verdict.String())
			require.NoError(t, err)
			assert.Equal(t, verdict, parsed)
		}
	})

	t.Run("should reject unknown verdicts", func(t *testing.T) {
		_, err := compliance.VerdictFromString("MAYBE")
		require.Error(t, err)
	})
}

func TestNewCheckpoint(t *testing.T) {
	t.Run("should record a temperature checkpoint", func(t *testing.T) {
		temp := -2.5
		checkpoint, err := compliance.NewCheckpoint(
			kernel.NewUUID(), kernel.NewUUID(),
			compliance.TempAtPickup, compliance.Pass,
			&temp, "", "reefer unit 4", kernel.NewUUID())

		require.NoError(t, err)
		require.NoError(t, checkpoint.Validate())
		assert.Equal(t, compliance.TempAtPickup, checkpoint.Kind())
		assert.Equal(t, compliance.Pass, checkpoint.Verdict())
		require.NotNil(t, checkpoint.ValueCelsius())
		assert.Equal(t, temp, *checkpoint.ValueCelsius())
		assert.Equal(t, "reefer unit 4", checkpoint.Notes())
		assert.False(t, checkpoint.RecordedAt().IsZero())
	})

	t.Run("temperature types require a reading", func(t *testing.T) {
		for _, kind := range []compliance.CheckpointType{
			compliance.TempAtPickup, compliance.TempAtHandoff, compliance.TempAtDelivery,
		} {
			_, err := compliance.NewCheckpoint(
				kernel.NewUUID(), kernel.NewUUID(), kind, compliance.Pass,
				nil, "", "", kernel.NewUUID())
			require.Error(t, err, "type %s", kind)
			assert.Contains(t, err.Error(), "temperature value")
		}
	})

	t.Run("document checkpoint requires a reference", func(t *testing.T) {
		_, err := compliance.NewCheckpoint(
			kernel.NewUUID(), kernel.NewUUID(),
			compliance.DocUploaded, compliance.Pending,
			nil, "", "", kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "document reference")
	})

	t.Run("seal checkpoint needs neither reading nor document", func(t *testing.T) {
		checkpoint, err := compliance.NewCheckpoint(
			kernel.NewUUID(), kernel.NewUUID(),
			compliance.SealIntact, compliance.Fail,
			nil, "", "seal broken on arrival", kernel.NewUUID())

		require.NoError(t, err)
		assert.Nil(t, checkpoint.ValueCelsius())
	})

	t.Run("should collect identifier errors", func(t *testing.T) {
		_, err := compliance.NewCheckpoint(
			kernel.UUID{}, kernel.UUID{},
			compliance.CheckpointTypeUnknown, compliance.VerdictUnknown,
			nil, "", "", kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var checkpoint compliance.Checkpoint
		require.ErrorIs(t, checkpoint.Validate(), compliance.ErrCheckpointIsNotConstructed)
	})
}

func TestRestoreCheckpoint(t *testing.T) {
	t.Run("should restore persisted state verbatim", func(t *testing.T) {
		recordedAt := time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC)
		checkpoint, err := compliance.RestoreCheckpoint(
			kernel.NewUUID(), kernel.NewUUID(),
			compliance.DocUploaded, compliance.Pass,
			nil, "s3://docs/coa-123.pdf", "", kernel.NewUUID(), recordedAt)

		require.NoError(t, err)
		assert.Equal(t, "s3://docs/coa-123.pdf", checkpoint.DocumentRef())
		assert.Equal(t, recordedAt, checkpoint.RecordedAt())
	})
}
