package compliance

import (
	"errors"
	"fmt"
	"time"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

// ErrCheckpointIsNotConstructed is returned when a Checkpoint was not created
// through the NewCheckpoint factory method.
var ErrCheckpointIsNotConstructed = errors.New(
	"Checkpoint must be created via NewCheckpoint constructor")

// CheckpointType identifies the kind of cold-chain or documentation check
// recorded against an allocation.
type CheckpointType int

const (
	// CheckpointTypeUnknown represents an invalid or undefined checkpoint type.
	CheckpointTypeUnknown CheckpointType = iota

	// TempAtPickup is a temperature reading taken at rancher pickup.
	TempAtPickup

	// TempAtHandoff is a temperature reading taken at processor handoff.
	TempAtHandoff

	// TempAtDelivery is a temperature reading taken at final delivery.
	TempAtDelivery

	// SealIntact confirms the transport seal was unbroken.
	SealIntact

	// DocUploaded confirms an inspection or chain-of-custody document exists.
	DocUploaded
)

func getCheckpointTypeStrings() map[CheckpointType]string {
	return map[CheckpointType]string{
		CheckpointTypeUnknown: "UNKNOWN",
		TempAtPickup:          "TEMP_AT_PICKUP",
		TempAtHandoff:         "TEMP_AT_HANDOFF",
		TempAtDelivery:        "TEMP_AT_DELIVERY",
		SealIntact:            "SEAL_INTACT",
		DocUploaded:           "DOC_UPLOADED",
	}
}

func getValidCheckpointTypeStrings() map[CheckpointType]string {
	//nolint:exhaustive // CheckpointTypeUnknown is intentionally excluded as it's invalid
	return map[CheckpointType]string{
		TempAtPickup:  "TEMP_AT_PICKUP",
		TempAtHandoff: "TEMP_AT_HANDOFF",
		TempAtDelivery: "TEMP_AT_DELIVERY",
		SealIntact:    "SEAL_INTACT",
		DocUploaded:   "DOC_UPLOADED",
	}
}

// CheckpointTypeFromString parses the wire representation of a checkpoint type.
func CheckpointTypeFromString(s string) (CheckpointType, error) {
	for t, str := range getValidCheckpointTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return CheckpointTypeUnknown, errs.NewValueIsInvalidErrorWithCause("checkpoint type",
		fmt.Errorf("%q is not a valid checkpoint type", s))
}

// Validate checks the CheckpointType is one of the five valid values.
func (t CheckpointType) Validate() error {
	if _, ok := getValidCheckpointTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("checkpoint type",
			fmt.Errorf("%d is not a valid checkpoint type", t))
	}
	return nil
}

// String returns the wire name of the checkpoint type.
func (t CheckpointType) String() string {
	if str, ok := getCheckpointTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// Verdict is the recorded outcome of a checkpoint.
type Verdict int

const (
	// VerdictUnknown represents an invalid or undefined verdict.
	VerdictUnknown Verdict = iota

	// Pass means the checkpoint met its requirement.
	Pass

	// Fail means the checkpoint violated its requirement.
	Fail

	// Pending means the outcome is awaiting review.
	Pending
)

func getVerdictStrings() map[Verdict]string {
	return map[Verdict]string{
		VerdictUnknown: "UNKNOWN",
		Pass:           "PASS",
		Fail:           "FAIL",
		Pending:        "PENDING",
	}
}

func getValidVerdictStrings() map[Verdict]string {
	//nolint:exhaustive // VerdictUnknown is intentionally excluded as it's invalid
	return map[Verdict]string{
		Pass:    "PASS",
		Fail:    "FAIL",
		Pending: "PENDING",
	}
}

// VerdictFromString parses the wire representation of a verdict.
func VerdictFromString(s string) (Verdict, error) {
	for v, str := range getValidVerdictStrings() {
		if str == s {
			return v, nil
		}
	}
	return VerdictUnknown, errs.NewValueIsInvalidErrorWithCause("verdict",
		fmt.Errorf("%q is not a valid verdict", s))
}

// Validate checks the Verdict is one of the three valid values.
func (v Verdict) Validate() error {
	if _, ok := getValidVerdictStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("verdict",
			fmt.Errorf("%d is not a valid verdict", v))
	}
	return nil
}

// String returns the wire name of the verdict.
func (v Verdict) String() string {
	if str, ok := getVerdictStrings()[v]; ok {
		return str
	}
	return "UNKNOWN"
}

// Checkpoint is one immutable compliance record against an allocation.
// Checkpoints are append-only: they are never updated or deleted, and a
// correction is recorded as a new checkpoint.
type Checkpoint struct {
	id           kernel.UUID
	allocationID kernel.UUID
	kind         CheckpointType
	verdict      Verdict
	valueCelsius *float64
	documentRef  string
	notes        string
	recordedBy   kernel.UUID
	recordedAt   time.Time

	isConstructed bool
}

// NewCheckpoint creates an immutable compliance checkpoint. valueCelsius is
// required for temperature checkpoint types and ignored otherwise;
// documentRef is required for DOC_UPLOADED.
func NewCheckpoint(
	id kernel.UUID,
	allocationID kernel.UUID,
	kind CheckpointType,
	verdict Verdict,
	valueCelsius *float64,
	documentRef string,
	notes string,
	recordedBy kernel.UUID,
) (*Checkpoint, error) {
	c := &Checkpoint{
		notes:         notes,
		recordedAt:    time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setAllocationID(allocationID),
		c.setKind(kind),
		c.setVerdict(verdict),
		c.setRecordedBy(recordedBy),
	); err != nil {
		return nil, err
	}

	switch kind {
	case TempAtPickup, TempAtHandoff, TempAtDelivery:
		if valueCelsius == nil {
			return nil, errs.NewValueIsRequiredError("temperature value")
		}
		c.valueCelsius = valueCelsius
	case DocUploaded:
		if documentRef == "" {
			return nil, errs.NewValueIsRequiredError("document reference")
		}
		c.documentRef = documentRef
	default:
		c.documentRef = documentRef
	}

	return c, nil
}

// RestoreCheckpoint reconstructs a Checkpoint from persistence.
func RestoreCheckpoint(
	id kernel.UUID,
	allocationID kernel.UUID,
	kind CheckpointType,
	verdict Verdict,
	valueCelsius *float64,
	documentRef string,
	notes string,
	recordedBy kernel.UUID,
	recordedAt time.Time,
) (*Checkpoint, error) {
	c := &Checkpoint{
		valueCelsius:  valueCelsius,
		documentRef:   documentRef,
		notes:         notes,
		recordedAt:    recordedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setAllocationID(allocationID),
		c.setKind(kind),
		c.setVerdict(verdict),
		c.setRecordedBy(recordedBy),
	); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate ensures the Checkpoint was created through a constructor.
func (c *Checkpoint) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCheckpointIsNotConstructed
	}
	return nil
}

// ID returns the checkpoint's unique identifier.
func (c *Checkpoint) ID() kernel.UUID { return c.id }

// AllocationID returns the allocation the checkpoint belongs to.
func (c *Checkpoint) AllocationID() kernel.UUID { return c.allocationID }

// Kind returns the checkpoint type.
func (c *Checkpoint) Kind() CheckpointType { return c.kind }

// Verdict returns the recorded outcome.
func (c *Checkpoint) Verdict() Verdict { return c.verdict }

// ValueCelsius returns the temperature reading, or nil for non-temperature types.
func (c *Checkpoint) ValueCelsius() *float64 { return c.valueCelsius }

// DocumentRef returns the linked document reference, if any.
func (c *Checkpoint) DocumentRef() string { return c.documentRef }

// Notes returns free-form operator notes.
func (c *Checkpoint) Notes() string { return c.notes }

// RecordedBy returns the actor who recorded the checkpoint.
func (c *Checkpoint) RecordedBy() kernel.UUID { return c.recordedBy }

// RecordedAt returns the recording timestamp.
func (c *Checkpoint) RecordedAt() time.Time { return c.recordedAt }

func (c *Checkpoint) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Checkpoint) setAllocationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.allocationID = id
	return nil
}

func (c *Checkpoint) setKind(kind CheckpointType) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *Checkpoint) setVerdict(verdict Verdict) error {
	if err := verdict.Validate(); err != nil {
		return err
	}
	c.verdict = verdict
	return nil
}

func (c *Checkpoint) setRecordedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.recordedBy = id
	return nil
}
