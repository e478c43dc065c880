package regionarena

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned for zero or negative sizes and capacities,
	// and for resize targets below the chunk's current usage.
	ErrInvalidArgument = errors.New("regionarena: invalid argument")

	// ErrInvalidAlignment is returned when an alignment is not a power of two.
	// errors.Is(ErrInvalidAlignment, ErrInvalidArgument) reports true.
	ErrInvalidAlignment = errors.WithMessage(ErrInvalidArgument, "alignment must be a power of two")

	// ErrAllocationFailure is returned when the Source cannot reserve a buffer.
	ErrAllocationFailure = errors.New("regionarena: allocation failure")

	// ErrInvalidMark is returned by ResetToMark for marks past the current position.
	ErrInvalidMark = errors.New("regionarena: invalid mark")

	// ErrReleased is returned by any operation on an arena after Release.
	ErrReleased = errors.New("regionarena: use after Release")
)
