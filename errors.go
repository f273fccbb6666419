package quadmul

import "errors"

// Sentinel errors returned by the engine. Callers match them with
// errors.Is; returned errors may wrap these with detail about the
// offending value.
var (
	// ErrInvalidSize reports a dimension that is not a positive power of
	// two, or a block size that cannot tile the matrix.
	ErrInvalidSize = errors.New("quadmul: size must be a positive power of two")

	// ErrInvalidDimension reports operand storage whose length disagrees
	// with the stated dimension or with the other operand.
	ErrInvalidDimension = errors.New("quadmul: operand length mismatch")

	// ErrAllocation reports that temporary storage could not be obtained:
	// the request exceeds the engine's allocation ceiling. Multiplies that
	// fail this way can be retried with Strassen disabled to lower the
	// temporary-storage demand.
	ErrAllocation = errors.New("quadmul: allocation over limit")

	// ErrInvalidLayout reports a matrix handed to an operation that
	// expects the other storage layout.
	ErrInvalidLayout = errors.New("quadmul: wrong matrix layout")
)
