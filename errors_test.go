package odorsearch

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/odorsearch/diffevol"
	"github.com/hupe1980/odorsearch/distance"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	err := translateError(fmt.Errorf("%w: 0", diffevol.ErrInvalidVarCount))
	assert.ErrorIs(t, err, ErrNoChannels)
	assert.ErrorIs(t, err, diffevol.ErrInvalidVarCount)

	err = translateError(fmt.Errorf("%w: generation 2", diffevol.ErrNoCandidate))
	assert.ErrorIs(t, err, ErrNoPendingCandidate)

	other := errors.New("other")
	assert.Equal(t, other, translateError(other))
}

func TestTypedErrors(t *testing.T) {
	dm := &ErrDimensionMismatch{Expected: 3, Actual: 2, cause: distance.ErrDimensionMismatch}
	assert.Equal(t, "dimension mismatch: expected 3, got 2", dm.Error())
	assert.ErrorIs(t, dm, distance.ErrDimensionMismatch)

	uk := &ErrUnsupportedKernel{Kernel: distance.KernelManhattan, cause: distance.ErrUnsupportedKernel}
	assert.Equal(t, "unsupported kernel: Manhattan", uk.Error())
	assert.ErrorIs(t, uk, distance.ErrUnsupportedKernel)

	assert.Nil(t, (&ErrDimensionMismatch{}).Unwrap())
}
