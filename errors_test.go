package mgrs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geotrans/mgrs"
)

func TestFaultError(t *testing.T) {
	assert.Equal(t, "mgrs: latitude out of range", mgrs.ErrLatitude.Error())
	assert.Equal(t, "mgrs: invalid MGRS string; zone out of range", (mgrs.ErrString | mgrs.ErrZone).Error())
}

func TestFaultIs(t *testing.T) {
	var err error = mgrs.ErrLatitude | mgrs.ErrLongitude

	assert.ErrorIs(t, err, mgrs.ErrLatitude)
	assert.ErrorIs(t, err, mgrs.ErrLongitude)
	assert.NotErrorIs(t, err, mgrs.ErrZone)
	assert.ErrorIs(t, err, mgrs.ErrLatitude|mgrs.ErrLongitude)
	assert.NotErrorIs(t, err, mgrs.ErrLatitude|mgrs.ErrZone)

	wrapped := fmt.Errorf("converting: %w", err)
	assert.ErrorIs(t, wrapped, mgrs.ErrLongitude)
	assert.Equal(t, mgrs.ErrLatitude|mgrs.ErrLongitude, mgrs.FaultOf(wrapped))
}

func TestFaultOf(t *testing.T) {
	assert.Zero(t, mgrs.FaultOf(nil))
	assert.Zero(t, mgrs.FaultOf(errors.New("other")))
	assert.Equal(t, mgrs.ErrAxis, mgrs.FaultOf(mgrs.ErrAxis))
}

func TestFaults(t *testing.T) {
	f := mgrs.ErrHemisphere | mgrs.ErrLatitude | mgrs.ErrPrecision
	assert.Equal(t, []mgrs.Fault{mgrs.ErrLatitude, mgrs.ErrPrecision, mgrs.ErrHemisphere}, f.Faults())
	assert.True(t, f.Has(mgrs.ErrPrecision))
	assert.False(t, f.Has(mgrs.ErrString))
	assert.False(t, f.Has(0))
	assert.Empty(t, mgrs.Fault(0).Faults())
}
