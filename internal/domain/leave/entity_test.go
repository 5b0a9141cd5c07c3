package leave

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCalcTotalDays(t *testing.T) {
	assert.True(t, CalcTotalDays(1, PeriodFullDay).Equal(decimal.NewFromInt(1)))
	assert.True(t, CalcTotalDays(5, PeriodFullDay).Equal(decimal.NewFromInt(5)))

	// AM and PM halve the count, also across multiple days.
	assert.True(t, CalcTotalDays(1, PeriodAM).Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, CalcTotalDays(1, PeriodPM).Equal(decimal.NewFromFloat(0.5)))
	assert.True(t, CalcTotalDays(3, PeriodAM).Equal(decimal.NewFromFloat(1.5)))
}

func TestOverlapErrorUnwrapsToSentinel(t *testing.T) {
	err := &OverlapError{ConflictingStart: 1000, ConflictingEnd: 2000}
	assert.True(t, errors.Is(err, ErrOverlappingLeave))
	assert.Contains(t, err.Error(), "overlap")
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CategoryAnnual.Valid())
	assert.True(t, CategorySpecialHoliday.Valid())
	assert.False(t, Category("VACATION").Valid())

	assert.True(t, PeriodFullDay.Valid())
	assert.False(t, Period("HALF").Valid())

	assert.True(t, StatusPending.Valid())
	assert.False(t, Status("CANCELLED").Valid())
}
