package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSlots(t *testing.T) {
	slots := AllSlots()
	require.Len(t, slots, 32)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "16:45", slots[len(slots)-1])

	t.Run("strictly ascending at 15-minute steps", func(t *testing.T) {
		for i := 1; i < len(slots); i++ {
			prev, err := time.Parse("15:04", slots[i-1])
			require.NoError(t, err)
			cur, err := time.Parse("15:04", slots[i])
			require.NoError(t, err)
			assert.Equal(t, 15*time.Minute, cur.Sub(prev), "between %s and %s", slots[i-1], slots[i])
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		slots[0] = "tampered"
		assert.Equal(t, "09:00", AllSlots()[0])
	})
}

func TestIsValidSlot(t *testing.T) {
	assert.True(t, IsValidSlot("09:00"))
	assert.True(t, IsValidSlot("12:30"))
	assert.True(t, IsValidSlot("16:45"))
	assert.False(t, IsValidSlot("08:45"))
	assert.False(t, IsValidSlot("17:00"))
	assert.False(t, IsValidSlot("09:05"))
	assert.False(t, IsValidSlot("9:00"))
	assert.False(t, IsValidSlot(""))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-09")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 9, d.Day())

	for _, bad := range []string{"2026-2-9", "09/02/2026", "2026-02-30", "tomorrow", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestWeekdayKey(t *testing.T) {
	cases := map[string]string{
		"2026-02-09": "mon",
		"2026-02-10": "tue",
		"2026-02-11": "wed",
		"2026-02-12": "thu",
		"2026-02-13": "fri",
		"2026-02-14": "sat",
		"2026-02-15": "sun",
	}
	for in, want := range cases {
		d, err := ParseDate(in)
		require.NoError(t, err)
		assert.Equal(t, want, WeekdayKey(d), "date %s", in)
	}
}
