package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSlotSchedule(t *testing.T) Schedule {
	t.Helper()
	return Schedule{
		NewTimeslot(NewLocalTime(14, 0), 20),
		NewTimeslot(NewLocalTime(14, 20), 20),
	}
}

func TestNewTimeslot(t *testing.T) {
	slot := NewTimeslot(NewLocalTime(14, 0), 20)

	assert.Equal(t, NewLocalTime(14, 0), slot.Time)
	assert.Equal(t, NewLocalTime(14, 20), slot.EndTime)
	assert.Empty(t, slot.Categories)
}

func TestTimeslotOccupancy(t *testing.T) {
	slot := NewTimeslot(NewLocalTime(14, 0), 20)
	slot.Assign(1, 42)
	slot.Assign(2, 42)
	slot.Assign(3, 7)

	assert.True(t, slot.BusyFor(1))
	assert.False(t, slot.BusyFor(4))
	assert.True(t, slot.ContainsTeam(42))
	assert.False(t, slot.ContainsTeam(99))
	assert.Equal(t, 2, slot.CategoryCountFor(42))
	assert.Equal(t, 1, slot.CategoryCountFor(7))

	teamNumber, ok := slot.TeamFor(3)
	require.True(t, ok)
	assert.Equal(t, 7, teamNumber)

	slot.Unassign(3)
	assert.False(t, slot.BusyFor(3))

	slot.Clear()
	assert.False(t, slot.ContainsTeam(42))
}

func TestTimeslotOverlaps(t *testing.T) {
	slot := NewTimeslot(NewLocalTime(14, 0), 20)

	assert.True(t, slot.Overlaps(NewLocalTime(14, 10), NewLocalTime(14, 30)))
	assert.True(t, slot.Overlaps(NewLocalTime(13, 0), NewLocalTime(15, 0)))

	// Intervals are half-open: touching endpoints do not overlap.
	assert.False(t, slot.Overlaps(NewLocalTime(14, 20), NewLocalTime(14, 40)))
	assert.False(t, slot.Overlaps(NewLocalTime(13, 40), NewLocalTime(14, 0)))
}

func TestScheduleShift(t *testing.T) {
	schedule := twoSlotSchedule(t)
	schedule.Shift(10)

	assert.Equal(t, NewLocalTime(14, 10), schedule[0].Time)
	assert.Equal(t, NewLocalTime(14, 30), schedule[0].EndTime)
	assert.Equal(t, NewLocalTime(14, 30), schedule[1].Time)
	assert.Equal(t, NewLocalTime(14, 50), schedule[1].EndTime)
}

func TestScheduleShiftBackward(t *testing.T) {
	schedule := twoSlotSchedule(t)
	schedule.Shift(-30)

	assert.Equal(t, NewLocalTime(13, 30), schedule[0].Time)
	assert.Equal(t, NewLocalTime(13, 50), schedule[1].Time)
}

func TestScheduleGrowSlots(t *testing.T) {
	schedule := twoSlotSchedule(t)
	schedule.GrowSlots(5)

	// The first slot's start does not move; growth accumulates.
	assert.Equal(t, NewLocalTime(14, 0), schedule[0].Time)
	assert.Equal(t, NewLocalTime(14, 25), schedule[0].EndTime)
	assert.Equal(t, NewLocalTime(14, 25), schedule[1].Time)
	assert.Equal(t, NewLocalTime(14, 50), schedule[1].EndTime)
}

func TestScheduleGrowSlotsShrink(t *testing.T) {
	schedule := twoSlotSchedule(t)
	schedule.GrowSlots(-5)

	assert.Equal(t, NewLocalTime(14, 0), schedule[0].Time)
	assert.Equal(t, NewLocalTime(14, 15), schedule[0].EndTime)
	assert.Equal(t, NewLocalTime(14, 15), schedule[1].Time)
	assert.Equal(t, NewLocalTime(14, 30), schedule[1].EndTime)
}

func TestScheduleSort(t *testing.T) {
	late := NewTimeslot(NewLocalTime(15, 0), 20)
	early := NewTimeslot(NewLocalTime(9, 0), 20)
	middle := NewTimeslot(NewLocalTime(12, 0), 20)
	schedule := Schedule{late, early, middle}

	schedule.Sort()

	assert.Equal(t, Schedule{early, middle, late}, schedule)
}

func TestScheduleAddSlot(t *testing.T) {
	schedule := twoSlotSchedule(t)

	slot := schedule.AddSlot(20)
	require.NotNil(t, slot)
	assert.Len(t, schedule, 3)
	assert.Equal(t, NewLocalTime(14, 40), slot.Time)
	assert.Equal(t, NewLocalTime(15, 0), slot.EndTime)
}

func TestScheduleAddSlotEmpty(t *testing.T) {
	schedule := Schedule{}
	assert.Nil(t, schedule.AddSlot(20))
	assert.Empty(t, schedule)
}

func TestScheduleSlotAt(t *testing.T) {
	schedule := twoSlotSchedule(t)

	slot, ok := schedule.SlotAt(NewLocalTime(14, 20))
	require.True(t, ok)
	assert.Same(t, schedule[1], slot)

	_, ok = schedule.SlotAt(NewLocalTime(16, 0))
	assert.False(t, ok)
}
