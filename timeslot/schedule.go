package timeslot

import "sort"

// Schedule is an ordered sequence of timeslots for one award division.
type Schedule []*Timeslot

// Sort orders the slots chronologically by start time. Needed after
// manual edits or added slots that may be out of order.
func (s Schedule) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].Time.Before(s[j].Time)
	})
}

// Shift moves every slot by the given number of minutes, preserving
// slot durations and relative order.
func (s Schedule) Shift(minutes int) {
	for _, slot := range s {
		slot.Time = slot.Time.AddMinutes(minutes)
		slot.EndTime = slot.EndTime.AddMinutes(minutes)
	}
}

// GrowSlots adds the given number of minutes to the duration of every
// slot, sliding later slots forward so that slots stay back to back.
// Slot i's start moves by i*minutes and its end by (i+1)*minutes; the
// first slot's start time does not change.
func (s Schedule) GrowSlots(minutes int) {
	addToStart := 0
	addToEnd := minutes
	for _, slot := range s {
		slot.Time = slot.Time.AddMinutes(addToStart)
		slot.EndTime = slot.EndTime.AddMinutes(addToEnd)

		addToStart = addToEnd
		addToEnd += minutes
	}
}

// AddSlot appends one empty timeslot immediately after the last slot's
// end time. It returns nil for an empty schedule, which has no anchor
// to append after.
func (s *Schedule) AddSlot(durationMinutes int) *Timeslot {
	if len(*s) == 0 {
		return nil
	}
	last := (*s)[len(*s)-1]
	slot := NewTimeslot(last.EndTime, durationMinutes)
	*s = append(*s, slot)
	return slot
}

// SlotAt returns the slot whose start time equals the given time.
func (s Schedule) SlotAt(start LocalTime) (*Timeslot, bool) {
	for _, slot := range s {
		if slot.Time.Equal(start) {
			return slot, true
		}
	}
	return nil, false
}
