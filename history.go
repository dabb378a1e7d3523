package drip

import (
	"iter"
	"slices"
)

// PriceHistory stores a chronological series of closing prices, each
// associated with a specific date. Dates are unique and the series is
// always sorted. The series is sparse: weekends and holidays are
// simply absent.
type PriceHistory struct {
	days   []Date
	closes []Money
}

// Len returns the number of observations in the history.
func (h *PriceHistory) Len() int { return len(h.days) }

// Latest returns the most recent date and close in the history.
// If the history is empty, it returns zero values.
func (h *PriceHistory) Latest() (day Date, close Money) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, Money{}
	}
	return h.days[last], h.closes[last]
}

// Append adds an observation to the history.
//
// An existing close at that date is overwritten.
func (h *PriceHistory) Append(on Date, close Money) *PriceHistory {
	i, found := h.search(on)
	if found {
		// Replace, giving higher priority to the last data.
		h.closes[i] = close
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.closes = slices.Insert(h.closes, i, close)
	return h
}

// Get returns the close at 'day' and true, or zero value and false.
func (h *PriceHistory) Get(day Date) (Money, bool) {
	if i, found := h.search(day); found {
		return h.closes[i], true
	}
	return Money{}, false
}

// Nearest returns the close nearest to 'target' within maxOffsetDays.
// Offsets are tried in increasing order, and at each non-zero offset
// the forward date is preferred over the backward one. It returns
// false when no close exists inside the window.
func (h *PriceHistory) Nearest(target Date, maxOffsetDays int) (Money, bool) {
	if close, ok := h.Get(target); ok {
		return close, true
	}
	for offset := 1; offset <= maxOffsetDays; offset++ {
		if close, ok := h.Get(target.Add(offset)); ok {
			return close, true
		}
		if close, ok := h.Get(target.Add(-offset)); ok {
			return close, true
		}
	}
	return Money{}, false
}

// Values returns an iterator over all date/close pairs in the history,
// in chronological order.
func (h *PriceHistory) Values() iter.Seq2[Date, Money] {
	return func(yield func(Date, Money) bool) {
		for i, on := range h.days {
			if !yield(on, h.closes[i]) {
				return
			}
		}
	}
}

// search is a binary search; the days slice is sorted.
func (h *PriceHistory) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})
}
