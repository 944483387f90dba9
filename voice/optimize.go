package voice

import (
	"container/heap"
	"sort"

	"github.com/jsphweid/flattenmidi/model"
	"github.com/jsphweid/flattenmidi/util"
)

type endHeap []int64

func (h endHeap) Len() int           { return len(h) }
func (h endHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h endHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *endHeap) Push(x any)        { *h = append(*h, x.(int64)) }
func (h *endHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// SortIntervals orders intervals by start tick, keeping extraction order
// for equal starts. The input slice is left untouched.
func SortIntervals(intervals []model.NoteInterval) []model.NoteInterval {
	sorted := make([]model.NoteInterval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})
	return sorted
}

// PeakSimultaneous is the largest number of intervals sounding at once.
// A note ending on a tick does not overlap one starting on that tick.
func PeakSimultaneous(intervals []model.NoteInterval) int {
	active := &endHeap{}
	var peak int
	for _, n := range SortIntervals(intervals) {
		for active.Len() > 0 && (*active)[0] <= n.Start {
			heap.Pop(active)
		}
		heap.Push(active, n.End)
		if active.Len() > peak {
			peak = active.Len()
		}
	}
	return peak
}

// Optimize returns the fewest voices that can hold every interval without
// overlap, capped at maxVoices. Empty input needs a single voice.
func Optimize(intervals []model.NoteInterval, maxVoices int) int {
	peak := PeakSimultaneous(intervals)
	if peak == 0 {
		return 1
	}
	return util.Min(peak, maxVoices)
}
