package voice

import (
	"fmt"

	"github.com/jsphweid/flattenmidi/model"
)

type voiceState struct {
	busyUntil int64
	used      bool
}

func (v voiceState) isFree(start int64) bool {
	return !v.used || v.busyUntil <= start
}

type assigner struct {
	strategy model.Strategy
	states   []voiceState
	res      model.AssignmentResult
}

func (a *assigner) firstFree(start int64) int {
	for i, s := range a.states {
		if s.isFree(start) {
			return i
		}
	}
	return -1
}

func (a *assigner) leastLoadedFree(start int64) int {
	best := -1
	for i, s := range a.states {
		if !s.isFree(start) {
			continue
		}
		if best == -1 || len(a.res.Voices[i]) < len(a.res.Voices[best]) {
			best = i
		}
	}
	return best
}

// soonestFree is the voice that frees up first, used when every voice is busy.
func (a *assigner) soonestFree() int {
	best := 0
	for i, s := range a.states {
		if s.busyUntil < a.states[best].busyUntil {
			best = i
		}
	}
	return best
}

func (a *assigner) pick(start int64) int {
	switch a.strategy {
	case model.Balanced:
		return a.leastLoadedFree(start)
	default:
		return a.firstFree(start)
	}
}

// steal makes room in a busy voice by cutting its last note at start, or
// by removing it when it begins on the same tick.
func (a *assigner) steal(idx int, start int64) {
	v := a.res.Voices[idx]
	last := len(v) - 1
	if v[last].Start >= start {
		a.res.Voices[idx] = v[:last]
		a.res.Replaced += 1
		return
	}
	v[last].End = start
	a.res.Truncated += 1
}

func (a *assigner) place(idx int, n model.NoteInterval) {
	a.res.Voices[idx] = append(a.res.Voices[idx], n)
	a.states[idx] = voiceState{busyUntil: n.End, used: true}
}

// Assign distributes intervals over voiceCount monophonic voices in a single
// pass ordered by start tick.
func Assign(intervals []model.NoteInterval, voiceCount int, strategy model.Strategy) (model.AssignmentResult, error) {
	if voiceCount < 1 {
		return model.AssignmentResult{}, fmt.Errorf("%w, got %d", ErrNoVoices, voiceCount)
	}
	if !strategy.Valid() {
		return model.AssignmentResult{}, fmt.Errorf("%w %d", ErrUnknownStrategy, strategy)
	}

	a := assigner{
		strategy: strategy,
		states:   make([]voiceState, voiceCount),
		res:      model.AssignmentResult{Voices: make([]model.Voice, voiceCount)},
	}

	for _, n := range SortIntervals(intervals) {
		idx := a.pick(n.Start)
		if idx == -1 {
			if strategy == model.DropExcess {
				a.res.Dropped += 1
				continue
			}
			idx = a.soonestFree()
			a.steal(idx, n.Start)
		}
		a.place(idx, n)
	}

	return a.res, nil
}
