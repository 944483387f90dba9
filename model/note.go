package model

// NoteInterval is a single note spanning [Start, End) in ticks.
type NoteInterval struct {
	Start    int64
	End      int64
	Pitch    uint8
	Velocity uint8
	Channel  uint8

	// NOTE: source track index, only kept for reporting
	Track int
}

func (n NoteInterval) Duration() int64 {
	return n.End - n.Start
}

func (n NoteInterval) Overlaps(o NoteInterval) bool {
	return n.Start < o.End && o.Start < n.End
}

// Voice is one monophonic output track.
type Voice = []NoteInterval

type AssignmentResult struct {
	Voices []Voice

	// only nonzero with DropExcess
	Dropped int

	// forced overlaps when every voice was busy
	Truncated int
	Replaced  int
}

func (r AssignmentResult) NumAssigned() int {
	var total int
	for _, v := range r.Voices {
		total += len(v)
	}
	return total
}

func (r AssignmentResult) NumNonEmptyVoices() int {
	var total int
	for _, v := range r.Voices {
		if len(v) > 0 {
			total++
		}
	}
	return total
}
