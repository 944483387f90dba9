package midi

import (
	"sort"

	"github.com/jsphweid/flattenmidi/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteKey struct {
	channel uint8
	pitch   uint8
}

type openNote struct {
	start    int64
	velocity uint8
}

type MetaEvent struct {
	AbsTicks int64
	Message  smf.Message
}

func closeNote(notes []model.NoteInterval, k noteKey, o openNote, end int64, track int) []model.NoteInterval {
	if end <= o.start {
		return notes
	}
	return append(notes, model.NoteInterval{
		Start:    o.start,
		End:      end,
		Pitch:    k.pitch,
		Velocity: o.velocity,
		Channel:  k.channel,
		Track:    track,
	})
}

// TrackNotes pairs note on/off events of one track into intervals sorted by
// start. Notes that never end or have no length are skipped.
func TrackNotes(track smf.Track, trackNum int) []model.NoteInterval {
	var res []model.NoteInterval
	pressed := make(map[noteKey]openNote)

	var absTicks int64
	for _, event := range track {
		absTicks += int64(event.Delta)
		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteStart(&channel, &key, &velocity):
			k := noteKey{channel, key}
			if o, ok := pressed[k]; ok {
				// retrigger ends the sounding note
				res = closeNote(res, k, o, absTicks, trackNum)
			}
			pressed[k] = openNote{start: absTicks, velocity: velocity}
		case event.Message.GetNoteEnd(&channel, &key):
			k := noteKey{channel, key}
			if o, ok := pressed[k]; ok {
				res = closeNote(res, k, o, absTicks, trackNum)
				delete(pressed, k)
			}
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Start < res[j].Start
	})
	return res
}

// ExtractNotes gathers notes from every track, ordered by start tick with
// ties kept in track order.
func ExtractNotes(s *smf.SMF) []model.NoteInterval {
	var res []model.NoteInterval
	for i, track := range s.Tracks {
		res = append(res, TrackNotes(track, i)...)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Start < res[j].Start
	})
	return res
}

// ExtractMeta collects the meta events worth carrying into the flattened
// file, ordered by absolute tick.
func ExtractMeta(s *smf.SMF) []MetaEvent {
	var res []MetaEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			msg := event.Message
			if !msg.IsMeta() || msg.Is(smf.MetaEndOfTrackMsg) || msg.Is(smf.MetaTrackNameMsg) {
				continue
			}
			res = append(res, MetaEvent{AbsTicks: absTicks, Message: msg})
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].AbsTicks < res[j].AbsTicks
	})
	return res
}
