package midi

import (
	"github.com/jsphweid/flattenmidi/model"
	"github.com/jsphweid/flattenmidi/voice"
	"gitlab.com/gomidi/midi/v2/smf"
)

type TrackReport struct {
	TrackNum int
	Name     string
	NumNotes int
}

type Report struct {
	Tracks          []TrackReport
	NumNotes        int
	MaxSimultaneous int
}

func trackName(track smf.Track) string {
	var name string
	for _, ev := range track {
		if ev.Message.GetMetaTrackName(&name) {
			return name
		}
	}
	return ""
}

func Analyze(s *smf.SMF) Report {
	var report Report
	var all []model.NoteInterval
	for i, track := range s.Tracks {
		notes := TrackNotes(track, i)
		report.Tracks = append(report.Tracks, TrackReport{
			TrackNum: i,
			Name:     trackName(track),
			NumNotes: len(notes),
		})
		all = append(all, notes...)
	}
	report.NumNotes = len(all)
	report.MaxSimultaneous = voice.PeakSimultaneous(all)
	return report
}
