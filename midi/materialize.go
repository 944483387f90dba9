package midi

import (
	"fmt"

	"github.com/jsphweid/flattenmidi/constants"
	"github.com/jsphweid/flattenmidi/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func CreateMetaTrack(metaEvents []MetaEvent) smf.Track {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(constants.MetaTrackName))
	var current int64
	for _, evt := range metaEvents {
		track.Add(uint32(evt.AbsTicks-current), evt.Message)
		current = evt.AbsTicks
	}
	track.Close(0)
	return track
}

func CreateVoiceTrack(voiceNum int, notes model.Voice, channel uint8) smf.Track {
	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(fmt.Sprintf("%v%d", constants.VoiceTrackPrefix, voiceNum)))
	var current int64
	for _, n := range notes {
		track.Add(uint32(n.Start-current), midi.NoteOn(channel, n.Pitch, n.Velocity))
		track.Add(uint32(n.End-n.Start), midi.NoteOff(channel, n.Pitch))
		current = n.End
	}
	track.Close(0)
	return track
}

// NextChannel hands out output channels in order, skipping percussion.
func NextChannel(counter *int) uint8 {
	for *counter%constants.NumChannels == constants.PercussionChannel {
		*counter += 1
	}
	ch := uint8(*counter % constants.NumChannels)
	*counter += 1
	return ch
}

// BuildFlattened lays out a type 1 file with an optional meta track
// followed by one track per non-empty voice.
func BuildFlattened(timeFormat smf.TimeFormat, metaEvents []MetaEvent, voices []model.Voice) (*smf.SMF, error) {
	res := smf.NewSMF1()
	if timeFormat != nil {
		res.TimeFormat = timeFormat
	}

	if len(metaEvents) > 0 {
		if err := res.Add(CreateMetaTrack(metaEvents)); err != nil {
			return nil, err
		}
	}

	var channelCounter int
	for i, v := range voices {
		if len(v) == 0 {
			continue
		}
		if err := res.Add(CreateVoiceTrack(i, v, NextChannel(&channelCounter))); err != nil {
			return nil, err
		}
	}
	return res, nil
}
