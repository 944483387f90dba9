//go:build e2e
// +build e2e

package e2e_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/flattenmidi/cmd"
	"github.com/jsphweid/flattenmidi/midi"
	"github.com/jsphweid/flattenmidi/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

var inputPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "flattenmidi-e2e")
	if err != nil {
		panic(err.Error())
	}

	// four part chord, then a two note tail
	var parts []model.Voice
	for i, pitch := range []uint8{48, 55, 60, 64} {
		part := model.Voice{{Start: 0, End: 96, Pitch: pitch, Velocity: 100}}
		if i < 2 {
			part = append(part, model.NoteInterval{Start: 96, End: 192, Pitch: pitch + 2, Velocity: 80})
		}
		parts = append(parts, part)
	}
	meta := []midi.MetaEvent{{AbsTicks: 0, Message: smf.MetaTempo(100)}}
	s, err := midi.BuildFlattened(smf.MetricTicks(96), meta, parts)
	if err != nil {
		panic(err.Error())
	}
	inputPath = filepath.Join(dir, "chorale.mid")
	if err := midi.WriteMidiFile(inputPath, s); err != nil {
		panic(err.Error())
	}

	exitVal := m.Run()

	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func voiceTracks(t *testing.T, path string) []smf.Track {
	out, err := midi.ReadMidiFile(path)
	assert.NoError(t, err)
	// first track carries tempo
	return out.Tracks[1:]
}

func TestFlattenAutoOptimizedE2E(t *testing.T) {
	output := filepath.Join(t.TempDir(), "auto.mid")
	err := cmd.Run([]string{inputPath, "-v", "8", "-o", output, "-s", "first_fit", "--no-auto-optimize=false", "--strict"})

	assert := assert.New(t)
	assert.NoError(err)
	tracks := voiceTracks(t, output)
	assert.Len(tracks, 4)
	assert.Len(midi.TrackNotes(tracks[0], 0), 2)
	assert.Len(midi.TrackNotes(tracks[1], 1), 2)
	assert.Len(midi.TrackNotes(tracks[2], 2), 1)
	assert.Len(midi.TrackNotes(tracks[3], 3), 1)
}

func TestFlattenDropExcessE2E(t *testing.T) {
	output := filepath.Join(t.TempDir(), "dropped.mid")
	err := cmd.Run([]string{inputPath, "-v", "2", "-o", output, "-s", "drop_excess", "--no-auto-optimize=true", "--strict=false"})

	assert := assert.New(t)
	assert.NoError(err)
	tracks := voiceTracks(t, output)
	assert.Len(tracks, 2)
	var total int
	for i, track := range tracks {
		total += len(midi.TrackNotes(track, i))
	}
	// two of the chord tones and both tail notes survive
	assert.Equal(4, total)
}

func TestFlattenRejectsZeroVoicesE2E(t *testing.T) {
	err := cmd.Run([]string{inputPath, "-v", "0", "-o", filepath.Join(t.TempDir(), "x.mid"), "--strict=false"})
	assert.Error(t, err)
}
