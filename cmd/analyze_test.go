package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/flattenmidi/midi"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestAnalyzePrintsReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chord.mid")
	assert.NoError(t, os.WriteFile(path, createMidiBody(t, unison()...), 0644))

	out := new(bytes.Buffer)
	assert.NoError(t, analyze(out, path, 2))

	assert := assert.New(t)
	assert.Contains(out.String(), "Track 0 (Voice0): 1 total notes")
	assert.Contains(out.String(), "Maximum simultaneous notes across all tracks: 3")
	assert.Contains(out.String(), "Auto-optimize would use 2 voices (max allowed: 2)")
}

func TestAnalyzeEmptyFile(t *testing.T) {
	meta := []midi.MetaEvent{{AbsTicks: 0, Message: smf.MetaTempo(120)}}
	s, err := midi.BuildFlattened(smf.MetricTicks(96), meta, nil)
	assert.NoError(t, err)
	path := filepath.Join(t.TempDir(), "empty.mid")
	assert.NoError(t, midi.WriteMidiFile(path, s))

	out := new(bytes.Buffer)
	assert.NoError(t, analyze(out, path, 0))
	assert.Contains(t, out.String(), "No notes found in any track")
}

func TestAnalyzeMissingFile(t *testing.T) {
	assert.Error(t, analyze(new(bytes.Buffer), filepath.Join(t.TempDir(), "nope.mid"), 0))
}
