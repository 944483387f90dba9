package flatten

import (
	"bytes"
	"io"

	"github.com/google/uuid"
	"github.com/jsphweid/flattenmidi/midi"
	"github.com/jsphweid/flattenmidi/model"
	"github.com/jsphweid/flattenmidi/util"
	"github.com/jsphweid/flattenmidi/voice"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

type Options struct {
	MaxVoices    int
	Strategy     string
	AutoOptimize bool
	Strict       bool
}

type Result struct {
	Summary    model.RunSummary
	Assignment model.AssignmentResult
	Output     *smf.SMF
}

func (o Options) Validate() (model.Strategy, error) {
	if o.MaxVoices < 1 {
		return 0, &ConfigError{Err: errors.Wrapf(voice.ErrNoVoices, "max voices is %d", o.MaxVoices)}
	}
	strategy, err := voice.ParseStrategy(o.Strategy)
	if err != nil {
		return 0, &ConfigError{Err: err}
	}
	return strategy, nil
}

// Flatten runs optimize and assign over a decoded file and builds the
// flattened one.
func Flatten(s *smf.SMF, opts Options) (*Result, error) {
	strategy, err := opts.Validate()
	if err != nil {
		return nil, err
	}

	report := midi.Analyze(s)
	for _, t := range report.Tracks {
		log.WithFields(log.Fields{"track": t.TrackNum, "name": t.Name, "notes": t.NumNotes}).Debug("input track")
	}
	log.WithFields(log.Fields{
		"notes":            report.NumNotes,
		"max_simultaneous": report.MaxSimultaneous,
	}).Info("input analyzed")

	notes := midi.ExtractNotes(s)

	voiceCount := opts.MaxVoices
	if opts.AutoOptimize {
		voiceCount = voice.Optimize(notes, opts.MaxVoices)
		log.WithFields(log.Fields{
			"voices":           voiceCount,
			"max_voices":       opts.MaxVoices,
			"max_simultaneous": report.MaxSimultaneous,
		}).Info("auto-optimized voice count")
	}

	metaEvents := midi.ExtractMeta(s)
	log.WithField("meta_events", len(metaEvents)).Info("extracted meta events")

	assignment, err := voice.Assign(notes, voiceCount, strategy)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if opts.Strict && assignment.Truncated+assignment.Replaced > 0 {
		return nil, &OverflowError{Voices: voiceCount, MaxSimultaneous: report.MaxSimultaneous}
	}

	out, err := midi.BuildFlattened(s.TimeFormat, metaEvents, assignment.Voices)
	if err != nil {
		return nil, errors.Wrap(err, "could not build flattened midi")
	}

	perVoice := util.Lens(assignment.Voices)
	log.WithFields(log.Fields{
		"strategy":  strategy,
		"voices":    voiceCount,
		"per_voice": perVoice,
		"assigned":  util.Sum(perVoice),
		"dropped":   assignment.Dropped,
		"truncated": assignment.Truncated,
		"replaced":  assignment.Replaced,
	}).Info("assigned notes to voices")

	return &Result{
		Summary: model.RunSummary{
			RunId:           uuid.New().String(),
			Strategy:        strategy.String(),
			MaxVoices:       opts.MaxVoices,
			Voices:          voiceCount,
			AutoOptimized:   opts.AutoOptimize,
			NumInputNotes:   len(notes),
			NumOutputNotes:  assignment.NumAssigned(),
			NumMetaEvents:   len(metaEvents),
			MaxSimultaneous: report.MaxSimultaneous,
			Dropped:         assignment.Dropped,
			Truncated:       assignment.Truncated,
			Replaced:        assignment.Replaced,
		},
		Assignment: assignment,
		Output:     out,
	}, nil
}

// FlattenReader decodes r and flattens it. Used by the server where there is
// no file on disk.
func FlattenReader(r io.Reader, source string, opts Options) (*Result, error) {
	if _, err := opts.Validate(); err != nil {
		return nil, err
	}
	s, err := midi.ReadMidi(r)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	res, err := Flatten(s, opts)
	if err != nil {
		return nil, err
	}
	res.Summary.Input = source
	return res, nil
}

// FlattenFile reads input, flattens it and writes output. An empty output
// falls back to the derived "_Flattened" name next to the input.
func FlattenFile(input string, output string, opts Options) (*Result, error) {
	if _, err := opts.Validate(); err != nil {
		return nil, err
	}
	if output == "" {
		output = util.OutputPath(input)
	}

	s, err := midi.ReadMidiFile(input)
	if err != nil {
		return nil, &DecodeError{Source: input, Err: err}
	}
	res, err := Flatten(s, opts)
	if err != nil {
		return nil, err
	}
	if err := midi.WriteMidiFile(output, res.Output); err != nil {
		return nil, err
	}
	log.WithField("output", output).Info("saved flattened midi")

	res.Summary.Input = input
	res.Summary.Output = output
	return res, nil
}

// Encode serializes the flattened file.
func (r *Result) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if _, err := r.Output.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "could not encode flattened midi")
	}
	return buf.Bytes(), nil
}
