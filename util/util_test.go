package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	cases := map[string]string{
		"song.mid":            "song_Flattened.mid",
		"dir/song.midi":       "dir/song_Flattened.mid",
		"no_extension":        "no_extension_Flattened.mid",
		"my.song.v2.mid":      "my.song.v2_Flattened.mid",
		"/abs/path/Take1.MID": "/abs/path/Take1_Flattened.mid",
	}
	for in, want := range cases {
		assert.Equal(t, want, OutputPath(in))
	}
}

func TestOutputPathSuffixFromEnv(t *testing.T) {
	t.Setenv("OUTPUT_SUFFIX", "_mono")
	assert.Equal(t, "song_mono.mid", OutputPath("song.mid"))
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 2, Min(2, 3))
	assert.Equal(t, uint64(6), Sum([]int{1, 2, 3}))
	assert.Equal(t, []int{2, 0, 1}, Lens([][]string{{"a", "b"}, {}, {"c"}}))
}
