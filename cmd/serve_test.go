package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/flattenmidi/midi"
	"github.com/jsphweid/flattenmidi/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func createMidiBody(t *testing.T, parts ...model.Voice) []byte {
	s, err := midi.BuildFlattened(smf.MetricTicks(96), nil, parts)
	assert.NoError(t, err)
	buf := new(bytes.Buffer)
	_, err = s.WriteTo(buf)
	assert.NoError(t, err)
	return buf.Bytes()
}

func unison() []model.Voice {
	var parts []model.Voice
	for _, pitch := range []uint8{60, 64, 67} {
		parts = append(parts, model.Voice{{Start: 0, End: 10, Pitch: pitch, Velocity: 100}})
	}
	return parts
}

func doRequest(method string, target string, body []byte) *http.Response {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, req)
	return w.Result()
}

func TestFlattenEndpoint(t *testing.T) {
	resp := doRequest(http.MethodPost, "/flatten?max_voices=2&strategy=drop_excess", createMidiBody(t, unison()...))
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))
	assert.Equal("2", resp.Header.Get("X-Voices"))
	assert.Equal("1", resp.Header.Get("X-Dropped-Notes"))
	assert.NotEmpty(resp.Header.Get("X-Run-Id"))

	out, err := midi.ReadMidi(bytes.NewReader(respBody))
	assert.NoError(err)
	assert.Len(out.Tracks, 2)
	assert.Len(midi.ExtractNotes(out), 2)
}

func TestFlattenEndpointDefaults(t *testing.T) {
	resp := doRequest(http.MethodPost, "/flatten", createMidiBody(t, unison()...))

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.Equal("3", resp.Header.Get("X-Voices"))
	assert.Equal("0", resp.Header.Get("X-Dropped-Notes"))
}

func TestFlattenEndpointBadParams(t *testing.T) {
	cases := []string{
		"/flatten?max_voices=0",
		"/flatten?max_voices=lots",
		"/flatten?strategy=nope",
		"/flatten?auto_optimize=maybe",
	}
	for _, target := range cases {
		t.Run(target, func(t *testing.T) {
			resp := doRequest(http.MethodPost, target, createMidiBody(t, unison()...))
			assert.Equal(t, 400, resp.StatusCode)

			var errResp model.ErrorResponse
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
			assert.NotEmpty(t, errResp.Error)
		})
	}
}

func TestFlattenEndpointStrictOverflow(t *testing.T) {
	resp := doRequest(http.MethodPost, "/flatten?max_voices=1&strict=true", createMidiBody(t, unison()...))
	assert.Equal(t, 422, resp.StatusCode)
}

func TestFlattenEndpointGarbage(t *testing.T) {
	resp := doRequest(http.MethodPost, "/flatten?max_voices=2", []byte("hello"))
	assert.Equal(t, 422, resp.StatusCode)
}

func TestFlattenEndpointOnlyPost(t *testing.T) {
	resp := doRequest(http.MethodGet, "/flatten", nil)
	assert.Equal(t, 405, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	resp := doRequest(http.MethodGet, "/health", nil)
	assert.Equal(t, 200, resp.StatusCode)
}
