package replay

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/toybow/internal/application/system"
)

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version: Version,
		Range:   "demo",
		Frames: []FrameInput{
			{F: 0, G: true, MX: 100, MY: 100},
			{F: 1, MX: 110, MY: 95, T: 0.9},
			{F: 2, MX: 120, MY: 90},
		},
	}

	replayer := NewReplayer(data)

	// Frame 0
	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Grab)
	assert.Equal(t, 100, input.CursorX)
	assert.Zero(t, input.Trigger)

	// Frame 1
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.False(t, input.Grab)
	assert.Equal(t, 0.9, input.Trigger)
	assert.Equal(t, 95, input.CursorY)

	// Frame 2
	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, 120, input.CursorX)

	// End of frames
	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_CurrentFrame(t *testing.T) {
	data := CreateTestReplayData(5, 100, 100)
	replayer := NewReplayer(data)

	assert.Equal(t, 0, replayer.CurrentFrame())

	replayer.GetInput()
	assert.Equal(t, 1, replayer.CurrentFrame())

	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
	assert.Equal(t, 5, replayer.TotalFrames())
}

func TestReplayer_Metadata(t *testing.T) {
	replayer := NewReplayer(ReplayData{Range: "long", Hand: "right"})

	assert.Equal(t, "long", replayer.Range())
	assert.Equal(t, "right", replayer.Hand())
}

func TestReplayer_Reset(t *testing.T) {
	data := CreateTestReplayData(3, 100, 100)
	replayer := NewReplayer(data)

	// Advance to end
	replayer.GetInput()
	replayer.GetInput()
	replayer.GetInput()
	_, ok := replayer.GetInput()
	assert.False(t, ok)

	// Reset
	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())

	// Should be able to read again
	input, ok := replayer.GetInput()
	assert.True(t, ok)
	assert.Equal(t, 100, input.CursorX)
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData(60, 200, 150)

	assert.Equal(t, Version, data.Version)
	assert.Equal(t, "test", data.Range)
	assert.Equal(t, 60, len(data.Frames))

	// Check all frames have correct cursor position
	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
		assert.Equal(t, 200, frame.MX)
		assert.Equal(t, 150, frame.MY)
	}
}

func TestRecorder_RoundTrip(t *testing.T) {
	inputs := []system.InputState{
		{Grab: true, CursorX: 10, CursorY: 20},
		{SwitchHand: true, PitchUp: true, CursorX: 11, CursorY: 21, Trigger: 1},
		{Release: true, PitchDown: true, Pause: true, CursorX: 12, CursorY: 22, Trigger: 0.25},
	}

	rec := NewRecorder("demo", "left")
	for _, in := range inputs {
		rec.RecordFrame(in)
	}
	assert.Equal(t, 3, rec.FrameCount())

	var buf bytes.Buffer
	require.NoError(t, rec.Encode(&buf))

	data, err := DecodeReplay(&buf)
	require.NoError(t, err)
	assert.Equal(t, "demo", data.Range)
	assert.Equal(t, "left", data.Hand)

	replayer := NewReplayer(*data)
	for i, want := range inputs {
		got, ok := replayer.GetInput()
		require.True(t, ok)
		assert.Equal(t, want, got, "frame %d", i)
	}
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder("demo", "right")
	rec.RecordFrame(system.InputState{})
	rec.Stop()
	rec.RecordFrame(system.InputState{})

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 1, rec.FrameCount())
	assert.Equal(t, 0, rec.GetData().Frames[0].F)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	rec := NewRecorder("demo", "left")
	require.Error(t, rec.Save(path), "nothing recorded yet")

	rec.RecordFrame(system.InputState{Grab: true})
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	require.Len(t, data.Frames, 1)
	assert.True(t, data.Frames[0].G)
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{"), 0o644))
	_, err = LoadReplay(garbage)
	assert.ErrorContains(t, err, "failed to decode replay")

	_, err = DecodeReplay(strings.NewReader(`{"version":"0.1","frames":[]}`))
	assert.ErrorContains(t, err, `unsupported replay version "0.1"`)
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.True(t, strings.HasPrefix(name, "replay_"))
	assert.True(t, strings.HasSuffix(name, ".json"))
}
