package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/toybow/internal/application/system"
)

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return DecodeReplay(file)
}

// DecodeReplay reads replay data from r
func DecodeReplay(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("unsupported replay version %q", data.Version)
	}
	return &data, nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.InputState{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	return fromFrame(fi), true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Range returns the range the replay was recorded on
func (r *Replayer) Range() string {
	return r.data.Range
}

// Hand returns the grip hand the replay started with
func (r *Replayer) Hand() string {
	return r.data.Hand
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

func fromFrame(fi FrameInput) system.InputState {
	return system.InputState{
		Grab:       fi.G,
		Release:    fi.Rel,
		SwitchHand: fi.Sw,
		PitchUp:    fi.PU,
		PitchDown:  fi.PD,
		Pause:      fi.P,
		CursorX:    fi.MX,
		CursorY:    fi.MY,
		Trigger:    fi.T,
	}
}

func toFrame(f int, in system.InputState) FrameInput {
	return FrameInput{
		F:   f,
		G:   in.Grab,
		Rel: in.Release,
		Sw:  in.SwitchHand,
		PU:  in.PitchUp,
		PD:  in.PitchDown,
		P:   in.Pause,
		MX:  in.CursorX,
		MY:  in.CursorY,
		T:   in.Trigger,
	}
}

// CreateTestReplayData creates replay data for testing (idle hands)
func CreateTestReplayData(frames int, cursorX, cursorY int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Range:     "test",
		Hand:      "left",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F:  i,
			MX: cursorX,
			MY: cursorY,
		}
	}

	return data
}
