package replay

// Version is the replay file format version
const Version = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F   int     `json:"f"`             // Frame number
	G   bool    `json:"g,omitempty"`   // Grab
	Rel bool    `json:"rel,omitempty"` // Release
	Sw  bool    `json:"sw,omitempty"`  // SwitchHand
	PU  bool    `json:"pu,omitempty"`  // PitchUp
	PD  bool    `json:"pd,omitempty"`  // PitchDown
	P   bool    `json:"p,omitempty"`   // Pause
	MX  int     `json:"mx"`            // CursorX
	MY  int     `json:"my"`            // CursorY
	T   float64 `json:"t,omitempty"`   // Trigger
}

// ReplayData contains all data needed to replay a range session
type ReplayData struct {
	Version   string       `json:"version"`
	Range     string       `json:"range"`
	Hand      string       `json:"hand"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
