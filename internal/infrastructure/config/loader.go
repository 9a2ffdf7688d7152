package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ErrUnknownRange is returned when no ranges/<name>.json exists
var ErrUnknownRange = errors.New("unknown range")

// maxSuggestDistance bounds how far a typo may be from a real range name
const maxSuggestDistance = 3

// GameConfig holds all loaded configurations
type GameConfig struct {
	Bow   BowConfig
	Audio AudioConfig
	Range *RangeConfig
}

// Loader loads configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadBow loads bow.json over the defaults; a missing file yields the defaults
func (l *Loader) LoadBow() (BowConfig, error) {
	cfg := DefaultBowConfig()

	data, err := fs.ReadFile(l.fsys, "bow.json")
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read bow.json: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse bow.json: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid bow.json: %w", err)
	}

	return cfg, nil
}

// LoadAudio loads audio.json over the defaults; a missing file yields the defaults
func (l *Loader) LoadAudio() (AudioConfig, error) {
	cfg := DefaultAudioConfig()

	data, err := fs.ReadFile(l.fsys, "audio.json")
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read audio.json: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse audio.json: %w", err)
	}

	return cfg, nil
}

// ListRanges returns the names of all ranges/*.json files, sorted
func (l *Loader) ListRanges() ([]string, error) {
	matches, err := fs.Glob(l.fsys, "ranges/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list ranges: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// LoadRange loads a range JSON file
func (l *Loader) LoadRange(name string) (*RangeConfig, error) {
	p := "ranges/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, l.unknownRange(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", name, err)
	}

	var cfg RangeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse range %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads bow, audio and the named range, then applies env overrides
func (l *Loader) LoadAll(rangeName string) (*GameConfig, error) {
	bow, err := l.LoadBow()
	if err != nil {
		return nil, err
	}

	audio, err := l.LoadAudio()
	if err != nil {
		return nil, err
	}

	rng, err := l.LoadRange(rangeName)
	if err != nil {
		return nil, err
	}

	cfg := &GameConfig{
		Bow:   bow,
		Audio: audio,
		Range: rng,
	}
	if err := ApplyEnv(cfg, nil); err != nil {
		return nil, err
	}

	return cfg, nil
}

// unknownRange builds ErrUnknownRange, suggesting the closest known name
func (l *Loader) unknownRange(name string) error {
	names, err := l.ListRanges()
	if err != nil || len(names) == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRange, name)
	}

	if best, ok := ClosestName(name, names); ok {
		return fmt.Errorf("%w: %s (did you mean %q?)", ErrUnknownRange, name, best)
	}
	return fmt.Errorf("%w: %s (available: %s)", ErrUnknownRange, name, strings.Join(names, ", "))
}

// ClosestName returns the candidate with the smallest edit distance to name,
// if it is within maxSuggestDistance.
func ClosestName(name string, candidates []string) (string, bool) {
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(c))
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, best != ""
}
