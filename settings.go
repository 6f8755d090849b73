package nodenet

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// Settings are the user preferences the animation consumes. The animation
// queries current values every frame and adjusts behavior; it does not own
// persistence.
type Settings struct {
	// EnableAnimations gates the whole animation. When false the frame
	// loop does not run at all.
	EnableAnimations bool `toml:"enable_animations"`
	// ReduceMotion freezes continuous node motion while keeping the
	// discrete glyph shimmer.
	ReduceMotion bool `toml:"reduce_motion"`
	// PsychedelicIntensity in [0, 1] scales color saturation, hue spread,
	// and glyph refresh cadence.
	PsychedelicIntensity float64 `toml:"psychedelic_intensity"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{
		EnableAnimations:     true,
		ReduceMotion:         false,
		PsychedelicIntensity: 0.5,
	}
}

// validate clamps out-of-range values to their documented domains.
func (s *Settings) validate() {
	s.PsychedelicIntensity = clamp(s.PsychedelicIntensity, 0, 1)
}

// SettingsSource supplies current settings to the animation. Implementations
// must be cheap to query; the core reads them once per frame.
type SettingsSource interface {
	Current() Settings
}

// StaticSettings is a SettingsSource holding a fixed value.
type StaticSettings struct {
	S Settings
}

// Current returns the held settings.
func (s StaticSettings) Current() Settings {
	return s.S
}

// FileSettings is a TOML-backed settings store. The animation only reads it;
// a settings panel (or the demo CLI) writes through Update. The mutex exists
// because CLI hosts may save from a signal handler path; the animation core
// itself stays on one goroutine.
type FileSettings struct {
	mu      sync.Mutex
	path    string
	current Settings
}

// OpenFileSettings loads settings from path, falling back to defaults when
// the file does not exist yet. Invalid values are clamped, not rejected.
func OpenFileSettings(path string) (*FileSettings, error) {
	fs := &FileSettings{path: path, current: DefaultSettings()}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &fs.current); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	fs.current.validate()
	return fs, nil
}

// Current returns a snapshot of the stored settings.
func (f *FileSettings) Current() Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Update applies fn to the settings, validates the result, and persists it.
func (f *FileSettings) Update(fn func(*Settings)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.current)
	f.current.validate()
	return f.save()
}

// save writes the current settings to disk. Caller holds the mutex.
func (f *FileSettings) save() error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	out, err := os.Create(f.path)
	if err != nil {
		return fmt.Errorf("write settings %s: %w", f.path, err)
	}
	defer out.Close()
	if err := toml.NewEncoder(out).Encode(f.current); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}
