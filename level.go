package feeddistill

import "strings"

// Level controls how much per-item detail a distillation pass extracts.
// The zero value is LevelFull.
type Level int

// Distillation levels.
const (
	LevelFull Level = iota
	LevelReduced
)

// ParseLevel parses a level name. "short" is accepted as an alias for "reduced".
// Returns EINVALID for unknown names.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return LevelFull, nil
	case "reduced", "short":
		return LevelReduced, nil
	}
	return LevelFull, Errorf(EINVALID, "unknown distillation level %q", s)
}

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelFull:
		return "full"
	case LevelReduced:
		return "reduced"
	}
	return "unknown"
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	return l == LevelFull || l == LevelReduced
}

// Normalize returns l, or LevelFull if l is not a known level.
func (l Level) Normalize() Level {
	if !l.Valid() {
		return LevelFull
	}
	return l
}

// Detailed reports whether items distilled at this level carry timestamps,
// media, quotes, engagement and user bios. Reduced passes keep authorship,
// context and text only.
func (l Level) Detailed() bool {
	return l.Normalize() == LevelFull
}

// MarshalText implements encoding.TextMarshaler so levels render by name
// in JSON and YAML output.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
