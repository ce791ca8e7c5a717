package console

import (
	"errors"
	"strings"
)

// ErrInvalidLevel is returned by ParseLevel for unknown level names.
var ErrInvalidLevel = errors.New("invalid level")

type Level int

const (
	InvalidLevel Level = iota - 1
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// levelNames is indexed by Level and doubles as the list accepted by
// ParseLevel, besides the "warning" alias.
var levelNames = []string{"debug", "info", "warn", "error", "fatal"}

func (l Level) String() string {
	if l < DebugLevel || int(l) >= len(levelNames) {
		return "invalid"
	}
	return levelNames[l]
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return WarnLevel, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return InvalidLevel, ErrInvalidLevel
}

// LevelNames lists the levels from most to least verbose, for help and error
// messages.
func LevelNames() string {
	return strings.Join(levelNames, ", ")
}
