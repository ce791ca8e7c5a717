package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var stderr bytes.Buffer
	c := &Console{Level: InfoLevel, Err: &stderr}

	c.Debugf("hidden")
	c.Infof("shown")
	c.Warnf("careful with %s", "this")

	require.Equal(t, "shown\ncareful with this\n", stderr.String())
}

func TestMultilineMessage(t *testing.T) {
	var stderr bytes.Buffer
	c := &Console{Level: DebugLevel, Err: &stderr}

	c.Debugf("one\ntwo")

	require.Equal(t, "one\ntwo\n", stderr.String())
}

func TestColorPrompt(t *testing.T) {
	var stderr bytes.Buffer
	c := &Console{Level: InfoLevel, Color: true, Err: &stderr}

	c.Errorf("broken %d", 2)

	require.Contains(t, stderr.String(), "ⅹ ")
	require.Contains(t, stderr.String(), "broken 2")
}

func TestOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	c := &Console{Level: ErrorLevel, Out: &stdout, Err: &stderr}

	c.Output("proceed")

	require.Equal(t, "proceed\n", stdout.String())
	require.Empty(t, stderr.String())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARNING")
	require.NoError(t, err)
	require.Equal(t, WarnLevel, level)
	require.Equal(t, "warn", level.String())

	level, err = ParseLevel("loud")
	require.ErrorIs(t, err, ErrInvalidLevel)
	require.Equal(t, "invalid", level.String())
	require.Equal(t, "debug, info, warn, error, fatal", LevelNames())
}
