package coordinator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseExitCode(t *testing.T) {
	require.Equal(t, ExitLeader, ParseExitCode("0"))
	require.Equal(t, ExitOthersFailed, ParseExitCode("1\n"))
	require.Equal(t, ExitNotLeader, ParseExitCode(" 2 "))
	require.Equal(t, ExitCode(3), ParseExitCode("3"))
	require.Equal(t, ExitUnknown, ParseExitCode("weird?"))
	require.Equal(t, ExitUnknown, ParseExitCode(""))
}

func TestExitCodeString(t *testing.T) {
	require.Equal(t, "leader", ExitLeader.String())
	require.Equal(t, "not-leader", ExitNotLeader.String())
	require.Equal(t, "exit-42", ExitCode(42).String())
}

func TestSolo(t *testing.T) {
	code, err := Solo.Coordinate(context.Background())
	require.NoError(t, err)
	require.Equal(t, ExitLeader, code)
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	var c Coordinator = Func(func(ctx context.Context) (ExitCode, error) {
		return ExitUnknown, boom
	})
	code, err := c.Coordinate(context.Background())
	require.ErrorIs(t, err, boom)
	require.Equal(t, ExitUnknown, code)
}

func TestWithTimeout(t *testing.T) {
	waiting := Func(func(ctx context.Context) (ExitCode, error) {
		<-ctx.Done()
		return ExitUnknown, ctx.Err()
	})

	_, err := WithTimeout(waiting, 10*time.Millisecond).Coordinate(context.Background())
	require.ErrorIs(t, err, context.DeadlineExceeded)

	code, err := WithTimeout(Solo, 0).Coordinate(context.Background())
	require.NoError(t, err)
	require.Equal(t, ExitLeader, code)
}
