package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"numtools/internal/numlist"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run(append([]string{"gapfinder"}, args...))
	return out.String(), err
}

func TestGapFinderFromArgument(t *testing.T) {
	out, err := run(t, "", "3106,3102,3104,3105,3107")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"Found number: 3106",
		"Found number: 3102",
		"Found number: 3104",
		"Found number: 3105",
		"Found number: 3107",
		"Number: 3102,3104,3105,3106,3107",
		"Missing number: 3103",
		"",
	}, "\n"), out)
}

func TestGapFinderPromptsOnStdin(t *testing.T) {
	out, err := run(t, "5,1\n")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Enter an integer: Found number: 5\n"))
	assert.Contains(t, out, "Number: 1,5\n")
	assert.Contains(t, out, "Missing number: 2\nMissing number: 3\nMissing number: 4\n")
}

func TestGapFinderParseError(t *testing.T) {
	out, err := run(t, "", "1,2,three")

	var perr *numlist.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Empty(t, out)
}

func TestGapFinderInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "chatty", "1,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

// lineLimitWriter accepts writes until it has seen max lines.
type lineLimitWriter struct {
	buf   bytes.Buffer
	lines int
	max   int
}

var errOutputClosed = errors.New("output closed")

func (w *lineLimitWriter) Write(p []byte) (int, error) {
	if w.lines >= w.max {
		return 0, errOutputClosed
	}
	w.lines += bytes.Count(p, []byte("\n"))
	return w.buf.Write(p)
}

func TestGapFinderStreamsHugeGap(t *testing.T) {
	out := &lineLimitWriter{max: 10}
	app := newApp()
	app.Reader = strings.NewReader("")
	app.Writer = out
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run([]string{"gapfinder", "0,9223372036854775807"})
	require.ErrorIs(t, err, errOutputClosed)

	lines := strings.Split(strings.TrimSuffix(out.buf.String(), "\n"), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, "Found number: 0", lines[0])
	assert.Equal(t, "Number: 0,9223372036854775807", lines[2])
	for i, line := range lines[3:] {
		assert.Equal(t, fmt.Sprintf("Missing number: %d", i+1), line)
	}
}
