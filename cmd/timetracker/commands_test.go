package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamonnguyen/timetracker"
)

type fakeTracker struct {
	calls       []string
	description string
	status      timetracker.Status
}

func (f *fakeTracker) Start(silent bool) {
	f.calls = append(f.calls, "start")
	f.status = timetracker.StatusRunning
}

func (f *fakeTracker) Toggle() {
	f.calls = append(f.calls, "toggle")
}

func (f *fakeTracker) Stop(silent bool) {
	f.calls = append(f.calls, "stop")
	f.status = timetracker.StatusStopped
}

func (f *fakeTracker) SetDescription(d string) {
	f.calls = append(f.calls, "describe:"+d)
	f.description = d
}

func (f *fakeTracker) Status() timetracker.Status {
	return f.status
}

func (f *fakeTracker) Duration() time.Duration {
	return 75 * time.Minute
}

func (f *fakeTracker) Description() string {
	return f.description
}

func TestRunCommands_Dispatch(t *testing.T) {
	tr := &fakeTracker{}
	in := strings.NewReader("start\n\nTOGGLE\nstop\ndescribe write tests\n")
	var out bytes.Buffer

	require.NoError(t, runCommands(in, &out, tr))
	assert.Equal(t, []string{"start", "toggle", "stop", "describe:write tests"}, tr.calls)
}

func TestRunCommands_DescribePrompts(t *testing.T) {
	tr := &fakeTracker{}
	in := strings.NewReader("describe\n  review PR  \n")
	var out bytes.Buffer

	require.NoError(t, runCommands(in, &out, tr))
	assert.Equal(t, []string{"describe:review PR"}, tr.calls)
	assert.Contains(t, out.String(), "Description: ")
}

func TestRunCommands_DescribeCancelled(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty line", input: "describe\n\n"},
		{name: "eof", input: "describe\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &fakeTracker{description: "before"}
			require.NoError(t, runCommands(strings.NewReader(tt.input), &bytes.Buffer{}, tr))
			assert.Empty(t, tr.calls)
			assert.Equal(t, "before", tr.description)
		})
	}
}

func TestRunCommands_QuitStopsReading(t *testing.T) {
	tr := &fakeTracker{}
	require.NoError(t, runCommands(strings.NewReader("quit\nstart\n"), &bytes.Buffer{}, tr))
	assert.Empty(t, tr.calls)
}

func TestRunCommands_Status(t *testing.T) {
	tr := &fakeTracker{status: timetracker.StatusRunning, description: "deploy"}
	var out bytes.Buffer

	require.NoError(t, runCommands(strings.NewReader("status\n"), &out, tr))
	assert.Equal(t, "01:15 | deploy\n", out.String())
}

func TestRunCommands_UnknownAndHelp(t *testing.T) {
	tr := &fakeTracker{}
	var out bytes.Buffer

	require.NoError(t, runCommands(strings.NewReader("pause\nhelp\n"), &out, tr))
	assert.Empty(t, tr.calls)
	assert.Contains(t, out.String(), `unknown command "pause"`)
	for _, c := range timetracker.Commands {
		assert.Contains(t, out.String(), c.Usage)
	}
}
