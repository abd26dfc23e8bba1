package commands

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/bigsharp/internal/cli/testutil"
	"github.com/leapstack-labs/bigsharp/internal/engine"
	"github.com/leapstack-labs/bigsharp/internal/toolchain"
	"github.com/leapstack-labs/bigsharp/internal/watch"
)

func TestOnCompile(t *testing.T) {
	job := engine.Job{Source: "hello.bs", Output: "Program.cs"}
	res := &engine.Result{Output: "class P {}\n"}

	tests := []struct {
		name     string
		run      bool
		event    watch.Event
		wantOut  string
		wantErr  string
		wantRuns int
	}{
		{
			name:    "success",
			event:   watch.Event{Job: job, Result: res},
			wantOut: "hello.bs -> Program.cs",
		},
		{
			name:     "success with run",
			run:      true,
			event:    watch.Event{Job: job, Result: res},
			wantOut:  "program ran",
			wantRuns: 2,
		},
		{
			name:    "failure",
			run:     true,
			event:   watch.Event{Job: job, Err: &engine.StageError{Stage: engine.StageLex, Err: errors.New("unbalanced")}},
			wantErr: "[lex]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			tr := testutil.NewTestRendererPlain()
			cc := &CommandContext{
				Renderer:  tr.Renderer,
				Toolchain: &toolchain.Invoker{ProjectDir: t.TempDir(), Runner: runner},
			}
			cmd := &cobra.Command{}
			cmd.SetOut(tr.Out)
			cmd.SetErr(new(bytes.Buffer))

			onCompile(context.Background(), cmd, cc, tt.run)(tt.event)

			if tt.wantOut != "" {
				assert.Contains(t, tr.Output(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, tr.ErrorOutput(), tt.wantErr)
			}
			require.Len(t, runner.calls, tt.wantRuns)
		})
	}
}

func TestWatchCommand_NoSource(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := runCommand(t, NewWatchCommand())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no source given")
}
