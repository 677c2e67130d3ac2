package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/ghadrift/ghadrift/pkg/cli"
	"github.com/ghadrift/ghadrift/pkg/di"
	"github.com/sirupsen/logrus"
)

func newRunner(stdout *bytes.Buffer) *cli.Runner {
	return &cli.Runner{
		Stdin:    strings.NewReader(""),
		Stdout:   stdout,
		Stderr:   &bytes.Buffer{},
		LDFlags:  &cli.LDFlags{Version: "v1.0.0", Commit: "abc"},
		LogE:     logrus.NewEntry(logrus.New()),
		GetEnv:   func(string) string { return "" },
		LookPath: gitNotFound,
	}
}

func gitNotFound(string) (string, error) {
	return "", exec.ErrNotFound
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()
	data := []struct {
		name   string
		args   []string
		stdout string
		err    error
	}{
		{
			name: "push without update",
			args: []string{"ghadrift", "-p"},
			err:  di.ErrPushRequiresUpdate,
		},
		{
			name: "long push flag without update",
			args: []string{"ghadrift", "--push", "-v"},
			err:  di.ErrPushRequiresUpdate,
		},
		{
			name: "combined short flags",
			args: []string{"ghadrift", "-vp"},
			err:  di.ErrPushRequiresUpdate,
		},
		{
			// the flags are accepted and the scan stops as git isn't found
			name: "update and push",
			args: []string{"ghadrift", "-up"},
			err:  di.ErrGitNotFound,
		},
		{
			name: "unsupported format",
			args: []string{"ghadrift", "-up", "--format", "json"},
			err:  di.ErrUnsupportedFormat,
		},
		{
			name:   "version",
			args:   []string{"ghadrift", "version"},
			stdout: "ghadrift version v1.0.0 (abc)\n",
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			stdout := &bytes.Buffer{}
			err := newRunner(stdout).Run(context.Background(), d.args...)
			if d.err != nil {
				if !errors.Is(err, d.err) {
					t.Fatalf("wanted %v, got %v", d.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if stdout.String() != d.stdout {
				t.Fatalf("wanted %q, got %q", d.stdout, stdout.String())
			}
		})
	}
}

func TestRunner_RunHelp(t *testing.T) {
	t.Parallel()
	stdout := &bytes.Buffer{}
	if err := newRunner(stdout).Run(context.Background(), "ghadrift", "-h"); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"--update", "--push", "--verbose"} {
		if !strings.Contains(stdout.String(), s) {
			t.Errorf("the help must contain %s", s)
		}
	}
}
