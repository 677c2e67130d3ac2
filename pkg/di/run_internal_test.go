package di

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/ghadrift/ghadrift/pkg/cli/flag"
	"github.com/ghadrift/ghadrift/pkg/controller/scan"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		flags *Flags
		isErr bool
	}{
		{name: "scan", flags: &Flags{}},
		{name: "update", flags: &Flags{Update: true}},
		{name: "update and push", flags: &Flags{Update: true, Push: true}},
		{name: "push without update", flags: &Flags{Push: true}, isErr: true},
		{name: "sarif", flags: &Flags{Format: "sarif"}},
		{name: "unknown format", flags: &Flags{Format: "json"}, isErr: true},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(d.flags)
			if d.isErr && err == nil {
				t.Fatal("error must be returned")
			}
			if !d.isErr && err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestRun_pushWithoutUpdate(t *testing.T) {
	t.Parallel()
	flags := &Flags{GlobalFlags: &flag.GlobalFlags{}, Push: true}
	getEnv := func(string) string {
		t.Fatal("the environment must not be read")
		return ""
	}
	lookPath := func(string) (string, error) {
		t.Fatal("git must not be looked up")
		return "", nil
	}
	err := Run(context.Background(), logrus.NewEntry(logrus.New()), flags, &Secrets{}, getEnv, lookPath)
	if !errors.Is(err, ErrPushRequiresUpdate) {
		t.Fatalf("wanted ErrPushRequiresUpdate, got %v", err)
	}
}

func TestRun_gitNotFound(t *testing.T) {
	t.Parallel()
	flags := &Flags{GlobalFlags: &flag.GlobalFlags{}, Update: true, Push: true, Args: []string{"ci.yaml"}}
	// the cache directory is resolved from the environment after git is found
	getEnv := func(string) string {
		t.Fatal("nothing must be set up before git is found")
		return ""
	}
	looked := []string{}
	lookPath := func(file string) (string, error) {
		looked = append(looked, file)
		return "", exec.ErrNotFound
	}
	err := Run(context.Background(), logrus.NewEntry(logrus.New()), flags, &Secrets{}, getEnv, lookPath)
	if !errors.Is(err, ErrGitNotFound) {
		t.Fatalf("wanted ErrGitNotFound, got %v", err)
	}
	if diff := cmp.Diff([]string{"git"}, looked); diff != "" {
		t.Fatal(diff)
	}
}

func Test_buildParam(t *testing.T) {
	t.Parallel()
	flags := &Flags{
		GlobalFlags:      &flag.GlobalFlags{Config: ".ghadrift.yaml"},
		Args:             []string{"ci.yaml"},
		PWD:              "/tmp",
		Update:           true,
		GitHubRepository: "ghadrift/ghadrift",
	}
	got := buildParam(flags)
	if got.Format != scan.FormatText {
		t.Errorf("Format: wanted text, got %s", got.Format)
	}
	if len(got.WorkflowFilePaths) != 1 || got.ConfigFilePath != ".ghadrift.yaml" || got.PWD != "/tmp" {
		t.Errorf("unexpected param: %+v", got)
	}
	if got.RepoOwner != "ghadrift" || got.RepoName != "ghadrift" {
		t.Errorf("unexpected repository: %s/%s", got.RepoOwner, got.RepoName)
	}
	if !got.Update || got.Push {
		t.Error("Update must be true and Push must be false")
	}
}
