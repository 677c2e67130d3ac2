package initcmd_test

import (
	"testing"

	"github.com/ghadrift/ghadrift/pkg/config"
	"github.com/ghadrift/ghadrift/pkg/controller/initcmd"
	"github.com/spf13/afero"
)

func TestController_Init(t *testing.T) {
	t.Parallel()
	fs := afero.NewMemMapFs()
	ctrl := initcmd.New(fs)
	created, err := ctrl.Init(".github/ghadrift.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("the file must be created")
	}
	// the template must be a valid configuration
	if err := config.NewReader(fs).Read(&config.Config{}, ".github/ghadrift.yaml"); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, ".github/ghadrift.yaml", []byte("base: develop\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	created, err = ctrl.Init(".github/ghadrift.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("the existing file must not be overwritten")
	}
	b, err := afero.ReadFile(fs, ".github/ghadrift.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "base: develop\n" {
		t.Fatalf("the file was changed: %s", string(b))
	}
}
