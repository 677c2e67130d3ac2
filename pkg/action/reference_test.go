package action_test

import (
	"testing"

	"github.com/ghadrift/ghadrift/pkg/action"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) { //nolint:funlen
	t.Parallel()
	data := []struct {
		name string
		uses string
		exp  *action.Reference
	}{
		{
			name: "semver",
			uses: "actions/setup-go@v5.0.1",
			exp: &action.Reference{
				Uses: "actions/setup-go@v5.0.1", Path: "actions/setup-go",
				Owner: "actions", Repo: "setup-go", Ref: "v5.0.1", Kind: action.KindSemver,
			},
		},
		{
			name: "major with v",
			uses: "actions/checkout@v2",
			exp: &action.Reference{
				Uses: "actions/checkout@v2", Path: "actions/checkout",
				Owner: "actions", Repo: "checkout", Ref: "v2", Kind: action.KindMajor,
			},
		},
		{
			name: "major digits only",
			uses: "actions/checkout@4",
			exp: &action.Reference{
				Uses: "actions/checkout@4", Path: "actions/checkout",
				Owner: "actions", Repo: "checkout", Ref: "4", Kind: action.KindMajor,
			},
		},
		{
			name: "sha",
			uses: "actions/checkout@8e5e7e5ab8b370d6c329ec480221332ada57f0ab",
			exp: &action.Reference{
				Uses: "actions/checkout@8e5e7e5ab8b370d6c329ec480221332ada57f0ab", Path: "actions/checkout",
				Owner: "actions", Repo: "checkout", Ref: "8e5e7e5ab8b370d6c329ec480221332ada57f0ab", Kind: action.KindSHA,
			},
		},
		{
			name: "main",
			uses: "suzuki-shunsuke/tfaction@main",
			exp: &action.Reference{
				Uses: "suzuki-shunsuke/tfaction@main", Path: "suzuki-shunsuke/tfaction",
				Owner: "suzuki-shunsuke", Repo: "tfaction", Ref: "main", Kind: action.KindBranch,
			},
		},
		{
			name: "master",
			uses: "foo/bar@master",
			exp: &action.Reference{
				Uses: "foo/bar@master", Path: "foo/bar",
				Owner: "foo", Repo: "bar", Ref: "master", Kind: action.KindBranch,
			},
		},
		{
			name: "internal",
			uses: "github/codeql-action/init@v3",
			exp: &action.Reference{
				Uses: "github/codeql-action/init@v3", Path: "github/codeql-action/init",
				Owner: "github", Repo: "codeql-action", Ref: "v3", Kind: action.KindInternal,
			},
		},
		{
			name: "docker",
			uses: "docker://alpine:3.20",
			exp:  &action.Reference{Uses: "docker://alpine:3.20", Kind: action.KindDocker},
		},
		{
			name: "local",
			uses: "./.github/actions/setup",
			exp:  &action.Reference{Uses: "./.github/actions/setup", Kind: action.KindLocal},
		},
		{
			name: "no pin",
			uses: "actions/checkout",
			exp:  &action.Reference{Uses: "actions/checkout", Kind: action.KindLocal},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(d.exp, action.Parse(d.uses)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestKind_Skipped(t *testing.T) {
	t.Parallel()
	for _, k := range []action.Kind{action.KindLocal, action.KindDocker, action.KindInternal, action.KindBranch} {
		if !k.Skipped() {
			t.Errorf("%s must be skipped", k)
		}
	}
	for _, k := range []action.Kind{action.KindSHA, action.KindMajor, action.KindSemver} {
		if k.Skipped() {
			t.Errorf("%s must be checked", k)
		}
	}
}
