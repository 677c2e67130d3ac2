// Package action parses action references such as `actions/checkout@v4`
// and decides whether a pinned version is behind the latest one.
package action

import (
	"regexp"
	"strings"
)

// Kind is the category of an action reference.
type Kind int

const (
	// KindLocal is a path in the same repository (./foo) or a reference without a pin.
	KindLocal Kind = iota
	// KindDocker is a container image (docker://...).
	KindDocker
	// KindInternal is an action under a subdirectory of a repository (owner/repo/path@ref).
	KindInternal
	// KindBranch is pinned to main or master.
	KindBranch
	// KindSHA is pinned to a full commit SHA.
	KindSHA
	// KindMajor is pinned to a major version only (v4, 4).
	KindMajor
	// KindSemver is pinned to any other version (v4.1.0, v4.1).
	KindSemver
)

func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindDocker:
		return "docker"
	case KindInternal:
		return "internal"
	case KindBranch:
		return "branch"
	case KindSHA:
		return "sha"
	case KindMajor:
		return "major"
	case KindSemver:
		return "semver"
	default:
		return "unknown"
	}
}

// Skipped reports whether references of the kind are never checked.
func (k Kind) Skipped() bool {
	switch k {
	case KindSHA, KindMajor, KindSemver:
		return false
	default:
		return true
	}
}

// Reference is a parsed `uses` value.
type Reference struct {
	Uses string
	// Path is the part before @: owner/repo or owner/repo/path.
	Path  string
	Owner string
	Repo  string
	Ref   string
	Kind  Kind
}

// FullName returns owner/repo.
func (r *Reference) FullName() string {
	return r.Owner + "/" + r.Repo
}

var (
	shaPattern   = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
	majorPattern = regexp.MustCompile(`^v?\d+$`)
)

var protectedBranches = map[string]struct{}{
	"main":   {},
	"master": {},
}

// Parse parses a `uses` value and classifies it.
func Parse(uses string) *Reference {
	ref := &Reference{Uses: uses}
	if strings.HasPrefix(uses, "docker://") {
		ref.Kind = KindDocker
		return ref
	}
	if strings.HasPrefix(uses, "./") || strings.HasPrefix(uses, "../") {
		ref.Kind = KindLocal
		return ref
	}
	p, pin, ok := strings.Cut(uses, "@")
	if !ok || pin == "" {
		ref.Kind = KindLocal
		return ref
	}
	ref.Path = p
	ref.Ref = pin
	segments := strings.Split(p, "/")
	if len(segments) < 2 { //nolint:mnd
		ref.Kind = KindLocal
		return ref
	}
	ref.Owner = segments[0]
	ref.Repo = segments[1]
	if len(segments) > 2 { //nolint:mnd
		ref.Kind = KindInternal
		return ref
	}
	ref.Kind = classifyPin(pin)
	return ref
}

func classifyPin(pin string) Kind {
	if _, ok := protectedBranches[pin]; ok {
		return KindBranch
	}
	if shaPattern.MatchString(pin) {
		return KindSHA
	}
	if majorPattern.MatchString(pin) {
		return KindMajor
	}
	return KindSemver
}
