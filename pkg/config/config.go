// Package config reads .ghadrift.yaml.
package config

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Files         []*File         `json:"files,omitempty" jsonschema:"description=Target workflow files. If files are passed via positional command line arguments, this is ignored"`
	IgnoreActions []*IgnoreAction `json:"ignore_actions,omitempty" yaml:"ignore_actions" jsonschema:"description=Actions that ghadrift never reports or updates"`
	// Base is the base branch of update pull requests. --base takes precedence.
	Base string `json:"base,omitempty" jsonschema:"description=The base branch of pull requests. The default is main"`
}

type File struct {
	Pattern string `json:"pattern" jsonschema:"description=A glob pattern of target files, relative to the directory of the configuration file"`
}

const (
	FormatFixedString = "fixed_string"
	FormatGlob        = "glob"
	FormatRegexp      = "regexp"
)

func (f *File) Init() error {
	if f.Pattern == "" {
		return errors.New("pattern is required")
	}
	if _, err := path.Match(f.Pattern, "a"); err != nil {
		return fmt.Errorf("parse pattern as a glob: %w", err)
	}
	return nil
}

type IgnoreAction struct {
	Name       string `json:"name" jsonschema:"description=Action name such as actions/checkout"`
	Ref        string `json:"ref,omitempty" jsonschema:"description=Pinned version. If empty, every version is ignored"`
	NameFormat string `json:"name_format,omitempty" yaml:"name_format" jsonschema:"enum=fixed_string,enum=glob,enum=regexp"`
	RefFormat  string `json:"ref_format,omitempty" yaml:"ref_format" jsonschema:"enum=fixed_string,enum=glob,enum=regexp"`
	nameRegexp *regexp.Regexp
	refRegexp  *regexp.Regexp
}

func compile(value, format string) (*regexp.Regexp, error) {
	switch format {
	case FormatFixedString:
		return nil, nil //nolint:nilnil
	case FormatGlob:
		if _, err := path.Match(value, "a"); err != nil {
			return nil, fmt.Errorf("parse as a glob: %w", err)
		}
		return nil, nil //nolint:nilnil
	case FormatRegexp:
		r, err := regexp.Compile(value)
		if err != nil {
			return nil, fmt.Errorf("compile as a regular expression: %w", err)
		}
		return r, nil
	default:
		return nil, errors.New("format must be fixed_string, glob, or regexp")
	}
}

// Init validates the rule and compiles its patterns.
// Formats default to fixed_string.
func (ia *IgnoreAction) Init() error {
	if ia.Name == "" {
		return errors.New("name is required")
	}
	if ia.NameFormat == "" {
		ia.NameFormat = FormatFixedString
	}
	r, err := compile(ia.Name, ia.NameFormat)
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	ia.nameRegexp = r
	if ia.Ref == "" {
		return nil
	}
	if ia.RefFormat == "" {
		ia.RefFormat = FormatFixedString
	}
	r, err = compile(ia.Ref, ia.RefFormat)
	if err != nil {
		return fmt.Errorf("ref: %w", err)
	}
	ia.refRegexp = r
	return nil
}

func match(value, pattern, format string, r *regexp.Regexp) (bool, error) {
	switch format {
	case FormatFixedString:
		return value == pattern, nil
	case FormatGlob:
		f, err := path.Match(pattern, value)
		if err != nil {
			return false, fmt.Errorf("match as a glob: %w", err)
		}
		return f, nil
	case FormatRegexp:
		return r.MatchString(value), nil
	default:
		return false, errors.New("unexpected format: " + format)
	}
}

// Match reports whether the action name pinned at ref is ignored.
func (ia *IgnoreAction) Match(name, ref string) (bool, error) {
	f, err := match(name, ia.Name, ia.NameFormat, ia.nameRegexp)
	if err != nil {
		return false, fmt.Errorf("match name: %w", err)
	}
	if !f || ia.Ref == "" {
		return f, nil
	}
	f, err = match(ref, ia.Ref, ia.RefFormat, ia.refRegexp)
	if err != nil {
		return false, fmt.Errorf("match ref: %w", err)
	}
	return f, nil
}

// Ignored reports whether any rule matches.
func (c *Config) Ignored(name, ref string) (bool, error) {
	for _, ia := range c.IgnoreActions {
		f, err := ia.Match(name, ref)
		if err != nil {
			return false, err
		}
		if f {
			return true, nil
		}
	}
	return false, nil
}

// Paths returns the candidate configuration file paths in priority order.
func Paths() []string {
	return []string{".ghadrift.yaml", ".github/ghadrift.yaml", ".ghadrift.yml", ".github/ghadrift.yml"}
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Find returns configFilePath if it isn't empty, else the first existing default path.
// It returns an empty string if no configuration file is found.
func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	for _, p := range Paths() {
		found, err := afero.Exists(f.fs, p)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", p, err)
		}
		if found {
			return p, nil
		}
	}
	return "", nil
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	for _, file := range cfg.Files {
		if err := file.Init(); err != nil {
			return fmt.Errorf("initialize file: %w", err)
		}
	}
	for _, ia := range cfg.IgnoreActions {
		if err := ia.Init(); err != nil {
			return fmt.Errorf("initialize ignore_action: %w", err)
		}
	}
	return nil
}

// Patterns returns the file patterns joined with the directory of the configuration file.
func (c *Config) Patterns(configFilePath string) []string {
	dir := filepath.Dir(configFilePath)
	if filepath.Base(dir) == ".github" {
		dir = filepath.Dir(dir)
	}
	patterns := make([]string, len(c.Files))
	for i, f := range c.Files {
		patterns[i] = filepath.Join(dir, f.Pattern)
	}
	return patterns
}
