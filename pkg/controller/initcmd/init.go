package initcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	templateConfig = `# yaml-language-server: $schema=https://raw.githubusercontent.com/ghadrift/ghadrift/refs/heads/main/json-schema/ghadrift.json
# ghadrift - https://github.com/ghadrift/ghadrift
# files:
#   - pattern: .github/workflows/*.yaml

# The base branch of pull requests created by ghadrift -u -p.
# base: main

ignore_actions:
# - name: actions/checkout
# - name: aquaproj/.*
#   name_format: regexp
#   ref: v2\..*
#   ref_format: regexp
`
	filePermission os.FileMode = 0o644
	dirPermission  os.FileMode = 0o755
)

// Init creates a configuration file from a template.
// An existing file is left as it is, and false is returned.
func (c *Controller) Init(configFilePath string) (bool, error) {
	f, err := afero.Exists(c.fs, configFilePath)
	if err != nil {
		return false, fmt.Errorf("check if a configuration file exists: %w", err)
	}
	if f {
		return false, nil
	}
	if err := c.fs.MkdirAll(filepath.Dir(configFilePath), dirPermission); err != nil {
		return false, fmt.Errorf("create a directory: %w", err)
	}
	if err := afero.WriteFile(c.fs, configFilePath, []byte(templateConfig), filePermission); err != nil {
		return false, fmt.Errorf("create a configuration file: %w", err)
	}
	return true, nil
}
