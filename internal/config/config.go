package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/victormicco/mahito/internal/types"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for mahito. Unset keys
// stay nil so a lower-precedence source can fill them in.
type FileConfig struct {
	Timestamps *bool   `yaml:"timestamps,omitempty"`
	Streams    *bool   `yaml:"streams,omitempty"`
	Attributes *bool   `yaml:"attributes,omitempty"`
	Properties *bool   `yaml:"properties,omitempty"`
	Admin      *bool   `yaml:"admin,omitempty"`
	Verify     *bool   `yaml:"verify,omitempty"`
	Include    *string `yaml:"include,omitempty"`
	Exclude    *string `yaml:"exclude,omitempty"`

	LogLevel  *string `yaml:"log_level,omitempty"`
	LogFormat *string `yaml:"log_format,omitempty"`
	LogFile   *string `yaml:"log_file,omitempty"`
	// Journal enables the JSONL run journal. Off by default.
	Journal *bool `yaml:"journal,omitempty"`
}

// LocalNames are the file names LoadLocal looks for, in order.
var LocalNames = []string{".mahito.yml", ".mahito.yaml", "mahito.yml", "mahito.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches dir for a local config file.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// GlobalPath returns $XDG_CONFIG_HOME/mahito/config.yml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func GlobalPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", errors.New("no config dir")
	}
	return filepath.Join(base, "mahito", "config.yml"), nil
}

// LoadGlobal loads the per-user config file.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p, err := GlobalPath()
	if err != nil {
		return cfg, err
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// Merge returns over with every unset key taken from under.
func Merge(over, under FileConfig) FileConfig {
	out := over
	if out.Timestamps == nil {
		out.Timestamps = under.Timestamps
	}
	if out.Streams == nil {
		out.Streams = under.Streams
	}
	if out.Attributes == nil {
		out.Attributes = under.Attributes
	}
	if out.Properties == nil {
		out.Properties = under.Properties
	}
	if out.Admin == nil {
		out.Admin = under.Admin
	}
	if out.Verify == nil {
		out.Verify = under.Verify
	}
	if out.Include == nil {
		out.Include = under.Include
	}
	if out.Exclude == nil {
		out.Exclude = under.Exclude
	}
	if out.LogLevel == nil {
		out.LogLevel = under.LogLevel
	}
	if out.LogFormat == nil {
		out.LogFormat = under.LogFormat
	}
	if out.LogFile == nil {
		out.LogFile = under.LogFile
	}
	if out.Journal == nil {
		out.Journal = under.Journal
	}
	return out
}

// Apply overrides the cleaning toggles of opts with the keys set in fc.
func (fc FileConfig) Apply(opts types.CleanOptions) types.CleanOptions {
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&opts.ClearTimestamps, fc.Timestamps)
	set(&opts.ClearStreams, fc.Streams)
	set(&opts.ClearAttributes, fc.Attributes)
	set(&opts.ClearProperties, fc.Properties)
	set(&opts.ClearOwner, fc.Admin)
	set(&opts.VerifyContent, fc.Verify)
	if fc.Include != nil {
		opts.Include = *fc.Include
	}
	if fc.Exclude != nil {
		opts.Exclude = *fc.Exclude
	}
	return opts
}

const starter = `# mahito configuration
# Command-line flags override this file; a local .mahito.yml overrides the
# global one.

# cleaning steps
timestamps: true
streams: true
attributes: true
properties: true
# owner clearing needs Administrator rights on Windows
admin: false
# fail a file if its primary content changes while cleaning
verify: false

# comma-separated globs, matched against the path relative to the target
# directory and against the base name
# include: "**/*.docx,**/*.xlsx"
# exclude: "**/node_modules/**"

log_level: info
log_format: text
# log_file: /var/log/mahito.log
journal: false
`

// WriteStarter writes a commented starter config to path. An existing file
// is only replaced when force is set.
func WriteStarter(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(starter), 0o644)
}
