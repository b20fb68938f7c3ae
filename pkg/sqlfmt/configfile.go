package sqlfmt

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arenasql/arenafmt/pkg/sqlfmt/core"
)

// ConfigFile is the on-disk shape of .arenafmt.yaml: the Mode fields §6
// exposes, all optional so a config file can override just one.
type ConfigFile struct {
	LineLength int    `yaml:"line_length,omitempty"`
	Dialect    string `yaml:"dialect,omitempty"`
	Fast       *bool  `yaml:"fast,omitempty"`
	NoJinjafmt *bool  `yaml:"no_jinjafmt,omitempty"`
}

var configFilenames = []string{".arenafmt.yaml", ".arenafmt.yml", "arenafmt.yaml"}

// LoadConfigFile searches the current directory and its parents up to the
// git root, then $HOME, for the first matching config filename.
func LoadConfigFile() (*ConfigFile, error) {
	dir, err := os.Getwd()
	if err != nil {
		return &ConfigFile{}, nil
	}
	return loadConfigFileFrom(dir)
}

// LoadConfigFileForPath is LoadConfigFile anchored at filePath's directory
// instead of the process's working directory, for per-file resolution.
func LoadConfigFileForPath(filePath string) (*ConfigFile, error) {
	return loadConfigFileFrom(filepath.Dir(filePath))
}

func loadConfigFileFrom(startDir string) (*ConfigFile, error) {
	for _, path := range searchPaths(startDir) {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cf ConfigFile
		if err := yaml.Unmarshal(content, &cf); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		return &cf, nil
	}
	return &ConfigFile{}, nil
}

func searchPaths(startDir string) []string {
	var paths []string
	dir := startDir
	for {
		for _, filename := range configFilenames {
			paths = append(paths, filepath.Join(dir, filename))
		}
		parent := filepath.Dir(dir)
		if parent == dir || isGitRoot(dir) {
			break
		}
		dir = parent
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		for _, filename := range configFilenames {
			paths = append(paths, filepath.Join(homeDir, filename))
		}
	}
	return paths
}

func isGitRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// ApplyToMode overlays the config file's explicitly-set fields onto mode,
// command-line flags always taking precedence by being applied after this
// call (§6's "ambient stack" config layering, grounded on the precedence
// the original teacher's ApplyToConfig established).
func (cf *ConfigFile) ApplyToMode(mode *core.Mode) error {
	if cf.LineLength > 0 {
		mode.LineLength = cf.LineLength
	}
	if cf.Dialect != "" {
		d, err := parseDialect(cf.Dialect)
		if err != nil {
			return err
		}
		mode.Dialect = d
	}
	if cf.Fast != nil {
		mode.Fast = *cf.Fast
	}
	if cf.NoJinjafmt != nil {
		mode.NoJinjafmt = *cf.NoJinjafmt
	}
	return nil
}

func parseDialect(s string) (core.Dialect, error) {
	switch s {
	case string(core.DialectPolyglot):
		return core.DialectPolyglot, nil
	case string(core.DialectDuckDB):
		return core.DialectDuckDB, nil
	case string(core.DialectClickHouse):
		return core.DialectClickHouse, nil
	default:
		return "", fmt.Errorf("unknown dialect in config: %s", s)
	}
}
