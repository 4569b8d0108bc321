package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/akyairhashvil/notifit/internal/util"
)

// Settings are the user-tunable runtime options read from TOML files.
type Settings struct {
	DBPath    string               `koanf:"db_path"`
	LogLevel  string               `koanf:"log_level"` // debug, info, warn, error
	LogFile   string               `koanf:"log_file"`
	Theme     string               `koanf:"theme"`
	FrameRate int                  `koanf:"frame_rate"` // layout passes per second
	Fonts     map[string]FontFiles `koanf:"fonts"`      // keyed by catalog font ID
}

// FontFiles points at the TrueType files used to measure one catalog font.
type FontFiles struct {
	Regular string `koanf:"regular"`
	Bold    string `koanf:"bold"` // falls back to Regular
}

// Load reads the default config locations; missing files are skipped.
func Load(dataDir string) (*Settings, error) {
	return LoadFrom(dataDir, ConfigPaths()...)
}

// LoadFrom reads the given TOML files in order, later files overriding
// earlier ones, and fills defaults relative to dataDir.
func LoadFrom(dataDir string, paths ...string) (*Settings, error) {
	k := koanf.New(".")
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	s.applyDefaults(dataDir)
	return s, nil
}

// ConfigPaths lists the config files in increasing priority.
func ConfigPaths() []string {
	paths := []string{}
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		paths = append(paths, filepath.Join(base, AppName, ConfigName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", AppName, ConfigName))
	}
	paths = append(paths, LocalConfig)
	return paths
}

func (s *Settings) applyDefaults(dataDir string) {
	if s.DBPath == "" {
		s.DBPath = filepath.Join(dataDir, DBFileName)
	}
	if s.LogFile == "" {
		s.LogFile = filepath.Join(dataDir, LogFileName)
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
	if s.FrameRate <= 0 || s.FrameRate > 240 {
		s.FrameRate = 60
	}
	if s.Fonts == nil {
		s.Fonts = map[string]FontFiles{}
	}
	s.DBPath = util.ExpandHome(s.DBPath)
	s.LogFile = util.ExpandHome(s.LogFile)
	for id, files := range s.Fonts {
		files.Regular = util.ExpandHome(files.Regular)
		files.Bold = util.ExpandHome(files.Bold)
		if files.Bold == "" {
			files.Bold = files.Regular
		}
		s.Fonts[id] = files
	}
}

// FrameInterval converts FrameRate into the pause between layout passes.
func (s *Settings) FrameInterval() time.Duration {
	if s.FrameRate <= 0 {
		return DefaultFrameInterval
	}
	return time.Second / time.Duration(s.FrameRate)
}
