package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/d4l3k/messagediff"
	"github.com/mwantia/menufs/data"
	"github.com/mwantia/menufs/log"
	"github.com/spf13/afero"
)

func testEnv(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnvironment_Defaults(t *testing.T) {
	cfg := FromEnvironment(testEnv(map[string]string{
		"HOME": "/home/user",
	}))

	expected := PathsConfig{
		ConfigHome: "/home/user/.config",
		ConfigDirs: []string{"/etc/xdg"},
		DataHome:   "/home/user/.local/share",
		DataDirs:   []string{"/usr/local/share", "/usr/share"},
		CacheHome:  "/home/user/.cache",
	}
	if diff, equal := messagediff.PrettyDiff(expected, cfg.Paths); !equal {
		t.Errorf("Unexpected paths: %s", diff)
	}

	if cfg.UserAppDir() != "/home/user/.local/share/applications" {
		t.Errorf("Unexpected user app dir '%s'", cfg.UserAppDir())
	}
	if cfg.MergePattern != "*.menu" {
		t.Errorf("Unexpected merge pattern '%s'", cfg.MergePattern)
	}
	if cfg.Cache.Snapshot != "/home/user/.cache/menufs/snapshot.db" {
		t.Errorf("Unexpected snapshot path '%s'", cfg.Cache.Snapshot)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestFromEnvironment_XDG(t *testing.T) {
	cfg := FromEnvironment(testEnv(map[string]string{
		"HOME":                "/home/user",
		"XDG_CONFIG_HOME":     "/cfg",
		"XDG_CONFIG_DIRS":     "/etc/xdg/a::/etc/xdg/b",
		"XDG_DATA_HOME":       "/data",
		"XDG_DATA_DIRS":       "/usr/share",
		"XDG_CURRENT_DESKTOP": "ubuntu:GNOME",
		"XDG_MENU_PREFIX":     "gnome-",
	}))

	if cfg.Desktop != "ubuntu:GNOME" || cfg.MenuPrefix != "gnome-" {
		t.Errorf("Unexpected desktop '%s' or prefix '%s'", cfg.Desktop, cfg.MenuPrefix)
	}

	expected := []string{"/data/applications", "/usr/share/applications"}
	if diff, equal := messagediff.PrettyDiff(expected, cfg.AppDirs()); !equal {
		t.Errorf("Unexpected app dirs: %s", diff)
	}

	expected = []string{"/cfg", "/etc/xdg/a", "/etc/xdg/b"}
	if diff, equal := messagediff.PrettyDiff(expected, cfg.ConfigSearchDirs()); !equal {
		t.Errorf("Unexpected config dirs: %s", diff)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menufs.yaml")
	content := `
desktop: XFCE
menu_file: ${HOME}/menus/custom.menu
merge_pattern: "*.xml"
paths:
  data_home: ${HOME}/data
cache:
  snapshot: ""
  debounce: 2s
log:
  level: debug
  json: true
metrics:
  listen: 127.0.0.1:9100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFile(path, testEnv(map[string]string{"HOME": "/home/user"}))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.MergePattern != "*.xml" {
		t.Errorf("Unexpected merge pattern '%s'", cfg.MergePattern)
	}
	if cfg.Desktop != "XFCE" || cfg.MenuFile != "/home/user/menus/custom.menu" {
		t.Errorf("Unexpected desktop '%s' or menu file '%s'", cfg.Desktop, cfg.MenuFile)
	}
	if cfg.Paths.DataHome != "/home/user/data" || cfg.Paths.ConfigHome != "/home/user/.config" {
		t.Errorf("Unexpected paths %+v", cfg.Paths)
	}
	if cfg.Cache.Snapshot != "" || cfg.Cache.Debounce != 2*time.Second || cfg.Cache.EntryCacheSize != 512 {
		t.Errorf("Unexpected cache config %+v", cfg.Cache)
	}
	if cfg.Log.Level != log.Debug || !cfg.Log.JSON {
		t.Errorf("Unexpected log config %+v", cfg.Log)
	}
	if cfg.Metrics.Listen != "127.0.0.1:9100" {
		t.Errorf("Unexpected metrics listen '%s'", cfg.Metrics.Listen)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menufs.yaml")
	if err := os.WriteFile(path, []byte("cache:\n  debounce: -1s\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadFile(path, testEnv(map[string]string{"HOME": "/home/user"})); err == nil {
		t.Error("Expected negative debounce to be rejected")
	}
	if err := os.WriteFile(path, []byte("merge_pattern: \"[\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFile(path, testEnv(map[string]string{"HOME": "/home/user"})); err == nil {
		t.Error("Expected invalid merge pattern to be rejected")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), testEnv(nil)); err == nil {
		t.Error("Expected missing file to fail")
	}
}

func TestLocateMenuFile(t *testing.T) {
	cfg := FromEnvironment(testEnv(map[string]string{
		"HOME":            "/home/user",
		"XDG_MENU_PREFIX": "xfce-",
	}))

	fs := afero.NewMemMapFs()
	if _, err := cfg.LocateMenuFile(fs); !errors.Is(err, data.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	for _, path := range []string{
		"/etc/xdg/menus/xfce-applications.menu",
		"/home/user/.config/menus/xfce-applications.menu",
	} {
		if err := afero.WriteFile(fs, path, []byte("<Menu/>"), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	path, err := cfg.LocateMenuFile(fs)
	if err != nil {
		t.Fatalf("LocateMenuFile failed: %v", err)
	}
	if path != "/home/user/.config/menus/xfce-applications.menu" {
		t.Errorf("Expected user menu to win, got '%s'", path)
	}

	cfg.MenuFile = "/explicit.menu"
	if path, _ := cfg.LocateMenuFile(fs); path != "/explicit.menu" {
		t.Errorf("Expected explicit menu file, got '%s'", path)
	}
}
