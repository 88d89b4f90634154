package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dacharyc/texttest"
)

const (
	expectedText = "The brown bull\nwas seen laughing\nover the blue moon\ngenerated at 10:00\n"
	actualText   = "The brown bull\nwas not seen laughing\nover the blue moon\ngenerated at 11:30\n"
)

// writeFiles writes each content to its own file in a temp dir and returns
// the paths in order.
func writeFiles(t *testing.T, contents ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for i, c := range contents {
		path := filepath.Join(dir, "file"+string(rune('a'+i))+".txt")
		if err := os.WriteFile(path, []byte(c), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
		paths = append(paths, path)
	}
	return paths
}

// isolateHome points HOME and XDG_CONFIG_HOME at an empty temp dir.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	return home
}

func TestRunExitCodes(t *testing.T) {
	isolateHome(t)
	paths := writeFiles(t, expectedText, actualText, expectedText)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		contains []string
	}{
		{
			name:     "identical files",
			args:     []string{paths[0], paths[2]},
			wantCode: exitIdentical,
			contains: []string{"Asserting actual and expected text are equal", "The text is as expected"},
		},
		{
			name:     "different files",
			args:     []string{paths[0], paths[1]},
			wantCode: exitDiffer,
			contains: []string{"The differences are:", "- was seen laughing", "+ was not seen laughing", "- generated at 10:00"},
		},
		{
			name:     "ignore patterns hide acceptable differences",
			args:     []string{"-I", "seen laughing$", "--ignore", "^generated at ", paths[0], paths[1]},
			wantCode: exitIdentical,
		},
		{
			name:     "one ignore pattern is not enough",
			args:     []string{"-I", "^generated at ", paths[0], paths[1]},
			wantCode: exitDiffer,
			contains: []string{"  generated at 11:30"},
		},
		{
			name:     "aligned layout",
			args:     []string{"--layout", "aligned", paths[0], paths[1]},
			wantCode: exitDiffer,
			contains: []string{"* was not seen laughing"},
		},
		{
			name:     "myers algorithm",
			args:     []string{"-A", "myers", paths[0], paths[1]},
			wantCode: exitDiffer,
			contains: []string{"- was seen laughing"},
		},
		{
			name:     "listeners replace the text dump",
			args:     []string{paths[0], paths[2]},
			wantCode: exitIdentical,
			contains: []string{"Expected text: " + paths[0] + " (4 lines)", "Actual text: " + paths[2] + " (4 lines)"},
		},
		{
			name:     "missing file",
			args:     []string{paths[0], filepath.Join(filepath.Dir(paths[0]), "nope.txt")},
			wantCode: exitError,
		},
		{
			name:     "one argument",
			args:     []string{paths[0]},
			wantCode: exitError,
		},
		{
			name:     "bad layout",
			args:     []string{"--layout", "sideways", paths[0], paths[1]},
			wantCode: exitError,
		},
		{
			name:     "bad ignore pattern",
			args:     []string{"-I", "(", paths[0], paths[1]},
			wantCode: exitError,
		},
		{
			name:     "version",
			args:     []string{"--version"},
			wantCode: exitIdentical,
			contains: []string{"texttest version dev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tt.args, strings.NewReader(""), &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("run() = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, tt.wantCode, stdout.String(), stderr.String())
			}
			for _, s := range tt.contains {
				if !strings.Contains(stdout.String(), s) {
					t.Errorf("stdout does not contain %q:\n%s", s, stdout.String())
				}
			}
			if strings.Contains(stdout.String(), "The expected text is:") {
				t.Error("CLI should log the file name, not the full expected text")
			}
		})
	}
}

func TestRunQuiet(t *testing.T) {
	isolateHome(t)
	paths := writeFiles(t, expectedText, actualText)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-q", paths[0], paths[1]}, strings.NewReader(""), &stdout, &stderr)
	if code != exitDiffer {
		t.Fatalf("run() = %d, want %d", code, exitDiffer)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet mode wrote output: %q", stdout.String())
	}
}

func TestRunStdin(t *testing.T) {
	isolateHome(t)
	paths := writeFiles(t, actualText)

	var stdout, stderr bytes.Buffer
	code := run([]string{"--stdin", paths[0]}, strings.NewReader(actualText), &stdout, &stderr)
	if code != exitIdentical {
		t.Fatalf("run() = %d, want %d\nstderr: %s", code, exitIdentical, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Expected text: <stdin>") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunUsesProfile(t *testing.T) {
	home := isolateHome(t)
	paths := writeFiles(t, expectedText, actualText)

	profile := "ignore = seen laughing$\nignore = ^generated at\n"
	if err := os.WriteFile(filepath.Join(home, ".texttestrc.logs"), []byte(profile), 0644); err != nil {
		t.Fatalf("Failed to write profile: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"--profile", "logs", paths[0], paths[1]}, strings.NewReader(""), &stdout, &stderr)
	if code != exitIdentical {
		t.Fatalf("run() = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, exitIdentical, stdout.String(), stderr.String())
	}

	code = run([]string{"--profile=missing", paths[0], paths[1]}, strings.NewReader(""), &stdout, &stderr)
	if code != exitError {
		t.Errorf("missing profile: run() = %d, want %d", code, exitError)
	}
}

func TestRunColor(t *testing.T) {
	isolateHome(t)
	t.Setenv("NO_COLOR", "")
	paths := writeFiles(t, "old\n", "new\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-c", "blue,yellow", paths[0], paths[1]}, strings.NewReader(""), &stdout, &stderr)
	if code != exitDiffer {
		t.Fatalf("run() = %d, want %d", code, exitDiffer)
	}
	if !strings.Contains(stdout.String(), "\x1b[34m- old") {
		t.Errorf("expected blue deletion, got %q", stdout.String())
	}

	stdout.Reset()
	run([]string{"--no-color", "-c", "blue,yellow", paths[0], paths[1]}, strings.NewReader(""), &stdout, &stderr)
	if strings.Contains(stdout.String(), "\x1b[") {
		t.Errorf("--no-color output contains escapes: %q", stdout.String())
	}
}

func TestLoadConfig(t *testing.T) {
	configContent := `# Comment line
ignore-case
ignore-whitespace = yes
layout = aligned
algorithm=myers
color=red,green
ignore = ^generated at
I = \d{4}-\d{2}-\d{2}
`
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "testconfig")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}

	if !cfg.ignoreCase || !cfg.ignoreWhitespace {
		t.Errorf("ignoreCase = %v, ignoreWhitespace = %v, want both true", cfg.ignoreCase, cfg.ignoreWhitespace)
	}
	if cfg.layout != "aligned" {
		t.Errorf("layout = %q, want aligned", cfg.layout)
	}
	if cfg.algorithm != "myers" {
		t.Errorf("algorithm = %q, want myers", cfg.algorithm)
	}
	if cfg.colorSpec != "red,green" {
		t.Errorf("colorSpec = %q, want %q", cfg.colorSpec, "red,green")
	}
	if len(cfg.ignore) != 2 || cfg.ignore[1] != `\d{4}-\d{2}-\d{2}` {
		t.Errorf("ignore = %q", cfg.ignore)
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.layout != "inline" || cfg.algorithm != "histogram" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigBadLine(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad")
	if err := os.WriteFile(configPath, []byte("layout = inline\nlayout = diagonal\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	_, err := loadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("loadConfig error = %v, want a line 2 error", err)
	}
}

func TestApplyConfigOption(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		checkFn func(cfg config) bool
		wantErr bool
	}{
		{"ignore-case", "true", func(cfg config) bool { return cfg.ignoreCase }, false},
		{"i", "no", func(cfg config) bool { return !cfg.ignoreCase }, false},
		{"w", "", func(cfg config) bool { return cfg.ignoreWhitespace }, false},
		{"no-color", "1", func(cfg config) bool { return cfg.noColor }, false},
		{"A", "myers", func(cfg config) bool { return cfg.algorithm == "myers" }, false},
		{"algorithm", "patience", nil, true},
		{"ignore", "[", nil, true},
		{"unknown-option", "value", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := defaultConfig()
			err := applyConfigOption(&cfg, tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.checkFn != nil && !tt.checkFn(cfg) {
				t.Error("config check failed")
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpHome := isolateHome(t)

	t.Run("no config file exists", func(t *testing.T) {
		result, err := findConfigFile("")
		if err != nil || result != "" {
			t.Errorf("expected empty path, got %q, %v", result, err)
		}
	})

	t.Run("finds XDG config", func(t *testing.T) {
		xdgDir := filepath.Join(tmpHome, ".config", "texttest")
		if err := os.MkdirAll(xdgDir, 0755); err != nil {
			t.Fatalf("failed to create XDG dir: %v", err)
		}
		configPath := filepath.Join(xdgDir, "config")
		if err := os.WriteFile(configPath, []byte("# config"), 0644); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}
		defer os.RemoveAll(filepath.Join(tmpHome, ".config"))

		result, _ := findConfigFile("")
		if result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("prefers .texttestrc", func(t *testing.T) {
		homeConfig := filepath.Join(tmpHome, ".texttestrc")
		if err := os.WriteFile(homeConfig, []byte("# home config"), 0644); err != nil {
			t.Fatalf("failed to create home config: %v", err)
		}
		defer os.Remove(homeConfig)

		result, _ := findConfigFile("")
		if result != homeConfig {
			t.Errorf("expected %q, got %q", homeConfig, result)
		}
	})

	t.Run("profile not found is an error", func(t *testing.T) {
		if _, err := findConfigFile("nonexistent"); err == nil {
			t.Error("expected error for missing profile")
		}
	})
}

func TestPrescanProfile(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b"}, ""},
		{[]string{"--profile", "ci", "a", "b"}, "ci"},
		{[]string{"--profile=ci", "a", "b"}, "ci"},
		{[]string{"a", "--profile"}, ""},
	}
	for _, tt := range tests {
		if got := prescanProfile(tt.args); got != tt.want {
			t.Errorf("prescanProfile(%q) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestNewDiffer(t *testing.T) {
	d, err := newDiffer("myers", texttest.Options{IgnoreCase: true}, "aligned")
	if err != nil {
		t.Fatalf("newDiffer() error = %v", err)
	}
	md, ok := d.(*texttest.MyersDiffer)
	if !ok {
		t.Fatalf("newDiffer() = %T, want *texttest.MyersDiffer", d)
	}
	if !md.Options.IgnoreCase || md.Options.Layout != texttest.AlignedLayout {
		t.Errorf("options = %+v", md.Options)
	}

	if _, err := newDiffer("histogram", texttest.Options{}, "inline"); err != nil {
		t.Errorf("newDiffer(histogram) error = %v", err)
	}
	if _, err := newDiffer("patience", texttest.Options{}, "inline"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestIgnoreFilter(t *testing.T) {
	f, err := ignoreFilter(nil)
	if err != nil || f != nil {
		t.Errorf("ignoreFilter(nil) = %v, %v", f, err)
	}

	f, err = ignoreFilter([]string{"^a", "b$"})
	if err != nil {
		t.Fatalf("ignoreFilter() error = %v", err)
	}
	diff := &texttest.DiffResult{Lines: []texttest.DiffLine{
		texttest.NewDiffLine("abc", texttest.Deleted, 1),
		texttest.NewDiffLine("xyb", texttest.Inserted, 1),
		texttest.NewDiffLine("mid", texttest.Inserted, 2),
	}}
	f(diff)
	if diff.Count(texttest.Unchanged) != 2 || diff.Lines[2].Type != texttest.Inserted {
		t.Errorf("ignoreFilter() result = %+v", diff.Lines)
	}
}
