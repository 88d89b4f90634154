// Command texttest compares an expected text file with an actual one, line
// by line, the way texttest.TextTester does inside tests.
//
// Usage:
//
//	texttest expected.txt actual.txt
//	texttest -I '^generated at ' expected.log actual.log
//	generate | texttest --stdin expected.txt
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dacharyc/texttest"
	flag "github.com/spf13/pflag"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Exit codes
const (
	exitIdentical = 0 // texts are equal
	exitDiffer    = 1 // texts differ
	exitError     = 2 // error occurred
)

// config holds configuration from profile files
type config struct {
	ignoreCase       bool
	ignoreWhitespace bool
	layout           string // "inline" or "aligned"
	algorithm        string // "histogram" or "myers"
	noColor          bool
	colorSpec        string
	ignore           []string // regular expressions for acceptable lines
}

// cliFlags holds all parsed command-line flags
type cliFlags struct {
	ignoreCase       *bool
	ignoreWhitespace *bool
	layout           *string
	algorithm        *string
	noColor          *bool
	colorSpec        *string
	ignore           *[]string
	stdinMode        *bool
	quiet            *bool
	help             *bool
	version          *bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	// Pre-scan for --profile before defining other flags
	configPath, err := findConfigFile(prescanProfile(args))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config %s: %v\n", configPath, err)
		return exitError
	}

	fs := flag.NewFlagSet("texttest", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := defineFlags(fs, cfg, stderr)
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if *f.version {
		fmt.Fprintf(stdout, "texttest version %s\n", Version)
		return exitIdentical
	}
	if *f.help {
		fs.Usage()
		return exitIdentical
	}

	differ, err := newDiffer(*f.algorithm, texttest.Options{
		IgnoreCase:       *f.ignoreCase,
		IgnoreWhitespace: *f.ignoreWhitespace,
	}, *f.layout)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	filter, err := ignoreFilter(*f.ignore)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	useColor := !*f.noColor && os.Getenv("NO_COLOR") == "" && (isTerminal(stdout) || *f.colorSpec != "")
	formatter, err := newFormatter(useColor, *f.colorSpec)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	expectedName, actualName, err := inputNames(fs.Args(), *f.stdinMode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return exitError
	}

	logOut := stdout
	if *f.quiet {
		logOut = io.Discard
	}
	logger := texttest.NewConsoleLogger(logOut)

	var equal bool
	tt := texttest.New(
		texttest.AsserterFunc(func(_ string, condition bool) { equal = condition }),
		texttest.WithLogger(logger),
		texttest.WithDiffer(differ),
		texttest.WithFormatter(formatter),
		texttest.WithFilter(filter),
	)

	// Log the source of each text instead of its full contents.
	tt.OnExpectedTextChanged(func(text string) {
		logger.Log(fmt.Sprintf("Expected text: %s (%d lines)", expectedName, len(texttest.SplitLines(text))))
	})
	tt.OnActualTextChanged(func(text string) {
		logger.Log(fmt.Sprintf("Actual text: %s (%d lines)", actualName, len(texttest.SplitLines(text))))
	})

	if *f.stdinMode {
		err = tt.ArrangeExpectedTextFrom(bufio.NewReader(stdin))
	} else {
		err = arrangeFile(tt.ArrangeExpectedTextFrom, expectedName)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error reading %s: %v\n", expectedName, err)
		return exitError
	}
	if err := arrangeFile(tt.ArrangeActualTextFrom, actualName); err != nil {
		fmt.Fprintf(stderr, "Error reading %s: %v\n", actualName, err)
		return exitError
	}

	tt.AssertActualTextEqualsExpectedText()
	if !equal {
		return exitDiffer
	}
	return exitIdentical
}

// defineFlags sets up all command-line flags with config defaults
func defineFlags(fs *flag.FlagSet, cfg config, out io.Writer) cliFlags {
	_ = fs.String("profile", "", "use settings from ~/.texttestrc.<profile>")

	f := cliFlags{
		ignoreCase:       fs.BoolP("ignore-case", "i", cfg.ignoreCase, "ignore case when comparing lines"),
		ignoreWhitespace: fs.BoolP("ignore-whitespace", "w", cfg.ignoreWhitespace, "ignore leading and trailing whitespace when comparing lines"),
		layout:           fs.String("layout", cfg.layout, "diff layout: inline or aligned"),
		algorithm:        fs.StringP("algorithm", "A", cfg.algorithm, "line diff algorithm: histogram or myers"),
		noColor:          fs.Bool("no-color", cfg.noColor, "disable colored output"),
		colorSpec:        fs.StringP("color", "c", cfg.colorSpec, "set colors for deleted/inserted lines (format: del_fg[:del_bg],ins_fg[:ins_bg])"),
		ignore:           fs.StringArrayP("ignore", "I", cfg.ignore, "treat changed lines matching this regular expression as unchanged (repeatable)"),
		stdinMode:        fs.Bool("stdin", false, "read the expected text from stdin, the actual text from the argument"),
		quiet:            fs.BoolP("quiet", "q", false, "print nothing, only set the exit code"),
		help:             fs.BoolP("help", "h", false, "show help"),
		version:          fs.BoolP("version", "v", false, "show version"),
	}

	fs.Usage = func() {
		fmt.Fprintf(out, "Usage: texttest [options] expected actual\n")
		fmt.Fprintf(out, "       texttest [options] --stdin actual\n")
		fmt.Fprintf(out, "\nLine-level text comparison with acceptable-difference filters.\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExit codes:\n")
		fmt.Fprintf(out, "  0  texts are equal\n")
		fmt.Fprintf(out, "  1  texts differ\n")
		fmt.Fprintf(out, "  2  error occurred\n")
	}

	return f
}

// prescanProfile extracts --profile value before flag parsing
func prescanProfile(args []string) string {
	for i, arg := range args {
		if arg == "--profile" && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, "--profile=") {
			return strings.TrimPrefix(arg, "--profile=")
		}
	}
	return ""
}

// newDiffer builds the line differ for an algorithm and layout name.
func newDiffer(algorithm string, opts texttest.Options, layout string) (texttest.Differ, error) {
	switch layout {
	case "inline":
		opts.Layout = texttest.InlineLayout
	case "aligned":
		opts.Layout = texttest.AlignedLayout
	default:
		return nil, fmt.Errorf("invalid layout %q (use inline or aligned)", layout)
	}

	switch algorithm {
	case "histogram":
		return texttest.NewHistogramDiffer(opts), nil
	case "myers":
		return texttest.NewMyersDiffer(opts), nil
	default:
		return nil, fmt.Errorf("invalid algorithm %q (use histogram or myers)", algorithm)
	}
}

// ignoreFilter compiles the ignore patterns into a single filter.
func ignoreFilter(patterns []string) (texttest.Filter, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	filters := make([]texttest.Filter, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		filters = append(filters, texttest.IgnoreMatching(re))
	}
	return texttest.ChainFilters(filters...), nil
}

// newFormatter returns the report formatter. Colors from colorSpec replace
// the default deletion and insertion colors.
func newFormatter(useColor bool, colorSpec string) (texttest.Formatter, error) {
	if !useColor {
		return texttest.DefaultFormatter{}, nil
	}

	f := texttest.NewColorFormatter()
	if colorSpec != "" && colorSpec != "default" {
		deleteColor, insertColor, err := texttest.ParseColorSpec(colorSpec)
		if err != nil {
			return nil, err
		}
		f.Colors[texttest.Deleted] = deleteColor
		f.Colors[texttest.Inserted] = insertColor
	}
	for _, c := range f.Colors {
		if c != nil {
			c.EnableColor()
		}
	}
	return f, nil
}

// inputNames returns the names of the expected and actual inputs.
func inputNames(args []string, stdinMode bool) (expected, actual string, err error) {
	if stdinMode {
		if len(args) < 1 {
			return "", "", fmt.Errorf("--stdin mode requires one file argument")
		}
		return "<stdin>", args[0], nil
	}
	if len(args) < 2 {
		return "", "", fmt.Errorf("requires two file arguments")
	}
	return args[0], args[1], nil
}

// arrangeFile opens path and hands it to arrange.
func arrangeFile(arrange func(io.Reader) error, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return arrange(file)
}

// isTerminal returns true if w is a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// findConfigFile returns the path to the config file for the given profile.
// If a profile is specified but the file doesn't exist, it returns an error.
func findConfigFile(profile string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // No home dir, use defaults
	}

	if profile == "" {
		path := filepath.Join(home, ".texttestrc")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			xdgConfig = filepath.Join(home, ".config")
		}
		path = filepath.Join(xdgConfig, "texttest", "config")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", nil // No default config found, use defaults
	}

	// Profile explicitly specified - file must exist
	path := filepath.Join(home, ".texttestrc."+profile)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("profile config file not found: %s", path)
	}
	return path, nil
}

// loadConfig reads a config file and returns the configuration.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var key, value string
		if idx := strings.Index(line, "="); idx >= 0 {
			key = strings.TrimSpace(line[:idx])
			value = strings.TrimSpace(line[idx+1:])
		} else {
			key = line
			value = "true"
		}

		if err := applyConfigOption(&cfg, key, value); err != nil {
			return cfg, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	return cfg, scanner.Err()
}

// defaultConfig returns a config with default values
func defaultConfig() config {
	return config{
		layout:    "inline",
		algorithm: "histogram",
	}
}

// applyConfigOption sets a config field based on key and value
func applyConfigOption(cfg *config, key, value string) error {
	switch key {
	case "ignore-case", "i":
		cfg.ignoreCase = parseBool(value)
	case "ignore-whitespace", "w":
		cfg.ignoreWhitespace = parseBool(value)
	case "no-color":
		cfg.noColor = parseBool(value)
	case "color", "c":
		cfg.colorSpec = value
	case "ignore", "I":
		if _, err := regexp.Compile(value); err != nil {
			return fmt.Errorf("invalid ignore pattern %q: %w", value, err)
		}
		cfg.ignore = append(cfg.ignore, value)
	case "layout":
		switch value {
		case "inline", "aligned":
			cfg.layout = value
		default:
			return fmt.Errorf("invalid layout: %s (use inline or aligned)", value)
		}
	case "algorithm", "A":
		switch value {
		case "histogram", "myers":
			cfg.algorithm = value
		default:
			return fmt.Errorf("invalid algorithm: %s (use histogram or myers)", value)
		}
	default:
		return fmt.Errorf("unknown option: %s", key)
	}
	return nil
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "yes" || s == "1" || s == ""
}
