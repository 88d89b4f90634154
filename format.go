package texttest

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders a DiffResult as a human-readable report.
type Formatter interface {
	FormatDifferences(diff *DiffResult) (string, error)
}

// Report line prefixes, one per ChangeType.
const (
	UnchangedMarker = "  "
	InsertedMarker  = "+ "
	DeletedMarker   = "- "
	ModifiedMarker  = "* "
	ImaginaryMarker = "? "
)

// Marker returns the report prefix for a change type. Unknown types are
// reported like unchanged lines.
func Marker(typ ChangeType) string {
	switch typ {
	case Inserted:
		return InsertedMarker
	case Deleted:
		return DeletedMarker
	case Modified:
		return ModifiedMarker
	case Imaginary:
		return ImaginaryMarker
	default:
		return UnchangedMarker
	}
}

// DefaultFormatter writes one marker-prefixed line per diff line.
type DefaultFormatter struct{}

// FormatDifferences implements Formatter.
func (DefaultFormatter) FormatDifferences(diff *DiffResult) (string, error) {
	if diff == nil {
		return "", invalidArgument("diff")
	}

	var sb strings.Builder
	for _, l := range diff.Lines {
		sb.WriteString(Marker(l.Type))
		sb.WriteString(l.Text())
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// ColorFormatter writes the same report as DefaultFormatter, colouring each
// line by its change type. Types without a colour are written plain. Colour
// output follows color.NoColor unless a colour was explicitly enabled.
type ColorFormatter struct {
	Colors map[ChangeType]*color.Color
}

// NewColorFormatter returns a ColorFormatter with the default palette: bold
// red deletions, bold green insertions, bold yellow modifications and grey
// imaginary lines.
func NewColorFormatter() *ColorFormatter {
	return &ColorFormatter{
		Colors: map[ChangeType]*color.Color{
			Deleted:   color.New(color.FgRed, color.Bold),
			Inserted:  color.New(color.FgGreen, color.Bold),
			Modified:  color.New(color.FgYellow, color.Bold),
			Imaginary: color.New(color.FgHiBlack),
		},
	}
}

// FormatDifferences implements Formatter.
func (f *ColorFormatter) FormatDifferences(diff *DiffResult) (string, error) {
	if diff == nil {
		return "", invalidArgument("diff")
	}

	var sb strings.Builder
	for _, l := range diff.Lines {
		line := Marker(l.Type) + l.Text()
		if c := f.Colors[l.Type]; c != nil {
			line = c.Sprint(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

// foregroundColors maps color names to foreground attributes.
var foregroundColors = map[string]color.Attribute{
	"black":         color.FgBlack,
	"red":           color.FgRed,
	"green":         color.FgGreen,
	"yellow":        color.FgYellow,
	"blue":          color.FgBlue,
	"magenta":       color.FgMagenta,
	"cyan":          color.FgCyan,
	"white":         color.FgWhite,
	"brightblack":   color.FgHiBlack,
	"brightred":     color.FgHiRed,
	"brightgreen":   color.FgHiGreen,
	"brightyellow":  color.FgHiYellow,
	"brightblue":    color.FgHiBlue,
	"brightmagenta": color.FgHiMagenta,
	"brightcyan":    color.FgHiCyan,
	"brightwhite":   color.FgHiWhite,
}

// backgroundColors maps color names to background attributes.
var backgroundColors = map[string]color.Attribute{
	"black":         color.BgBlack,
	"red":           color.BgRed,
	"green":         color.BgGreen,
	"yellow":        color.BgYellow,
	"blue":          color.BgBlue,
	"magenta":       color.BgMagenta,
	"cyan":          color.BgCyan,
	"white":         color.BgWhite,
	"brightblack":   color.BgHiBlack,
	"brightred":     color.BgHiRed,
	"brightgreen":   color.BgHiGreen,
	"brightyellow":  color.BgHiYellow,
	"brightblue":    color.BgHiBlue,
	"brightmagenta": color.BgHiMagenta,
	"brightcyan":    color.BgHiCyan,
	"brightwhite":   color.BgHiWhite,
}

// ColorNames returns a list of all available color names.
func ColorNames() []string {
	return []string{
		"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
		"brightblack", "brightred", "brightgreen", "brightyellow",
		"brightblue", "brightmagenta", "brightcyan", "brightwhite",
	}
}

// ParseColor parses a color specification. The spec can be:
//   - A single color name: "red" -> foreground red
//   - Foreground:background: "red:white" -> red text on white background
//   - Empty string returns nil (no color)
//
// Returns an error if the color name is not recognized.
func ParseColor(spec string) (*color.Color, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}

	parts := strings.SplitN(spec, ":", 2)
	var attrs []color.Attribute

	if fgName := strings.ToLower(strings.TrimSpace(parts[0])); fgName != "" {
		fg, ok := foregroundColors[fgName]
		if !ok {
			return nil, fmt.Errorf("unknown color: %s", fgName)
		}
		attrs = append(attrs, fg)
	}

	if len(parts) > 1 {
		if bgName := strings.ToLower(strings.TrimSpace(parts[1])); bgName != "" {
			bg, ok := backgroundColors[bgName]
			if !ok {
				return nil, fmt.Errorf("unknown background color: %s", bgName)
			}
			attrs = append(attrs, bg)
		}
	}

	return color.New(attrs...), nil
}

// ParseColorSpec parses a "delete_color,insert_color" specification where
// each color is "fg" or "fg:bg" (e.g. "red,green" or "red:white,green:black").
//
// If only one color is specified, it's used for deletions and insertions
// keep the default bold green.
func ParseColorSpec(spec string) (deleteColor, insertColor *color.Color, err error) {
	parts := strings.SplitN(spec, ",", 2)

	deleteColor, err = ParseColor(parts[0])
	if err != nil {
		return nil, nil, fmt.Errorf("delete color: %w", err)
	}

	if len(parts) > 1 {
		insertColor, err = ParseColor(parts[1])
		if err != nil {
			return nil, nil, fmt.Errorf("insert color: %w", err)
		}
	} else {
		insertColor = color.New(color.FgGreen, color.Bold)
	}

	return deleteColor, insertColor, nil
}
