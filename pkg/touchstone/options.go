package touchstone

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/edp1096/nport/internal/consts"
	"github.com/edp1096/nport/pkg/network"
)

// Unit is the frequency unit declared on the option line.
type Unit int

const (
	Hz Unit = iota
	KHz
	MHz
	GHz
)

func (u Unit) String() string {
	switch u {
	case Hz:
		return "Hz"
	case KHz:
		return "kHz"
	case MHz:
		return "MHz"
	case GHz:
		return "GHz"
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Multiplier converts a frequency in this unit to Hz.
func (u Unit) Multiplier() float64 {
	switch u {
	case KHz:
		return consts.KHZ
	case MHz:
		return consts.MHZ
	case GHz:
		return consts.GHZ
	}
	return consts.HZ
}

// Options is the content of the option line:
//
//	# <unit> <parameter> <format> R <z0>
//
// Tokens may appear in any order and each one is optional.
type Options struct {
	Unit   Unit
	Type   network.ParamType
	Format Format
	Z0     float64
}

// DefaultOptions are the values assumed for tokens missing from the option line.
func DefaultOptions() Options {
	return Options{
		Unit:   GHz,
		Type:   network.Scattering,
		Format: MagAngle,
		Z0:     consts.DefaultZ0,
	}
}

// The line is upper-cased before lexing, so keywords only need one case.
var optionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Hash", Pattern: `#`},
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([E][-+]?\d+)?`},
	{Name: "Word", Pattern: `[A-Z_]+`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Other", Pattern: `[^\s]`},
})

type optionLine struct {
	Items []*optionItem `"#" @@*`
}

type optionItem struct {
	Unit      *string  `  @("HZ" | "KHZ" | "MHZ" | "GHZ")`
	Parameter *string  `| @("S" | "Y" | "Z" | "H" | "G")`
	Format    *string  `| @("RI" | "MA" | "DB")`
	Z0        *float64 `| "R" @Number`
}

var optionParser = participle.MustBuild[optionLine](
	participle.Lexer(optionLexer),
	participle.Elide("Whitespace"),
)

var units = map[string]Unit{"HZ": Hz, "KHZ": KHz, "MHZ": MHz, "GHZ": GHz}

// ParseOptions parses a "#" option line. A trailing "!" comment is ignored.
// The parameter type is reported as written; callers decide which types they
// support.
func ParseOptions(line string) (Options, error) {
	opts := DefaultOptions()

	text, _, _ := strings.Cut(line, "!")
	text = strings.ToUpper(strings.TrimSpace(text))

	parsed, err := optionParser.ParseString("", text)
	if err != nil {
		return opts, optionError(err)
	}

	for _, item := range parsed.Items {
		switch {
		case item.Unit != nil:
			opts.Unit = units[*item.Unit]
		case item.Parameter != nil:
			typ, err := network.ParseParamType(*item.Parameter)
			if err != nil {
				return opts, fmt.Errorf("%w: %v", ErrParse, err)
			}
			opts.Type = typ
		case item.Format != nil:
			f, err := ParseFormat(*item.Format)
			if err != nil {
				return opts, err
			}
			opts.Format = f
		case item.Z0 != nil:
			if !(*item.Z0 > 0) || math.IsInf(*item.Z0, 0) {
				return opts, fmt.Errorf("%w: reference impedance %g", ErrParse, *item.Z0)
			}
			opts.Z0 = *item.Z0
		}
	}

	return opts, nil
}

func optionError(err error) error {
	var unexpected *participle.UnexpectedTokenError
	if errors.As(err, &unexpected) {
		if unexpected.Unexpected.EOF() {
			return fmt.Errorf("%w: option line ends early: %v", ErrParse, err)
		}
		return fmt.Errorf("%w: %s", ErrUnrecognizedOption, unexpected.Unexpected.Value)
	}
	return fmt.Errorf("%w: option line: %v", ErrParse, err)
}

// String renders the options as an option line.
func (o Options) String() string {
	return fmt.Sprintf("# %s %s %s R %g", strings.ToUpper(o.Unit.String()), o.Type, o.Format, o.Z0)
}
