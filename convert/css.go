package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssm/cssval"
	"cssm/state"
)

// CSS prints value given on command line as CSS.
func CSS(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("css")

	if cmd.Args().Len() == 0 {
		return errors.New("no value has been specified")
	}
	// shell may split unquoted sequences like [12, 8]
	text := strings.Join(cmd.Args().Slice(), " ")

	unit := env.Cfg.Formatter.DefaultUnit
	if cmd.IsSet("unit") {
		unit = cmd.String("unit")
	}
	strict := env.Cfg.Formatter.Strict || cmd.Bool("strict")

	out, err := formatValue(text, unit, cmd.String("property"), strict)
	if err != nil {
		return err
	}
	log.Debug("Value formatted", zap.String("input", text), zap.String("unit", unit), zap.String("output", out))

	_, err = fmt.Fprintln(os.Stdout, out)
	return err
}

// formatValue renders text either as bare value or as declaration when
// property is not empty. In strict mode produced value must survive CSS
// tokenizer.
func formatValue(text, unit, property string, strict bool) (string, error) {
	v, err := cssval.ParseText(text)
	if err != nil {
		return "", fmt.Errorf("unable to parse value %q: %w", text, err)
	}

	if strict {
		if err := cssval.Check(cssval.Format(v, unit)); err != nil {
			return "", fmt.Errorf("value %q does not produce valid CSS: %w", text, err)
		}
	}

	if property != "" {
		return cssval.Declaration(property, v, unit), nil
	}
	return cssval.Format(v, unit), nil
}
