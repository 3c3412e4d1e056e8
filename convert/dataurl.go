package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssm/media"
	"cssm/state"
)

// DataURL prints local file as data URL.
func DataURL(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input file has been specified")
	}
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	return writeDataURL(os.Stdout, src, cmd.String("type"))
}

func writeDataURL(w io.Writer, path, mimeType string) error {
	f, err := media.OpenFile(path, mimeType)
	if err != nil {
		return fmt.Errorf("unable to open source: %w", err)
	}
	s, err := media.DataURL(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}
