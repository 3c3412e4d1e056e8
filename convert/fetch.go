package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"cssm/state"
)

// Fetch downloads URL into destination directory.
func Fetch(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("fetch")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no URL has been specified")
	}
	dst, err := destinationDir(cmd.Args().Get(1))
	if err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	log.Info("Fetching", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		if err == nil {
			log.Info("Fetching completed", zap.Duration("elapsed", time.Since(start)))
		}
	}(time.Now())

	_, err = fetchTo(ctx, newPipeline(env), src, dst, cmd.String("type"), cmd.Bool("overwrite"))
	return err
}

// fetchTo saves src under dst and returns resulting path.
func fetchTo(ctx context.Context, p *pipeline, src, dst, mimeType string, overwrite bool) (string, error) {
	env := p.env

	var outputName string
	err := env.Loader.Track(func() error {
		f, err := p.fetch(ctx, src, mimeType)
		if err != nil {
			return err
		}

		outputName = buildOutputPath(f, dst, env)
		if _, err := os.Stat(outputName); err == nil {
			if !overwrite {
				return fmt.Errorf("output file already exists: %s", outputName)
			}
			env.Log.Warn("Overwriting existing file", zap.String("file", outputName))
		} else if !os.IsNotExist(err) {
			return err
		} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
			return fmt.Errorf("unable to create output directory: %w", err)
		}

		if err := os.WriteFile(outputName, f.Bytes(), 0644); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		if err := os.Chtimes(outputName, time.Time{}, f.ModTime()); err != nil {
			env.Log.Debug("Unable to set modification time", zap.String("file", outputName), zap.Error(err))
		}
		env.Log.Debug("Saved", zap.String("file", outputName), zap.String("type", f.Type()), zap.Int64("size", f.Size()))
		return nil
	})
	if err != nil {
		return "", err
	}

	// Store result for debugging
	if env.Rpt != nil {
		if err := env.Rpt.StoreCopy("fetched/"+filepath.Base(outputName), outputName); err != nil {
			env.Log.Warn("Unable to store fetched file in report", zap.Error(err))
		}
	}
	return outputName, nil
}
