package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cssm/media"
	"cssm/state"
)

// Size prints dimensions of images given as local paths or URLs.
func Size(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("size")

	sources := cmd.Args().Slice()
	if len(sources) == 0 {
		return errors.New("no input source has been specified")
	}

	log.Info("Processing starting", zap.Int("sources", len(sources)), zap.Int("workers", env.Cfg.Media.Decode.Workers))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	results, err := measure(ctx, newPipeline(env), sources, cmd.String("type"), log)
	if werr := writeMeasurements(os.Stdout, results); werr != nil {
		err = multierr.Append(err, werr)
	}
	return err
}

type measurement struct {
	source string
	image  media.Image
	err    error
}

// measure sizes all sources concurrently, no more than configured number at
// a time. Every source is processed even when some fail, failures are
// combined. Results are in natural order of sources.
func measure(ctx context.Context, p *pipeline, sources []string, mimeType string, log *zap.Logger) ([]measurement, error) {
	results := make([]measurement, len(sources))

	var g errgroup.Group
	g.SetLimit(max(p.env.Cfg.Media.Decode.Workers, 1))
	for i, src := range sources {
		g.Go(func() error {
			results[i] = measurement{source: src}
			results[i].image, results[i].err = p.measureOne(ctx, src, mimeType)
			return nil
		})
	}
	_ = g.Wait()

	slices.SortStableFunc(results, func(a, b measurement) int {
		switch {
		case natural.Less(a.source, b.source):
			return -1
		case natural.Less(b.source, a.source):
			return 1
		}
		return 0
	})

	var err error
	for _, r := range results {
		if r.err == nil {
			log.Debug("Measured", zap.String("source", r.source), zap.Stringer("format", r.image.Format), zap.Stringer("size", r.image.Dimensions))
			continue
		}
		log.Error("Unable to measure", zap.String("source", r.source), zap.Error(r.err))
		err = multierr.Append(err, fmt.Errorf("%s: %w", r.source, r.err))
	}
	return results, err
}

func (p *pipeline) measureOne(ctx context.Context, src, mimeType string) (media.Image, error) {
	var img media.Image
	err := p.env.Loader.Track(func() error {
		f, err := p.fetch(ctx, src, mimeType)
		if err != nil {
			return err
		}
		img, err = p.decoder.Decode(ctx, f)
		return err
	})
	return img, err
}

// writeMeasurements prints "source WIDTHxHEIGHT" for every successful result.
func writeMeasurements(w io.Writer, results []measurement) error {
	var sb strings.Builder
	for _, r := range results {
		if r.err != nil {
			continue
		}
		fmt.Fprintf(&sb, "%s %s\n", r.source, r.image.Dimensions)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
