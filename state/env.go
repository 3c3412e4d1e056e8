// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cssm/config"
	"cssm/media"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// Registry owns object URLs minted during this run, Loader signals long
	// running media operations. Both are handed to collaborators explicitly.
	Registry *media.Registry
	Loader   *Loader

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}

// PrepareMedia creates object URL registry and loader from loaded
// configuration. Must be called after Cfg and Log are set.
func (e *LocalEnv) PrepareMedia() {
	e.Registry = media.NewRegistry(e.Cfg.Media.Registry.Origin, e.Log)
	log := e.Log.Named("loader")
	e.Loader = NewLoader(func(visible bool) {
		log.Debug("Loader state changed", zap.Bool("visible", visible))
	})
}
