package ui

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"tableflip.dev/lanes/pkg/app"
	"tableflip.dev/lanes/pkg/config"
	"tableflip.dev/lanes/pkg/loop"
	"tableflip.dev/lanes/pkg/store"
	teaui "tableflip.dev/lanes/pkg/tui/app"
	"tableflip.dev/lanes/pkg/tui/theme"
)

// UI launches the interactive board.
type UI struct {
	Config  *config.Config
	Options app.Options
	Journal *store.Journal
	Logger  log.FieldLogger
	// Viper, when set, is watched for config file changes while the board runs.
	Viper *viper.Viper
}

// Do runs the board until the user quits.
func (u *UI) Do(ctx context.Context) error {
	logger := u.Logger
	if logger == nil {
		logger = log.New()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timers := &loop.Deferred{}
	opts := u.Options
	opts.Logger = logger
	svc := app.New(timers, opts)

	if u.Journal != nil {
		session := u.Journal.Begin()
		logger.WithField("session", session.ID()).Info("journal session started")
		go session.Follow(ctx, svc.Store().Events())
	}

	mode := theme.Light
	if u.Config != nil {
		mode = theme.Resolve(u.Config.Theme)
	}

	var configs chan *config.Config
	if u.Viper != nil {
		configs = make(chan *config.Config, 1)
		config.Watch(u.Viper, func(cfg *config.Config) {
			logger.WithField("file", cfg.File).Info("config reloaded")
			select {
			case configs <- cfg:
			case <-ctx.Done():
			}
		}, func(err error) {
			logger.WithError(err).Warn("config reload failed")
		})
	}

	return teaui.Run(svc, timers, teaui.Options{
		Mode:    mode,
		Logger:  logger,
		Configs: configs,
	})
}
