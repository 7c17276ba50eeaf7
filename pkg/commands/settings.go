package commands

import (
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"tableflip.dev/lanes/pkg/app"
	"tableflip.dev/lanes/pkg/config"
	"tableflip.dev/lanes/pkg/lifecycle"
	"tableflip.dev/lanes/pkg/store"
)

// settings is everything a command needs from the config file.
type settings struct {
	v   *viper.Viper
	cfg *config.Config
}

func loadSettings() (*settings, error) {
	v := config.New()
	cfg, err := config.LoadFrom(v)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = log.DebugLevel.String()
	}
	return &settings{v: v, cfg: cfg}, nil
}

func (s *settings) logger(w io.Writer) (*log.Logger, error) {
	return config.NewLogger(s.cfg.Log, w)
}

func (s *settings) boardOptions() (app.Options, error) {
	ids, err := lifecycle.NewIDGenerator(s.cfg.IDs)
	if err != nil {
		return app.Options{}, err
	}
	opts := app.Options{
		EntryTransition: s.cfg.EntryTransition,
		ExitTransition:  s.cfg.ExitTransition,
		IDs:             ids,
	}
	if s.cfg.Seed {
		opts.Seed = app.SampleBoard()
	}
	return opts, nil
}

// journal opens the change journal, or returns nil when force is false and
// journaling is disabled.
func (s *settings) journal(logger log.FieldLogger, force bool) (*store.Journal, error) {
	if !force && !s.cfg.Journal.Enabled {
		return nil, nil
	}
	return store.Open(s.cfg.Journal.Path, logger)
}
