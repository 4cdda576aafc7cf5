package logging

import (
	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
	"sync"
)

var validate *validator.Validate
var once sync.Once

func validateConfig(cfg *LoggingConfig) error {
	const op errors.Op = "logging.validateConfig"
	if cfg == nil {
		return errors.New(op).Msg(errMsgNilConfig)
	}

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	if err := validate.Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	if !cfg.ConsoleLogging && !cfg.FileLogging {
		return errors.New(op).Msg(errMsgNoChannels)
	}

	return nil
}
