package env

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/matchd-cloud/matchd/pkg/log"
	"github.com/pkg/errors"
)

var variables = new(Environment)

// Process the environment variables set for matchd.
func Process() error {
	if err := envconfig.Process("matchd", variables); err != nil {
		return errors.Wrap(err, "failed to process environment variables")
	}

	// set the log level
	if err := log.SetLevel(variables.LogLevel); err != nil {
		return errors.Wrap(err, "failed to set log level")
	}

	return nil
}

// Variables returns the processed environment variables.
func Variables() Environment {
	return *variables
}

// Environment defines the environment variables used
// by matchd.
type Environment struct {
	LogLevel       string        `default:"info" split_words:"true"`
	Port           int           `default:"8080"`
	WorkerPoolSize int           `default:"8" split_words:"true"`
	ComputeCommand string        `default:"" split_words:"true"`
	ComputeTimeout time.Duration `default:"2h" split_words:"true"`
}
