// Package logger provides the configured zerolog logger used by every binary.
package logger

import (
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

var setupOnce sync.Once

// New returns a logger tagged with the service name. Error events logged with
// .Stack() include a pkg/errors stack trace even for plain stdlib errors.
func New(service string) zerolog.Logger {
	setupOnce.Do(func() {
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
			if _, ok := err.(stackTracer); !ok {
				err = pkgerrors.WithStack(err)
			}
			return zpkgerrors.MarshalStack(err)
		}
		if lvl, err := zerolog.ParseLevel(os.Getenv("HEARTH_LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
			zerolog.SetGlobalLevel(lvl)
		}
	})

	return zerolog.New(os.Stdout).With().
		Str("service", service).
		Timestamp().
		Logger()
}
