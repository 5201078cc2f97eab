package platform

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// Handler is a fatal error handler. It is expected never to return.
type Handler func(message string)

var (
	fatalLogger  = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}).With().Timestamp().Logger()
	fatalHandler Handler = defaultFatalHandler
)

// SetFatalHandler replaces the process-wide fatal error handler. Passing
// nil invokes the current handler immediately, matching the source's
// "NULL invokes the current handler" contract for
// sy_set_fatal_error_handler, rather than silently ignoring the call.
func SetFatalHandler(h Handler) {
	if h == nil {
		fatalHandler(nonNullHandlerRequiredMessage)
		return
	}
	fatalHandler = h
}

const nonNullHandlerRequiredMessage = "platform: SetFatalHandler called with a nil handler"

// Fatal routes a formatted message to the current fatal handler. Callers
// never expect control to return here; the default handler terminates
// the process.
func Fatal(format string, args ...interface{}) {
	fatalHandler(fmt.Sprintf(format, args...))
}

// defaultFatalHandler logs the failure and then panics. An unrecovered
// Go panic already satisfies "the handler is expected never to return":
// it unwinds and terminates the process, and unlike os.Exit it leaves a
// stack trace and lets test harnesses observe the failure via recover,
// which is how this module's own fatal-path tests are written.
func defaultFatalHandler(message string) {
	event := fatalLogger.Error().Str("component", "corelock/platform")
	if isDebugBuild {
		event = event.Caller(1)
	}
	event.Msg(message)
	panic(message)
}
