package wadmesh

import (
	"io"
	"log"
)

// logger receives progress lines and recovered-error messages. Output is discarded unless a
// host installs its own logger.
var logger = newDiscardLogger()

func newDiscardLogger() *log.Logger {
	return log.New(io.Discard, "", log.LstdFlags)
}

// SetLogger installs the logger used by the package. A nil logger silences it again.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = newDiscardLogger()
	}
	logger = l
}
