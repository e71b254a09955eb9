package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared application logger. It stays quiet until
// BootstrapLogger runs; tests may swap in their own instance.
var Log *logrus.Logger

func init() {
	// Packages log before main configures anything; start with a
	// quiet logger so library use stays silent by default.
	Log = logrus.New()
	Log.SetOutput(io.Discard)
}

func BootstrapLogger(level logrus.Level) {
	Log = logrus.New()
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Log.SetLevel(level)
	Log.SetOutput(os.Stdout)
}
