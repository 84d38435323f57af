package prime

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the package-level structured logger used by the algorithm
// drivers for diagnostics (algorithm selection, timing, double-check
// mismatches). Grounded on resonancelab-psizero's use of
// github.com/sirupsen/logrus for per-request structured logging;
// here the "request" is a single top-level Pi(x) computation.
//
// Callers embedding this package in another binary may replace Logger
// wholesale or just reconfigure its formatter/level/output.
var Logger = newDefaultLogger()

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}

// driverLog returns a log entry pre-populated with the fields every
// driver call logs: the computation id, x, the chosen algorithm and
// its tuning parameters.
func driverLog(computationID, algorithm string, x string, alpha float64, threads int) *logrus.Entry {
	return Logger.WithFields(logrus.Fields{
		"computation_id": computationID,
		"algorithm":      algorithm,
		"x":              x,
		"alpha":          alpha,
		"threads":        threads,
	})
}
