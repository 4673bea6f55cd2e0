package core

import "github.com/sirupsen/logrus"

// log is the package-level logger, configured by SetLogLevel. Mirrors the
// teacher's direct logrus usage in network.go and replication.go rather
// than introducing a new logging abstraction.
var log = logrus.New()

// SetLogLevel parses and applies lvl (e.g. "debug", "info", "warn");
// invalid levels are ignored and the previous level is kept.
func SetLogLevel(lvl string) {
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		return
	}
	log.SetLevel(parsed)
}
