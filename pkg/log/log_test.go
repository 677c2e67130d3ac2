package log_test

import (
	"testing"

	"github.com/ghadrift/ghadrift/pkg/log"
	"github.com/sirupsen/logrus"
)

func TestSetLevel(t *testing.T) {
	t.Parallel()
	data := []struct {
		name  string
		level string
		exp   logrus.Level
	}{
		{name: "empty keeps info", level: "", exp: logrus.InfoLevel},
		{name: "debug", level: "debug", exp: logrus.DebugLevel},
		{name: "warn", level: "warn", exp: logrus.WarnLevel},
		{name: "invalid keeps info", level: "loud", exp: logrus.InfoLevel},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			logE := log.New("v0.0.0")
			log.SetLevel(d.level, logE)
			if logE.Logger.Level != d.exp {
				t.Fatalf("wanted %v, got %v", d.exp, logE.Logger.Level)
			}
		})
	}
}

func TestEnableDebug(t *testing.T) {
	t.Parallel()
	logE := log.New("")
	log.EnableDebug(logE)
	if logE.Logger.Level != logrus.DebugLevel {
		t.Fatalf("wanted debug, got %v", logE.Logger.Level)
	}
	logE.Logger.Level = logrus.TraceLevel
	log.EnableDebug(logE)
	if logE.Logger.Level != logrus.TraceLevel {
		t.Fatalf("trace must be kept, got %v", logE.Logger.Level)
	}
}
