package fluid

import (
	"time"

	"github.com/sirupsen/logrus"
)

//stageTimer logs how long each pipeline stage took. It only reads the clock when the
//logger is at debug level so a normal Step pays nothing for it.
type stageTimer struct {
	log     logrus.FieldLogger
	enabled bool
	start   time.Time
	last    time.Time
}

func newStageTimer(log logrus.FieldLogger) stageTimer {
	t := stageTimer{log: log, enabled: debugEnabled(log)}
	if t.enabled {
		t.start = time.Now()
		t.last = t.start
	}
	return t
}

func (t *stageTimer) mark(stage string) {
	if !t.enabled {
		return
	}
	now := time.Now()
	t.log.WithFields(logrus.Fields{
		"stage":   stage,
		"elapsed": now.Sub(t.last),
	}).Debug("step stage")
	t.last = now
}

func (t *stageTimer) total() {
	if !t.enabled {
		return
	}
	t.log.WithField("elapsed", time.Since(t.start)).Debug("step")
}

func debugEnabled(log logrus.FieldLogger) bool {
	switch l := log.(type) {
	case *logrus.Logger:
		return l.IsLevelEnabled(logrus.DebugLevel)
	case *logrus.Entry:
		return l.Logger.IsLevelEnabled(logrus.DebugLevel)
	}
	return false
}
