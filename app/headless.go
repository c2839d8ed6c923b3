package app

import (
	"fmt"
	"time"

	F "diesel.com/sph2d/fluid"
	"github.com/sirupsen/logrus"
)

//RunConfig - a windowless run
type RunConfig struct {
	Frames int
	Frame  time.Duration
	Report int //Log Stats every Report frames, 0 for only the final summary
}

func (rc *RunConfig) CheckInit() error {
	if rc.Frames <= 0 {
		return fmt.Errorf("Need to specify a positive frame count, got %d", rc.Frames)
	}
	if rc.Frame <= 0 {
		return fmt.Errorf("Need to specify a positive frame time, got %s", rc.Frame)
	}
	if rc.Report < 0 {
		return fmt.Errorf("Report interval must not be negative, got %d", rc.Report)
	}
	return nil
}

//RunHeadless resets the fluid and advances it rc.Frames frames without a window or
//pointer input, returning the final Summary
func RunHeadless(sph *F.SPHFluid, rc RunConfig, log logrus.FieldLogger) (F.Summary, error) {
	if err := rc.CheckInit(); err != nil {
		return F.Summary{}, err
	}
	sph.Reset()
	ctl := Controls{}
	start := time.Now()

	for i := 1; i <= rc.Frames; i++ {
		Frame(sph, Pointer{}, &ctl, rc.Frame)
		if rc.Report > 0 && i%rc.Report == 0 {
			log.WithField("frame", i).Info(F.Stats(sph).String())
		}
	}

	summary := F.Stats(sph)
	log.WithFields(logrus.Fields{
		"frames":  rc.Frames,
		"steps":   summary.Steps,
		"elapsed": time.Since(start),
	}).Info(summary.String())
	return summary, nil
}
