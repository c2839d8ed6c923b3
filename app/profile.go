package app

import (
	"fmt"

	"github.com/pkg/profile"
)

//Profiler - a running pkg/profile session. A nil Profiler is a no-op.
type Profiler struct {
	Mode    string
	session interface{ Stop() }
}

//StartProfile starts a cpu or mem profile written under dir. An empty mode returns
//nil and no error.
func StartProfile(mode string, dir string) (*Profiler, error) {
	var kind func(*profile.Profile)
	switch mode {
	case "":
		return nil, nil
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfile
	default:
		return nil, fmt.Errorf("unknown profile mode '%s', expected cpu or mem", mode)
	}
	session := profile.Start(kind, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook)
	return &Profiler{Mode: mode, session: session}, nil
}

//Stop flushes the profile. Safe to call more than once and on nil.
func (p *Profiler) Stop() {
	if p == nil || p.session == nil {
		return
	}
	p.session.Stop()
	p.session = nil
}
