package app

import (
	"testing"
	"time"

	F "diesel.com/sph2d/fluid"
	G "diesel.com/sph2d/geometry"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHeadless(t *testing.T) {
	con, err := ReadConfigString("[Fluid]\nWidth = 400\nHeight = 400\nParticleCount = 100")
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	sph := F.NewSPHFluid(con.Fluid.Parameters(), logger)

	rc := RunConfig{Frames: 10, Frame: 16 * time.Millisecond, Report: 5}
	summary, err := RunHeadless(sph, rc, logger)
	require.NoError(t, err)

	assert.Equal(t, 100, summary.Count)
	assert.Equal(t, 10*F.DefaultStepCount, summary.Steps)
	assert.GreaterOrEqual(t, summary.MinDensity, float64(F.MIN_DENSITY))
	assert.LessOrEqual(t, summary.MaxDensity, float64(F.MAX_DENSITY))

	box := G.Box{Width: 400, Height: 400}
	for i := range sph.Positions {
		assert.True(t, box.Contains(sph.Positions[i], sph.Params.ParticleRadius))
	}

	//Two progress reports plus the final summary
	reports := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.InfoLevel {
			reports++
		}
	}
	assert.Equal(t, 3, reports)
}

func TestRunHeadlessRejects(t *testing.T) {
	logger, _ := test.NewNullLogger()
	sph := F.NewSPHFluid(F.DefaultParameters(), logger)

	for _, rc := range []RunConfig{
		{Frames: 0, Frame: time.Millisecond},
		{Frames: 1, Frame: 0},
		{Frames: 1, Frame: time.Millisecond, Report: -1},
	} {
		_, err := RunHeadless(sph, rc, logger)
		assert.Error(t, err)
	}
	assert.Equal(t, 0, sph.Count())
}
