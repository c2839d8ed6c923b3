package fluid

import (
	"fmt"

	V "diesel.com/sph2d/vector"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Summary - aggregate particle state for status displays
type Summary struct {
	Count         int
	MeanDensity   float64
	StdDensity    float64
	MinDensity    float64
	MaxDensity    float64
	MaxSpeed      float64
	ForceStrength float64
	Time          float64
	Steps         int
}

//Stats summarizes the current particle state. An empty fluid yields a zero Summary
//apart from the force strength and clock.
func Stats(fluid *SPHFluid) Summary {
	s := Summary{
		Count:         fluid.Count(),
		ForceStrength: float64(fluid.ForceStrength()),
		Time:          fluid.Timer.T,
		Steps:         fluid.Timer.Steps,
	}
	if s.Count == 0 {
		return s
	}

	densities := make([]float64, s.Count)
	speeds := make([]float64, s.Count)
	for i := 0; i < s.Count; i++ {
		densities[i] = float64(fluid.Densities[i])
		speeds[i] = float64(V.Length(fluid.Velocities[i]))
	}

	s.MeanDensity, s.StdDensity = stat.MeanStdDev(densities, nil)
	if s.Count == 1 {
		s.StdDensity = 0
	}
	s.MinDensity = floats.Min(densities)
	s.MaxDensity = floats.Max(densities)
	s.MaxSpeed = floats.Max(speeds)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d density=%.4f±%.4f [%.4f, %.4f] maxSpeed=%.2f force=%.3f t=%.3f",
		s.Count, s.MeanDensity, s.StdDensity, s.MinDensity, s.MaxDensity, s.MaxSpeed, s.ForceStrength, s.Time)
}
