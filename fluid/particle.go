package fluid

//Particle properties are stored as parallel index aligned slices on SPHFluid. Particle
//is the uniform per-particle view handed to renderers and debug overlays.
import (
	"fmt"

	V "diesel.com/sph2d/vector"
)

//Particle - copy of one particle's observable state
type Particle struct {
	Position V.Vec2
	Velocity V.Vec2
	Density  float32
}

//Speed - velocity magnitude
func (p Particle) Speed() float32 {
	return V.Length(p.Velocity)
}

func (p Particle) String() string {
	return fmt.Sprintf("pos %v vel %v density %f", p.Position, p.Velocity, p.Density)
}

//Particle returns the state of particle i
func (fluid *SPHFluid) Particle(i int) Particle {
	return Particle{fluid.Positions[i], fluid.Velocities[i], fluid.Densities[i]}
}

//Count of particles
func (fluid *SPHFluid) Count() int {
	return len(fluid.Positions)
}
