package fluid

import (
	"math"
	"time"

	G "diesel.com/sph2d/geometry"
	V "diesel.com/sph2d/vector"
	"github.com/sirupsen/logrus"
)

//SPHFluid structure: Holds the fluid particles as parallel index aligned slices, the
//spatial grid, and a reference to the shared simulation Parameters. Renderers read
//Positions/Velocities/Densities between steps and must not modify them.

const PARTICLE_SPACING = 15.0 //Initial lattice spacing
const MIN_DENSITY = 0.001
const MAX_DENSITY = 2.0
const MAX_FORCE = 1000.0     //Push force ceiling per particle per step
const MAX_SPEED = 500.0      //Safety valve threshold
const SPEED_VALVE = 0.2      //Scale applied when MAX_SPEED is exceeded
const PRESSURE_SCALE = 1000.0
const DRAG_SCALE = 0.01
const VISCOSITY_SCALE = 10.0
const INTERACT_EPSILON = 0.01
const INTERACT_FALLOFF = 1.1

//SPHFluid - 2D SPH fluid with a predicted position look-ahead
type SPHFluid struct {
	Params     *Parameters      //Shared configuration
	Grid       *SpatialHashGrid //Neighbor index, rebuilt every Step
	Kernel     Kernel           //Kernel constants for Params.SmoothingRadius
	Walls      G.Box            //Container walls
	Timer      Timer            //Simulated time
	Log        logrus.FieldLogger
	Positions  []V.Vec2  //Particle pos
	Predicted  []V.Vec2  //One step look-ahead used for density and forces
	Velocities []V.Vec2  //Particle vel
	Densities  []float32 //Clamped densities from the last step
	velScratch []V.Vec2  //Velocity snapshot for the viscosity pass
}

//Timer tracks simulated time advanced by Step
type Timer struct {
	T        float64
	TS       float64
	TIMELAST float64
	Steps    int
}

func (t *Timer) StepTime(dt float32) {
	t.TIMELAST = t.T
	t.TS = float64(dt)
	t.T = t.T + t.TS
	t.Steps++
}

//NewSPHFluid binds an engine to params. A nil logger falls back to the logrus
//standard logger. Particles are not laid out until Initialize or Reset.
func NewSPHFluid(params *Parameters, logger logrus.FieldLogger) *SPHFluid {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	fluid := &SPHFluid{Params: params, Log: logger}
	fluid.Resize()
	return fluid
}

//Resize rebuilds the cell table and kernel after the world bounds or smoothing radius
//changed. Callers must not invoke it mid-step.
func (fluid *SPHFluid) Resize() {
	p := fluid.Params
	fluid.Walls = G.Box{Width: p.Width, Height: p.Height}
	fluid.Kernel = InitKernel(p.SmoothingRadius)
	if fluid.Grid == nil {
		fluid.Grid = AllocateGrid(p.Width, p.Height, p.SmoothingRadius)
	} else {
		fluid.Grid.Resize(p.Width, p.Height, p.SmoothingRadius)
	}
	fluid.Grid.Rebuild(fluid.Positions)
}

//stale reports whether Params changed shape since the last Resize
func (fluid *SPHFluid) stale() bool {
	p := fluid.Params
	g := fluid.Grid
	return g == nil || g.Width != p.Width || g.Height != p.Height || g.CellSize != p.SmoothingRadius
}

//-----------------------------------------------------------------------------
//-----------------------------------------------------------------------------
//Initialize lays count particles on a near square lattice centered in the world,
//computes their starting densities from the placed positions and resets the adaptive
//force strength to its baseline
func (fluid *SPHFluid) Initialize(count int) {
	if count < 0 {
		count = 0
	}
	p := fluid.Params
	if fluid.stale() {
		fluid.Resize()
	}

	fluid.Positions = make([]V.Vec2, count)
	fluid.Predicted = make([]V.Vec2, count)
	fluid.Velocities = make([]V.Vec2, count)
	fluid.Densities = make([]float32, count)
	fluid.velScratch = make([]V.Vec2, count)
	fluid.Timer = Timer{}

	w := int(math.Sqrt(float64(count)))
	if w < 1 {
		w = 1
	}
	x0 := p.Width/2 - float32(w)*PARTICLE_SPACING/2
	y0 := p.Height/2 - float32(w)*PARTICLE_SPACING/2
	for i := 0; i < count; i++ {
		nPos := V.Vec2{x0 + float32(i%w)*PARTICLE_SPACING, y0 + float32(i/w)*PARTICLE_SPACING}
		fluid.Positions[i] = nPos
		fluid.Predicted[i] = nPos
	}

	fluid.Grid.Rebuild(fluid.Positions)
	for i := 0; i < count; i++ {
		fluid.Densities[i] = fluid.DensityAt(fluid.Positions[i])
	}

	p.ForceStrength = p.BaseForceStrength
}

//Reset re-initializes with Params.ParticleCount
func (fluid *SPHFluid) Reset() {
	fluid.Initialize(fluid.Params.ParticleCount)
}

//SetForceStrength - slider semantics, moves both the baseline and the current value
func (fluid *SPHFluid) SetForceStrength(strength float32) {
	fluid.Params.BaseForceStrength = strength
	fluid.Params.ForceStrength = strength
}

//ForceStrength - current adapted pressure coefficient
func (fluid *SPHFluid) ForceStrength() float32 {
	return fluid.Params.ForceStrength
}

//QueryNeighbors - particles within the smoothing radius of point
func (fluid *SPHFluid) QueryNeighbors(point V.Vec2) []int {
	return fluid.Grid.Neighbors(point, fluid.Params.SmoothingRadius)
}

//DensityAt samples the density field at pos: kernel weighted mass of every neighbor,
//measured to the neighbor's predicted position
func (fluid *SPHFluid) DensityAt(pos V.Vec2) float32 {
	mass := fluid.Params.ParticleMass
	density := float32(0.0)
	for _, j := range fluid.QueryNeighbors(pos) {
		dist := V.Length(V.Sub(pos, fluid.Predicted[j]))
		density += fluid.Kernel.Density(dist) * mass
	}
	return density
}

//pairPressure - average of both particles' density deviation scaled by force strength
func (fluid *SPHFluid) pairPressure(i, j int) float32 {
	p := fluid.Params
	f1 := (fluid.Densities[i] - p.TargetDensity) * p.ForceStrength * PRESSURE_SCALE
	f2 := (fluid.Densities[j] - p.TargetDensity) * p.ForceStrength * PRESSURE_SCALE
	return (f1 + f2) / 2
}

//pushForce accumulates the pressure and short range repulsion on particle i, clamped
//to MAX_FORCE
func (fluid *SPHFluid) pushForce(i int) V.Vec2 {
	pos := fluid.Predicted[i]
	mass := fluid.Params.ParticleMass
	force := V.Vec2{}

	for _, j := range fluid.QueryNeighbors(pos) {
		r := V.Sub(pos, fluid.Predicted[j])
		if j == i || fluid.Densities[j] == 0 || r.LengthSq() == 0 {
			continue
		}
		dist := r.Length()
		scale := fluid.Kernel.Gradient(dist)
		magnitude := (fluid.pairPressure(i, j) + fluid.Kernel.ShortDistPush(dist)) * scale * mass / fluid.Densities[j]
		force.AddScaled(r, magnitude/dist)
	}

	clamped, over := V.ClampLength(force, MAX_FORCE)
	if over {
		fluid.Log.WithFields(logrus.Fields{
			"particle": i,
			"force":    force.Length(),
		}).Warn("push force too high, clamped")
	}
	return clamped
}

//adjustForceStrength - global proportional controller keeping density near target.
//Large errors push the strength by a bounded step, small errors relax it toward the
//baseline.
func (fluid *SPHFluid) adjustForceStrength(density float32) {
	p := fluid.Params
	base := p.BaseForceStrength
	if base == 0 || p.TargetDensity == 0 {
		return
	}
	derr := V.Clamp((density-p.TargetDensity)/p.TargetDensity, -1, 1)
	ferr := V.Clamp((p.ForceStrength-base)/base, -1, 1)
	if float32(math.Abs(float64(derr))) > 0.5 {
		p.ForceStrength = V.Clamp(p.ForceStrength+base*((1-derr)*0.1), 0.1*base, 2*base)
		return
	}
	p.ForceStrength *= 1 - ferr*0.1
}

//ApplyCentralForce pushes every particle within radius of center radially outward
//(inward for negative strength), stronger near the center. Acts on velocities only.
func (fluid *SPHFluid) ApplyCentralForce(center V.Vec2, radius float32, strength float32) {
	for i := range fluid.Positions {
		dir := V.Sub(fluid.Positions[i], center)
		dist := dir.Length()
		if dist < radius && dist > INTERACT_EPSILON {
			force := strength * (INTERACT_FALLOFF - dist/radius)
			fluid.Velocities[i].AddScaled(dir, force/fluid.Densities[i]/dist)
		}
	}
}

//viscosity - XSPH style smoothing of particle i toward its neighbors' velocities,
//read from the snapshot taken after the damping stage
func (fluid *SPHFluid) viscosity(i int, snapshot []V.Vec2) {
	pos := fluid.Positions[i]
	vi := snapshot[i]
	force := V.Vec2{}
	for _, j := range fluid.QueryNeighbors(pos) {
		if j == i {
			continue
		}
		f := fluid.Kernel.Density(V.Distance(pos, fluid.Positions[j]))
		force.AddScaled(V.Sub(snapshot[j], vi), f)
	}
	fluid.Velocities[i].AddScaled(force, VISCOSITY_SCALE*fluid.Params.Viscosity/fluid.Densities[i])
}

//Step advances the simulation by dt. Every stage finishes for all particles before
//the next one starts.
func (fluid *SPHFluid) Step(dt float32) {
	p := fluid.Params
	N := fluid.Count()
	timer := newStageTimer(fluid.Log)

	//1. Index
	if fluid.stale() {
		fluid.Resize()
	}
	fluid.Grid.Rebuild(fluid.Positions)
	timer.mark("index")

	//2. Predict and resolve walls
	for i := 0; i < N; i++ {
		fluid.Positions[i].AddScaled(fluid.Velocities[i], dt)
		fluid.Predicted[i] = V.Add(fluid.Positions[i], V.Scale(fluid.Velocities[i], dt))
		fluid.Walls.Resolve(&fluid.Positions[i], fluid.Predicted[i], &fluid.Velocities[i], p.ParticleRadius, p.CollisionDamping)
	}
	timer.mark("position")

	//3. Density
	for i := 0; i < N; i++ {
		fluid.Densities[i] = V.Clamp(fluid.DensityAt(fluid.Predicted[i]), MIN_DENSITY, MAX_DENSITY)
		if p.EnableAdjustingForce {
			fluid.adjustForceStrength(fluid.Densities[i])
		}
	}
	timer.mark("density")

	//4. Forces
	for i := 0; i < N; i++ {
		if p.EnableGravity {
			fluid.Velocities[i][1] += p.GravityStrength
		}
		force := fluid.pushForce(i)
		fluid.Velocities[i].AddScaled(force, -dt/fluid.Densities[i])
	}
	timer.mark("force")

	//5. Damping and safety valve
	for i := 0; i < N; i++ {
		v := &fluid.Velocities[i]
		v.AddScaled(V.Normalize(*v), -p.MovingDamping*DRAG_SCALE*v.LengthSq()*dt)
		if v.LengthSq() > MAX_SPEED*MAX_SPEED {
			fluid.Log.WithFields(logrus.Fields{
				"particle": i,
				"speed":    v.Length(),
			}).Warn("particle velocity too high, scaled down")
			v.Scale(SPEED_VALVE)
		}
	}
	timer.mark("velocity")

	//6. Viscosity
	if cap(fluid.velScratch) < N {
		fluid.velScratch = make([]V.Vec2, N)
	}
	snapshot := fluid.velScratch[:N]
	copy(snapshot, fluid.Velocities)
	for i := 0; i < N; i++ {
		fluid.viscosity(i, snapshot)
	}
	timer.mark("viscosity")

	fluid.Timer.StepTime(dt)
	timer.total()
}

//Advance runs one rendered frame: StepCount sub steps splitting the scaled frame time
func (fluid *SPHFluid) Advance(frame time.Duration) {
	p := fluid.Params
	steps := p.StepCount
	if steps < 1 {
		steps = 1
	}
	frameMs := float32(frame.Seconds() * 1000)
	dt := p.TimeScale * frameMs / 100 / float32(steps)
	for s := 0; s < steps; s++ {
		fluid.Step(dt)
	}
}
