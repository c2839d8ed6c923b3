package fluid

//Parameters - the simulation configuration shared by reference between the engine and
//whatever drives it. The UI side writes the user facing values between steps; the
//adaptive force controller only ever writes ForceStrength.
type Parameters struct {
	Width                 float32 //World width
	Height                float32 //World height
	ParticleCount         int     //Particles laid out by Reset
	ParticleMass          float32
	ParticleRadius        float32 //Wall collision radius
	SmoothingRadius       float32 //Density sample radius h, also the grid cell size
	TargetDensity         float32
	BaseForceStrength     float32 //Baseline the adaptive controller relaxes toward
	ForceStrength         float32 //Current (possibly adapted) pressure coefficient
	Viscosity             float32
	EnableGravity         bool
	GravityStrength       float32
	MovingDamping         float32 //Quadratic drag coefficient
	CollisionDamping      float32 //Velocity retained on wall bounce
	EnableAdjustingForce  bool
	TimeScale             float32
	StepCount             int //Sub steps per rendered frame
	InteractForceRadius   float32
	InteractForceStrength float32
}

//Defaults match the tuned values the simulation was developed with
const (
	DefaultWidth          = 1200
	DefaultHeight         = 800
	DefaultParticleCount  = 1200
	DefaultParticleMass   = 100.0
	DefaultParticleRadius = 5.0
	DefaultSampleRadius   = 50.0
	DefaultTargetDensity  = 0.1
	DefaultForceStrength  = 6.0
	DefaultViscosity      = 1.2
	DefaultGravity        = 1.0
	DefaultMovingDamping  = 0.1
	DefaultCollisionDamp  = 0.3
	DefaultTimeScale      = 1.0
	DefaultStepCount      = 2
	DefaultInteractRadius = 120.0
	DefaultInteractForce  = 8.0
)

//DefaultParameters - Initializes default fluid parameters
func DefaultParameters() *Parameters {
	return &Parameters{
		Width:                 DefaultWidth,
		Height:                DefaultHeight,
		ParticleCount:         DefaultParticleCount,
		ParticleMass:          DefaultParticleMass,
		ParticleRadius:        DefaultParticleRadius,
		SmoothingRadius:       DefaultSampleRadius,
		TargetDensity:         DefaultTargetDensity,
		BaseForceStrength:     DefaultForceStrength,
		ForceStrength:         DefaultForceStrength,
		Viscosity:             DefaultViscosity,
		EnableGravity:         true,
		GravityStrength:       DefaultGravity,
		MovingDamping:         DefaultMovingDamping,
		CollisionDamping:      DefaultCollisionDamp,
		EnableAdjustingForce:  false,
		TimeScale:             DefaultTimeScale,
		StepCount:             DefaultStepCount,
		InteractForceRadius:   DefaultInteractRadius,
		InteractForceStrength: DefaultInteractForce,
	}
}
