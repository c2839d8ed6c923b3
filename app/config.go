package app

import (
	"fmt"

	F "diesel.com/sph2d/fluid"
	"gopkg.in/gcfg.v1"
)

const ExampleConfigFile = `[Fluid]

#######################
# World and particles #
#######################

# World size in simulation units. The viewer window opens at the same size.
Width  = 1200
Height = 800

# Particles laid out on a centered lattice by a reset.
ParticleCount = 1200
ParticleMass  = 100
# Wall collision radius.
ParticleRadius = 5
# Density sample radius h. Also the spatial grid cell size.
SmoothingRadius = 50

##########
# Forces #
##########

TargetDensity = 0.1
ForceStrength = 6
Viscosity     = 1.2

Gravity         = true
GravityStrength = 1

# Quadratic drag on moving particles.
MovingDamping = 0.1
# Fraction of velocity kept on a wall bounce, in [0, 1].
CollisionDamping = 0.3

# Lets the pressure coefficient drift to hold TargetDensity.
AdjustingForce = false

##########
# Timing #
##########

TimeScale = 1
# Sub steps per rendered frame.
StepCount = 2

###############
# Interaction #
###############

# Pointer push (left button) and pull (right button).
InteractRadius   = 120
InteractStrength = 8

[Window]

Title = sph2d
# Particle sprite diameter in pixels.
PointSize = 6
# Density mapped to the hottest particle color.
MaxDensity = 0.3
VSync = true`

//FluidConfig - the [Fluid] section
type FluidConfig struct {
	Width, Height float64

	ParticleCount int

	ParticleMass, ParticleRadius, SmoothingRadius float64

	TargetDensity, ForceStrength, Viscosity float64

	Gravity         bool
	GravityStrength float64

	MovingDamping, CollisionDamping float64

	AdjustingForce bool

	TimeScale float64
	StepCount int

	InteractRadius, InteractStrength float64
}

//WindowConfig - the [Window] section, viewer only
type WindowConfig struct {
	Title      string
	PointSize  float64
	MaxDensity float64
	VSync      bool
}

type ConfigWrapper struct {
	Fluid  FluidConfig
	Window WindowConfig
}

//DefaultConfigWrapper holds the tuned defaults; values read from a file override them
func DefaultConfigWrapper() *ConfigWrapper {
	fc := FluidConfig{
		Width:            F.DefaultWidth,
		Height:           F.DefaultHeight,
		ParticleCount:    F.DefaultParticleCount,
		ParticleMass:     F.DefaultParticleMass,
		ParticleRadius:   F.DefaultParticleRadius,
		SmoothingRadius:  F.DefaultSampleRadius,
		TargetDensity:    F.DefaultTargetDensity,
		ForceStrength:    F.DefaultForceStrength,
		Viscosity:        F.DefaultViscosity,
		Gravity:          true,
		GravityStrength:  F.DefaultGravity,
		MovingDamping:    F.DefaultMovingDamping,
		CollisionDamping: F.DefaultCollisionDamp,
		AdjustingForce:   false,
		TimeScale:        F.DefaultTimeScale,
		StepCount:        F.DefaultStepCount,
		InteractRadius:   F.DefaultInteractRadius,
		InteractStrength: F.DefaultInteractForce,
	}
	wc := WindowConfig{Title: "sph2d", PointSize: 6, MaxDensity: 0.3, VSync: true}
	return &ConfigWrapper{fc, wc}
}

//ReadConfig reads an INI config file over the defaults. An empty name returns the
//defaults.
func ReadConfig(fname string) (*ConfigWrapper, error) {
	con := DefaultConfigWrapper()
	if fname == "" {
		return con, con.CheckInit()
	}
	if err := gcfg.ReadFileInto(con, fname); err != nil {
		return nil, fmt.Errorf("reading config '%s': %w", fname, err)
	}
	if err := con.CheckInit(); err != nil {
		return nil, fmt.Errorf("config '%s': %w", fname, err)
	}
	return con, nil
}

//ReadConfigString is ReadConfig for config text already in memory
func ReadConfigString(text string) (*ConfigWrapper, error) {
	con := DefaultConfigWrapper()
	if err := gcfg.ReadStringInto(con, text); err != nil {
		return nil, err
	}
	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}

func (con *ConfigWrapper) CheckInit() error {
	if err := con.Fluid.CheckInit(); err != nil {
		return err
	}
	return con.Window.CheckInit()
}

func (con *FluidConfig) CheckInit() error {
	switch {
	case con.Width <= 0 || con.Height <= 0:
		return fmt.Errorf(
			"Need to specify a positive Width and Height, got %g x %g", con.Width, con.Height,
		)
	case con.SmoothingRadius <= 0:
		return fmt.Errorf("Need to specify a positive SmoothingRadius, got %g", con.SmoothingRadius)
	case con.ParticleMass <= 0:
		return fmt.Errorf("Need to specify a positive ParticleMass, got %g", con.ParticleMass)
	case con.ParticleCount <= 0:
		return fmt.Errorf("Need to specify a positive ParticleCount, got %d", con.ParticleCount)
	case con.StepCount <= 0:
		return fmt.Errorf("Need to specify a positive StepCount, got %d", con.StepCount)
	case con.ParticleRadius < 0 || 2*con.ParticleRadius >= con.Width || 2*con.ParticleRadius >= con.Height:
		return fmt.Errorf("ParticleRadius %g does not fit a %g x %g world", con.ParticleRadius, con.Width, con.Height)
	case con.CollisionDamping < 0 || con.CollisionDamping > 1:
		return fmt.Errorf("CollisionDamping must be in [0, 1], got %g", con.CollisionDamping)
	case con.MovingDamping < 0:
		return fmt.Errorf("MovingDamping must not be negative, got %g", con.MovingDamping)
	case con.TargetDensity < 0:
		return fmt.Errorf("TargetDensity must not be negative, got %g", con.TargetDensity)
	case con.TimeScale < 0:
		return fmt.Errorf("TimeScale must not be negative, got %g", con.TimeScale)
	}
	return nil
}

func (con *WindowConfig) CheckInit() error {
	if con.PointSize <= 0 {
		return fmt.Errorf("Need to specify a positive PointSize, got %g", con.PointSize)
	}
	if con.MaxDensity <= 0 {
		return fmt.Errorf("Need to specify a positive MaxDensity, got %g", con.MaxDensity)
	}
	if con.Title == "" {
		con.Title = "sph2d"
	}
	return nil
}

//Parameters converts the section into the engine's shared configuration
func (con *FluidConfig) Parameters() *F.Parameters {
	return &F.Parameters{
		Width:                 float32(con.Width),
		Height:                float32(con.Height),
		ParticleCount:         con.ParticleCount,
		ParticleMass:          float32(con.ParticleMass),
		ParticleRadius:        float32(con.ParticleRadius),
		SmoothingRadius:       float32(con.SmoothingRadius),
		TargetDensity:         float32(con.TargetDensity),
		BaseForceStrength:     float32(con.ForceStrength),
		ForceStrength:         float32(con.ForceStrength),
		Viscosity:             float32(con.Viscosity),
		EnableGravity:         con.Gravity,
		GravityStrength:       float32(con.GravityStrength),
		MovingDamping:         float32(con.MovingDamping),
		CollisionDamping:      float32(con.CollisionDamping),
		EnableAdjustingForce:  con.AdjustingForce,
		TimeScale:             float32(con.TimeScale),
		StepCount:             con.StepCount,
		InteractForceRadius:   float32(con.InteractRadius),
		InteractForceStrength: float32(con.InteractStrength),
	}
}
