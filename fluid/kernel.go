package fluid

import "math"

//Kernel holds the quadratic SPH kernel family for a smoothing radius h. In literature
//the variable h holds the radial extent of the smoothed particle; the normalization
//constants depend only on h so they are computed once per radius.
type Kernel struct {
	H    float32
	vol  float32 //pi*h^4
	vol6 float32 //pi*h^4/6
	h4   float32
}

//InitKernel - Allocates the kernel constants for radius h
func InitKernel(h float32) Kernel {
	K := Kernel{H: h}
	K.h4 = h * h * h * h
	K.vol = float32(math.Pi) * K.h4
	K.vol6 = K.vol / 6
	return K
}

//Density - max(h-d,0)^2 / (pi*h^4/6). Integrates to 1 over the disk of radius h.
func (K *Kernel) Density(distance float32) float32 {
	a := K.H - distance
	if a < 0 {
		a = 0
	}
	return a * a / K.vol6
}

//Gradient - 12*(d-h) / (pi*h^4). Negative inside the support.
func (K *Kernel) Gradient(distance float32) float32 {
	return 12 * (distance - K.H) / K.vol
}

//ShortDistPush - -(16*(d-h))^2 / (pi*h^4/6). Always <= 0, grows sharply as d -> 0.
func (K *Kernel) ShortDistPush(distance float32) float32 {
	a := 16 * (distance - K.H)
	return -a * a / K.vol6
}
