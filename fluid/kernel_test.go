//Kernel Testing
package fluid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKernel(t *testing.T) {
	const h = 50.0
	kernel := InitKernel(h)
	vol := math.Pi * math.Pow(h, 4)

	var dist = [6]float64{0, 0.01, 10, 25, 49.9, 50}

	for _, d := range dist {
		a := math.Max(h-d, 0)
		density := a * a / (vol / 6)
		grad := 12 * (d - h) / vol
		push := -math.Pow(16*(d-h), 2) / (vol / 6)

		assert.InDelta(t, density, float64(kernel.Density(float32(d))), 1e-8, "Density(%f)", d)
		assert.InDelta(t, grad, float64(kernel.Gradient(float32(d))), 1e-9, "Gradient(%f)", d)
		assert.InDelta(t, push, float64(kernel.ShortDistPush(float32(d))), math.Abs(push)*1e-5+1e-9, "ShortDistPush(%f)", d)
	}
}

func TestKernelSupport(t *testing.T) {
	kernel := InitKernel(15.0)

	//Zero outside the smoothing radius, strictly decreasing inside it
	assert.Equal(t, float32(0), kernel.Density(15))
	assert.Equal(t, float32(0), kernel.Density(40))
	assert.Greater(t, kernel.Density(1), kernel.Density(2))

	//Sign conventions the force balance depends on
	assert.Less(t, kernel.Gradient(5), float32(0))
	assert.Equal(t, float32(0), kernel.Gradient(15))
	assert.LessOrEqual(t, kernel.ShortDistPush(5), float32(0))
	assert.Less(t, kernel.ShortDistPush(1), kernel.ShortDistPush(10))
}

func TestKernelNormalized(t *testing.T) {
	//Numerical integral of the density kernel over the disk should be ~1
	kernel := InitKernel(20)
	sum := 0.0
	const steps = 4000
	dr := 20.0 / steps
	for i := 0; i < steps; i++ {
		r := (float64(i) + 0.5) * dr
		sum += float64(kernel.Density(float32(r))) * 2 * math.Pi * r * dr
	}
	assert.InDelta(t, 1.0, sum, 1e-3)
}
