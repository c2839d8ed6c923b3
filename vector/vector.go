package vector

import (
	"fmt"
	"math"
)

//Describes the 2D vector construct used by the particle engine. Free functions are
//immutable and return a new value, methods with a pointer receiver mutate in place.

//Vec2 Default Vector Implementation - x, y
type Vec2 [2]float32

//Scale - Scales vector by scalar a
func Scale(v Vec2, a float32) Vec2 {
	return Vec2{v[0] * a, v[1] * a}
}

func (v *Vec2) Scale(a float32) *Vec2 {
	v[0] *= a
	v[1] *= a
	return v
}

//Add - Component sum
func Add(v Vec2, b Vec2) Vec2 {
	return Vec2{v[0] + b[0], v[1] + b[1]}
}

//Sub - Component difference v - b
func Sub(v Vec2, b Vec2) Vec2 {
	return Vec2{v[0] - b[0], v[1] - b[1]}
}

//AddScaled - v += b*a without a temporary
func (v *Vec2) AddScaled(b Vec2, a float32) *Vec2 {
	v[0] += b[0] * a
	v[1] += b[1] * a
	return v
}

func Length(a Vec2) float32 {
	return float32(math.Sqrt(float64(a[0]*a[0] + a[1]*a[1])))
}

func (v *Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1])))
}

//LengthSq avoids the square root for range checks
func LengthSq(a Vec2) float32 {
	return a[0]*a[0] + a[1]*a[1]
}

func (v *Vec2) LengthSq() float32 {
	return v[0]*v[0] + v[1]*v[1]
}

//Normalize returns the unit vector of a. The zero vector normalizes to zero.
func Normalize(a Vec2) Vec2 {
	l := Length(a)
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a[0] / l, a[1] / l}
}

//ClampLength scales a down to max length when it is longer, keeping direction
func ClampLength(a Vec2, max float32) (Vec2, bool) {
	if LengthSq(a) > max*max {
		return Scale(Normalize(a), max), true
	}
	return a, false
}

func Distance(a Vec2, b Vec2) float32 {
	return Length(Sub(a, b))
}

//Clamp a scalar into [lo, hi]
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func (v Vec2) String() string {
	return fmt.Sprintf("[ %f, %f]", v[0], v[1])
}
