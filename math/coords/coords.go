/*package coords converts between Cartesian and spherical coordinates. The
polar angle is measured from the +z axis and the azimuthal angle lies in the
x-y plane.*/
package coords

import (
	"math"
)

// Values this close to zero are rounding noise from the trig calls and are
// flattened to exactly zero.
const epsilon = 2.220446049250313e-16

// CartesianToSpherical converts (x, y, z) to (r, theta, phi). The azimuth
// is wrapped into [0, 2pi), except directly on the z axis where it is
// +pi/2 for y >= 0 and -pi/2 for y < 0. Points at the origin have
// theta = 0.
func CartesianToSpherical(x, y, z float64) (r, theta, phi float64) {
	r = math.Sqrt(x*x + y*y + z*z)
	if math.Abs(r) < epsilon { r = 0 }

	if r == 0 {
		theta = 0
	} else {
		theta = math.Acos(z / r)
	}

	phi = math.Atan2(y, x)
	if phi < 0 { phi += 2 * math.Pi }
	if x == 0 {
		if y >= 0 {
			phi = +0.5 * math.Pi
		} else {
			phi = -0.5 * math.Pi
		}
	}

	return r, theta, phi
}

// SphericalToCartesian converts (r, theta, phi) to (x, y, z).
func SphericalToCartesian(r, theta, phi float64) (x, y, z float64) {
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	x = zeroFloor(r * sinT * cosP)
	y = zeroFloor(r * sinT * sinP)
	z = zeroFloor(r * cosT)
	return x, y, z
}

func zeroFloor(v float64) float64 {
	if math.Abs(v) < epsilon { return 0 }
	return v
}
