package superpose

import (
	"math"

	"github.com/TuftsBCB/structure"
)

// Matrix3 is a 3x3 matrix stored in row-major order.
type Matrix3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mult returns the matrix product m * o.
func (m Matrix3) Mult(o Matrix3) Matrix3 {
	var p Matrix3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			p[r*3+c] = m[r*3+0]*o[0*3+c] +
				m[r*3+1]*o[1*3+c] +
				m[r*3+2]*o[2*3+c]
		}
	}
	return p
}

// Transpose returns the transpose of m.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Det returns the determinant of m.
func (m Matrix3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Apply treats v as a column vector and returns m * v.
func (m Matrix3) Apply(v structure.Coords) structure.Coords {
	return structure.Coords{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		Y: m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		Z: m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// ApplyRows treats v as a row vector and returns v * m. This is the
// convention used by Fit rotations.
func (m Matrix3) ApplyRows(v structure.Coords) structure.Coords {
	return structure.Coords{
		X: v.X*m[0] + v.Y*m[3] + v.Z*m[6],
		Y: v.X*m[1] + v.Y*m[4] + v.Z*m[7],
		Z: v.X*m[2] + v.Y*m[5] + v.Z*m[8],
	}
}

// Matrix4 is a 4x4 homogeneous transformation matrix stored in row-major
// order. It acts on column vectors [x y z 1]ᵗ.
type Matrix4 [16]float64

// Identity4 returns the 4x4 identity transform.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rigid builds the homogeneous transform [R | t] from a rotation acting on
// column vectors and a translation.
func Rigid(r Matrix3, t structure.Coords) Matrix4 {
	return Matrix4{
		r[0], r[1], r[2], t.X,
		r[3], r[4], r[5], t.Y,
		r[6], r[7], r[8], t.Z,
		0, 0, 0, 1,
	}
}

// Mult returns the transform product m * o, the transform that applies o
// first and then m.
func (m Matrix4) Mult(o Matrix4) Matrix4 {
	var p Matrix4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			p[r*4+c] = m[r*4+0]*o[0*4+c] +
				m[r*4+1]*o[1*4+c] +
				m[r*4+2]*o[2*4+c] +
				m[r*4+3]*o[3*4+c]
		}
	}
	return p
}

// Apply transforms the point v.
func (m Matrix4) Apply(v structure.Coords) structure.Coords {
	return structure.Coords{
		X: m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		Y: m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		Z: m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}

// Rotation returns the upper-left 3x3 block of m.
func (m Matrix4) Rotation() Matrix3 {
	return Matrix3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Translation returns the translation column of m.
func (m Matrix4) Translation() structure.Coords {
	return structure.Coords{X: m[3], Y: m[7], Z: m[11]}
}

// RigidInverse inverts m assuming it is a rigid transform, a rotation
// followed by a translation. The inverse of [R | t] is [Rᵗ | -Rᵗt].
func (m Matrix4) RigidInverse() Matrix4 {
	rt := m.Rotation().Transpose()
	t := rt.Apply(m.Translation())
	return Rigid(rt, structure.Coords{X: -t.X, Y: -t.Y, Z: -t.Z})
}

// Add returns a + b.
func Add(a, b structure.Coords) structure.Coords {
	return structure.Coords{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Sub returns a - b.
func Sub(a, b structure.Coords) structure.Coords {
	return structure.Coords{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Scale returns a scaled by s.
func Scale(a structure.Coords, s float64) structure.Coords {
	return structure.Coords{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

// Dot returns the dot product of a and b.
func Dot(a, b structure.Coords) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func Cross(a, b structure.Coords) structure.Coords {
	return structure.Coords{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Norm returns the Euclidean length of a.
func Norm(a structure.Coords) float64 {
	return math.Sqrt(Dot(a, a))
}

// Centroid returns the mean position of the given points. It panics when
// called with no points.
func Centroid(points ...structure.Coords) structure.Coords {
	if len(points) == 0 {
		panic("Cannot compute the centroid of zero points.")
	}
	var sum structure.Coords
	for _, p := range points {
		sum = Add(sum, p)
	}
	return Scale(sum, 1/float64(len(points)))
}
