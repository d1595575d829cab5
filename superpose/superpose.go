// Package superpose computes least-squares rigid-body superpositions of
// three dimensional point sets, along with the small amount of matrix and
// vector arithmetic that rigid transformations need.
//
// The central operation is BestTransformation, a Kabsch-style fit: given an
// observed point set and a reference point set of equal length, it finds
// the proper rotation that minimizes the squared distance between the
// centered sets. The rotation returned is always proper (determinant +1);
// when the naive solution would be a reflection, the sign of the smallest
// singular direction is flipped.
//
// Conventions: points are structure.Coords values. Rotations act on row
// vectors, so a fit satisfies (p - fit.Origin) * fit.Rotation ≈ r - c for
// each observed point p and reference point r, where c is the reference
// centroid.
package superpose

import (
	"errors"
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"

	matrix "github.com/skelterjohn/go.matrix"
)

// ErrSuperpositionFailed is wrapped by every error returned from
// BestTransformation. A fit fails when fewer than three points are given,
// when the singular value decomposition does not converge, or when the
// point set is degenerate (coincident or collinear points do not determine
// a unique rotation).
var ErrSuperpositionFailed = errors.New("superposition failed")

// A point set is degenerate when its second singular value vanishes
// relative to the first. Planar sets are fine; collinear sets are not.
const degenerateTol = 1e-9

// Fit is the result of superposing an observed point set onto a reference
// point set.
type Fit struct {
	// Rotation maps centered observed points into the reference frame,
	// acting on row vectors.
	Rotation Matrix3

	// Fitted holds the observed points after centering and rotation.
	// Comparing Fitted against the centered reference points gives the
	// per-point residuals of the fit.
	Fitted []structure.Coords

	// Origin is the centroid of the observed points.
	Origin structure.Coords

	// RMSD is the root-mean-square deviation between the fitted points
	// and the centered reference points. SSE is the corresponding sum of
	// squared residuals.
	RMSD float64
	SSE  float64
}

// BestTransformation computes the least-squares rigid superposition of
// observed onto reference following the Kabsch algorithm: center both sets
// on their centroids, build the 3x3 cross-covariance of the centered sets,
// take its singular value decomposition C = U S Vᵗ, and form the rotation
// U Vᵗ. If that product has negative determinant the last column of U is
// negated first, so the result is a proper rotation and never a
// reflection.
//
// BestTransformation panics if the two sets have different lengths, since
// points are matched by position. All other failures return an error
// wrapping ErrSuperpositionFailed.
func BestTransformation(observed, reference []structure.Coords) (*Fit, error) {
	if len(observed) != len(reference) {
		panic(fmt.Sprintf("Superposing two point sets requires that they "+
			"have equal length, but the lengths given are %d and %d.",
			len(observed), len(reference)))
	}
	if len(observed) < 3 {
		return nil, fmt.Errorf("%w: %d points given, but at least three "+
			"are required", ErrSuperpositionFailed, len(observed))
	}

	obsCentroid := Centroid(observed...)
	refCentroid := Centroid(reference...)

	// Cross-covariance of the centered sets: C = Σ obsᵢ refᵢᵗ.
	var c Matrix3
	for i := range observed {
		o := Sub(observed[i], obsCentroid)
		r := Sub(reference[i], refCentroid)
		c[0] += o.X * r.X
		c[1] += o.X * r.Y
		c[2] += o.X * r.Z
		c[3] += o.Y * r.X
		c[4] += o.Y * r.Y
		c[5] += o.Y * r.Z
		c[6] += o.Z * r.X
		c[7] += o.Z * r.Y
		c[8] += o.Z * r.Z
	}

	u, s, v, err := matrix.MakeDenseMatrix(c[:], 3, 3).SVD()
	if err != nil {
		return nil, fmt.Errorf("%w: singular value decomposition did not "+
			"converge: %v", ErrSuperpositionFailed, err)
	}
	if s1 := s.Get(1, 1); s1 <= degenerateTol*math.Max(1, s.Get(0, 0)) {
		return nil, fmt.Errorf("%w: point set is degenerate (coincident "+
			"or collinear points)", ErrSuperpositionFailed)
	}

	mu, mv := dense3(u), dense3(v)
	rot := mu.Mult(mv.Transpose())
	if rot.Det() < 0 {
		// Improper rotation. Negate the last column of U and recombine,
		// which flips the smallest singular direction.
		mu[2], mu[5], mu[8] = -mu[2], -mu[5], -mu[8]
		rot = mu.Mult(mv.Transpose())
	}

	fitted := make([]structure.Coords, len(observed))
	sse := 0.0
	for i := range observed {
		fitted[i] = rot.ApplyRows(Sub(observed[i], obsCentroid))
		d := Sub(fitted[i], Sub(reference[i], refCentroid))
		sse += Dot(d, d)
	}
	return &Fit{
		Rotation: rot,
		Fitted:   fitted,
		Origin:   obsCentroid,
		RMSD:     math.Sqrt(sse / float64(len(observed))),
		SSE:      sse,
	}, nil
}

// AngleBetweenPlanes returns the angle in radians between two plane
// normals, in the range [0, pi]. Using atan2 of the cross and dot products
// keeps the result stable for nearly parallel normals.
func AngleBetweenPlanes(n1, n2 structure.Coords) float64 {
	return math.Atan2(Norm(Cross(n1, n2)), Dot(n1, n2))
}

// dense3 copies a 3x3 go.matrix dense matrix into a Matrix3.
func dense3(m *matrix.DenseMatrix) Matrix3 {
	var out Matrix3
	copy(out[:], m.Array())
	return out
}
