package core

import (
	"math"
	"sort"
)

// Coefficients smaller than this are treated as zero when deciding the polynomial degree.
const degenerateCoefficient = 1e-12

// discriminantEpsilon decides when a cubic discriminant counts as zero (repeated roots).
const discriminantEpsilon = 1e-12

// SolveQuadratic returns the real roots of a*x² + b*x + c = 0 in ascending order.
// An empty slice means there is no real solution.
func SolveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < degenerateCoefficient {
		if math.Abs(b) < degenerateCoefficient {
			return nil
		}
		return []float64{-c / b}
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}
	if discriminant == 0 {
		return []float64{-b / (2 * a)}
	}

	// Numerically stable form avoids cancellation when b² >> 4ac
	sqrtD := math.Sqrt(discriminant)
	q := -0.5 * (b + math.Copysign(sqrtD, b))
	r1 := q / a
	r2 := c / q
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return []float64{r1, r2}
}

// SolveCubic returns the real roots of a*x³ + b*x² + c*x + d = 0 in ascending order
// using Cardano's method on the depressed cubic.
func SolveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < degenerateCoefficient {
		return SolveQuadratic(b, c, d)
	}

	A := b / a
	B := c / a
	C := d / a

	// x = t - A/3 gives t³ + p*t + q = 0
	shift := A / 3
	p := B - A*A/3
	q := 2*A*A*A/27 - A*B/3 + C

	discriminant := q*q/4 + p*p*p/27

	var roots []float64
	switch {
	case math.Abs(discriminant) < discriminantEpsilon:
		if math.Abs(p) < discriminantEpsilon {
			// Triple root
			roots = []float64{-shift}
		} else {
			u := math.Cbrt(-q / 2)
			roots = []float64{2*u - shift, -u - shift}
		}
	case discriminant > 0:
		// One real root
		sqrtD := math.Sqrt(discriminant)
		u := math.Cbrt(-q/2 + sqrtD)
		v := math.Cbrt(-q/2 - sqrtD)
		roots = []float64{u + v - shift}
	default:
		// Three distinct real roots, trigonometric form
		r := math.Sqrt(-p * p * p / 27)
		phi := math.Acos(Clamp(-q/(2*r), -1, 1))
		m := 2 * math.Sqrt(-p/3)
		roots = []float64{
			m*math.Cos(phi/3) - shift,
			m*math.Cos((phi+2*math.Pi)/3) - shift,
			m*math.Cos((phi+4*math.Pi)/3) - shift,
		}
	}

	sort.Float64s(roots)
	return roots
}

// SolveQuartic returns the real roots of a*x⁴ + b*x³ + c*x² + d*x + e = 0 in ascending order.
// Uses Ferrari's method: the depressed quartic is split into two quadratics through a root of
// the resolvent cubic. Roots are refined with Newton steps on the original polynomial.
func SolveQuartic(a, b, c, d, e float64) []float64 {
	if math.Abs(a) < degenerateCoefficient {
		return SolveCubic(b, c, d, e)
	}

	A := b / a
	B := c / a
	C := d / a
	D := e / a

	// x = y - A/4 gives y⁴ + p*y² + q*y + r = 0
	shift := A / 4
	A2 := A * A
	p := B - 3*A2/8
	q := C - A*B/2 + A2*A/8
	r := D - A*C/4 + A2*B/16 - 3*A2*A2/256

	var ys []float64
	if math.Abs(q) < degenerateCoefficient {
		// Biquadratic: z = y²
		for _, z := range SolveQuadratic(1, p, r) {
			switch {
			case z > 0:
				s := math.Sqrt(z)
				ys = append(ys, -s, s)
			case z > -discriminantEpsilon:
				ys = append(ys, 0)
			}
		}
	} else {
		// Resolvent cubic 8m³ + 8p*m² + (2p² - 8r)*m - q² = 0 always has a positive root when q != 0
		resolvent := SolveCubic(8, 8*p, 2*p*p-8*r, -q*q)
		if len(resolvent) == 0 {
			return nil
		}
		m := resolvent[len(resolvent)-1]
		if m <= 0 {
			return nil
		}

		s := math.Sqrt(2 * m)
		half := p/2 + m
		ys = append(ys, SolveQuadratic(1, s, half-q/(2*s))...)
		ys = append(ys, SolveQuadratic(1, -s, half+q/(2*s))...)
	}

	roots := make([]float64, 0, len(ys))
	for _, y := range ys {
		roots = append(roots, polishQuarticRoot(y-shift, A, B, C, D))
	}
	sort.Float64s(roots)
	return roots
}

// polishQuarticRoot improves a root of x⁴ + A*x³ + B*x² + C*x + D with a few Newton iterations.
func polishQuarticRoot(x, A, B, C, D float64) float64 {
	eval := func(x float64) float64 {
		return (((x+A)*x+B)*x+C)*x + D
	}
	for i := 0; i < 2; i++ {
		f := eval(x)
		df := ((4*x+3*A)*x+2*B)*x + C
		if df == 0 {
			break
		}
		next := x - f/df
		// Near repeated roots Newton can overshoot; keep only improving steps
		if math.IsNaN(next) || math.IsInf(next, 0) || math.Abs(eval(next)) >= math.Abs(f) {
			break
		}
		x = next
	}
	return x
}
