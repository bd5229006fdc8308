package shamir

import "github.com/8888flbu/OTPSI/gf128"

// Point is a single (abscissa, ordinate) pair, e.g. (alpha_i, f_x(alpha_i))
// for a party's polynomial share.
type Point struct {
	X, Y gf128.Elem
}

// LagrangeAt evaluates, at x0, the unique degree-(len(pts)-1) polynomial
// passing through pts. In GF(2^m), subtraction equals addition equals XOR,
// so the Lagrange basis polynomial is:
//
//	L_i(x0) = prod_{j!=i} (x0+x_j) * (x_i+x_j)^-1
//	f(x0)   = sum_i y_i * L_i(x0)
//
// pts must have pairwise-distinct abscissae; LagrangeAt does not itself
// check this (the aggregator, which groups shares by distinct party_id
// before calling it, guarantees it — see aggregator.Recover), since
// Inv(0), the only way a repeated abscissa could silently corrupt the
// result, is a documented zero sentinel rather than an error.
func LagrangeAt(pts []Point, x0 gf128.Elem) gf128.Elem {
	acc := gf128.Zero

	for i, pi := range pts {
		num := gf128.One
		den := gf128.One
		for j, pj := range pts {
			if j == i {
				continue
			}
			num = gf128.Mul(num, gf128.Add(x0, pj.X))
			den = gf128.Mul(den, gf128.Add(pi.X, pj.X))
		}
		li := gf128.Mul(num, gf128.Inv(den))
		acc = gf128.Add(acc, gf128.Mul(pi.Y, li))
	}

	return acc
}
