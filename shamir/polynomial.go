// Package shamir implements the per-element polynomial share scheme (C3):
// a degree-(k-1) polynomial f_x with constant term x, plus Lagrange
// interpolation for recovering f_x(0) = x from k or more evaluations.
//
// This mirrors the shape of a Thresholdizer / ShamirPolynomial / Combiner
// trio generalized from ringqp.Poly coefficients over RLWE rings to
// gf128.Elem coefficients over GF(2^128), and its interpolation follows
// the same per-point numerator/denominator product, summed, that a
// ring-based Lagrange interpolator uses.
package shamir

import (
	"fmt"

	"github.com/8888flbu/OTPSI/gf128"
	"github.com/8888flbu/OTPSI/xhash"
)

// polySalt is the single fixed global seed all coefficient derivations use.
// It is THE critical correctness invariant of this package (spec.md
// section 9, "Ambiguity in the reference"): all r_d and alpha_i
// derivations must be deterministic functions of x and i alone, never of
// any other party-specific salt. Do not parameterize this value per
// party — the reference source's id-mixing variant is a documented bug
// that breaks cross-party Lagrange recovery.
const polySalt uint64 = 0x4f54_5053_4950_4f4c // "OTPSIPOL"

// Polynomial is a degree-(len(Coeffs)-1) polynomial over GF(2^128):
//
//	f(t) = Coeffs[0] + Coeffs[1]*t + ... + Coeffs[d]*t^d
//
// Coeffs[0] is the constant term — for a per-element share polynomial,
// this is the element x itself.
type Polynomial struct {
	Coeffs []gf128.Elem
}

// GenPolynomial samples the degree-(k-1) polynomial f_x for element x:
// f_x(t) = x + r_1*t + ... + r_{k-1}*t^(k-1), with r_d derived
// pseudo-randomly from a seed that depends only on x (never on a party
// index), so that every party computes the identical polynomial for any
// common x.
func GenPolynomial(x gf128.Elem, k int) (Polynomial, error) {
	if k < 1 {
		return Polynomial{}, fmt.Errorf("shamir: GenPolynomial: threshold k must be >= 1, got %d", k)
	}

	coeffs := make([]gf128.Elem, k)
	coeffs[0] = x

	xb := x.Bytes()
	buf := make([]byte, 18)
	copy(buf, xb[:])
	for d := 1; d < k; d++ {
		buf[16], buf[17] = byte(d), byte(d>>8)
		coeffs[d] = xhash.Derive(polySalt, buf)
	}

	return Polynomial{Coeffs: coeffs}, nil
}

// Eval evaluates f(alpha) via Horner's method.
func (f Polynomial) Eval(alpha gf128.Elem) gf128.Elem {
	if len(f.Coeffs) == 0 {
		return gf128.Zero
	}
	acc := f.Coeffs[len(f.Coeffs)-1]
	for d := len(f.Coeffs) - 2; d >= 0; d-- {
		acc = gf128.Add(gf128.Mul(acc, alpha), f.Coeffs[d])
	}
	return acc
}

// EvalPointForParty returns the Shamir evaluation point alpha_i for party
// i, alpha_i = HashToField(i).
func EvalPointForParty(i uint64) gf128.Elem {
	return gf128.HashToField(i)
}
