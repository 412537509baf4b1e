package biguint

import "github.com/agbru/uintcalc/internal/digit"

// Word-vector kernels. Unless noted otherwise z, x and y have the same length
// and z may alias x or y. Every loop over digits in the package goes through
// one of these.

func addVV[T digit.Digit](z, x, y []T) (c T) {
	return addVVc(z, x, y, 0)
}

// addVVc is addVV with an incoming carry.
func addVVc[T digit.Digit](z, x, y []T, c T) T {
	for i := range z {
		z[i], c = digit.Add(x[i], y[i], c)
	}
	return c
}

func subVV[T digit.Digit](z, x, y []T) (b T) {
	return subVVb(z, x, y, 0)
}

// subVVb is subVV with an incoming borrow.
func subVVb[T digit.Digit](z, x, y []T, b T) T {
	for i := range z {
		z[i], b = digit.Sub(x[i], y[i], b)
	}
	return b
}

func addVW[T digit.Digit](z, x []T, y T) (c T) {
	c = y
	for i := range z {
		z[i], c = digit.Add(x[i], c, 0)
	}
	return c
}

func subVW[T digit.Digit](z, x []T, y T) (b T) {
	b = y
	for i := range z {
		z[i], b = digit.Sub(x[i], b, 0)
	}
	return b
}

// shlVU shifts x left by s < bits(T) into z and returns the bits shifted out.
func shlVU[T digit.Digit](z, x []T, s uint) (c T) {
	n := len(z)
	if n == 0 {
		return 0
	}
	ŝ := uint(digit.Bits[T]()) - s
	w1 := x[n-1]
	c = w1 >> ŝ
	for i := n - 1; i > 0; i-- {
		w := w1
		w1 = x[i-1]
		z[i] = w<<s | w1>>ŝ
	}
	z[0] = w1 << s
	return c
}

// shrVU shifts x right by s < bits(T) into z. The returned word holds the bits
// shifted out in its top s positions.
func shrVU[T digit.Digit](z, x []T, s uint) (c T) {
	n := len(z)
	if n == 0 {
		return 0
	}
	ŝ := uint(digit.Bits[T]()) - s
	w1 := x[0]
	c = w1 << ŝ
	for i := 0; i < n-1; i++ {
		w := w1
		w1 = x[i+1]
		z[i] = w>>s | w1<<ŝ
	}
	z[n-1] = w1 >> s
	return c
}

// mulAddVWW sets z = x*y + r and returns the high word.
func mulAddVWW[T digit.Digit](z, x []T, y, r T) (c T) {
	c = r
	for i := range z {
		c, z[i] = digit.MulAdd(x[i], y, c)
	}
	return c
}

// addMulVVW sets z += x*y and returns the high word.
func addMulVVW[T digit.Digit](z, x []T, y T) (c T) {
	for i := range z {
		z1, z0 := digit.MulAdd(x[i], y, z[i])
		var cc T
		z[i], cc = digit.Add(z0, c, 0)
		c = z1 + cc
	}
	return c
}

// divWVW divides (xn, x) by y into z and returns the remainder. xn < y.
func divWVW[T digit.Digit](z []T, xn T, x []T, y T) (r T) {
	r = xn
	for i := len(z) - 1; i >= 0; i-- {
		z[i], r = digit.Div(r, x[i], y)
	}
	return r
}

// cmpVV compares x and y as numbers. Lengths may differ.
func cmpVV[T digit.Digit](x, y []T) int {
	m, n := normLen(x), normLen(y)
	switch {
	case m < n:
		return -1
	case m > n:
		return 1
	}
	for i := m - 1; i >= 0; i-- {
		switch {
		case x[i] < y[i]:
			return -1
		case x[i] > y[i]:
			return 1
		}
	}
	return 0
}

// normLen returns the length of x without its leading zero digits.
func normLen[T digit.Digit](x []T) int {
	n := len(x)
	for n > 0 && x[n-1] == 0 {
		n--
	}
	return n
}

// mulVV returns the full len(x)+len(y) digit product of x and y.
func mulVV[T digit.Digit](x, y []T) []T {
	z := make([]T, len(x)+len(y))
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulVVW(z[i:i+len(x)], x, d)
		}
	}
	return z
}

func greaterThan[T digit.Digit](x1, x2, y1, y2 T) bool {
	return x1 > y1 || x1 == y1 && x2 > y2
}

// divmodVV returns the quotient and remainder of u / v using Knuth's
// algorithm D. len(q) == len(u) and len(r) == len(v). v must be non-zero.
// Neither input is modified.
func divmodVV[T digit.Digit](u, v []T) (q, r []T) {
	q = make([]T, len(u))
	r = make([]T, len(v))
	n := normLen(v)
	if n == 0 {
		panic("biguint: division by zero")
	}
	m := normLen(u)
	if m < n {
		copy(r, u[:m])
		return q, r
	}
	if n == 1 {
		r[0] = divWVW(q[:m], 0, u[:m], v[0])
		return q, r
	}

	// Normalize so that the top digit of v has its high bit set.
	shift := uint(digit.LeadingZeros(v[n-1]))
	vn := make([]T, n)
	shlVU(vn, v[:n], shift)
	un := make([]T, m+1)
	un[m] = shlVU(un[:m], u[:m], shift)

	vtop, vsec := vn[n-1], vn[n-2]
	qhatv := make([]T, n+1)
	for j := m - n; j >= 0; j-- {
		qhat := digit.Max[T]()
		if ujn := un[j+n]; ujn != vtop {
			var rhat T
			qhat, rhat = digit.Div(ujn, un[j+n-1], vtop)
			x1, x2 := digit.Mul(qhat, vsec)
			ujn2 := un[j+n-2]
			for greaterThan(x1, x2, rhat, ujn2) {
				qhat--
				prev := rhat
				rhat += vtop
				if rhat < prev {
					break
				}
				x1, x2 = digit.Mul(qhat, vsec)
			}
		}

		qhatv[n] = mulAddVWW(qhatv[:n], vn, qhat, 0)
		if c := subVV(un[j:j+n+1], un[j:j+n+1], qhatv); c != 0 {
			c := addVV(un[j:j+n], un[j:j+n], vn)
			un[j+n] += c
			qhat--
		}
		q[j] = qhat
	}

	shrVU(r[:n], un[:n], shift)
	return q, r
}
