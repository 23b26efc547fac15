package cassowary

import (
	"math"
	"sort"
)

const epsilon = 1.0e-8

// Tolerance is the absolute error within which solved values are considered
// equal. Results are exact up to floating point rounding; tests and callers
// comparing solved geometry should allow this much slack.
const Tolerance = 1.0e-6

func nearZero(v float64) bool {
	return math.Abs(v) < epsilon
}

type symbolKind uint8

const (
	invalidSymbol symbolKind = iota
	externalSymbol
	slackSymbol
	errorSymbol
	dummySymbol
)

// symbol is a tableau column. ids are allocated in increasing order,
// so comparing ids compares creation order.
type symbol struct {
	id   uint64
	kind symbolKind
}

func (s symbol) valid() bool { return s.kind != invalidSymbol }

// row is "basic = constant + sum(cells)".
type row struct {
	cells    map[symbol]float64
	constant float64
}

func newRow(constant float64) *row {
	return &row{cells: make(map[symbol]float64), constant: constant}
}

func (r *row) clone() *row {
	c := &row{cells: make(map[symbol]float64, len(r.cells)), constant: r.constant}
	for s, v := range r.cells {
		c.cells[s] = v
	}
	return c
}

func (r *row) add(v float64) float64 {
	r.constant += v
	return r.constant
}

func (r *row) insertSymbol(s symbol, coeff float64) {
	v := r.cells[s] + coeff
	if nearZero(v) {
		delete(r.cells, s)
		return
	}
	r.cells[s] = v
}

func (r *row) insertRow(other *row, coeff float64) {
	r.constant += other.constant * coeff
	for s, v := range other.cells {
		r.insertSymbol(s, v*coeff)
	}
}

func (r *row) remove(s symbol) {
	delete(r.cells, s)
}

func (r *row) reverseSign() {
	r.constant = -r.constant
	for s, v := range r.cells {
		r.cells[s] = -v
	}
}

// solveFor rewrites "0 = constant + ... + a*s + ..." as
// "s = -constant/a - ...".
func (r *row) solveFor(s symbol) {
	coeff := -1.0 / r.cells[s]
	delete(r.cells, s)
	r.constant *= coeff
	for k, v := range r.cells {
		r.cells[k] = v * coeff
	}
}

// solveForPair rewrites "lhs = ..." (with rhs in the cells) as "rhs = ...".
func (r *row) solveForPair(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1)
	r.solveFor(rhs)
}

func (r *row) coefficient(s symbol) float64 {
	return r.cells[s]
}

func (r *row) substitute(s symbol, other *row) {
	coeff, ok := r.cells[s]
	if !ok {
		return
	}
	delete(r.cells, s)
	r.insertRow(other, coeff)
}

// sortedSymbols returns the row's symbols in creation order. Pivot selection
// walks symbols in this order so results do not depend on map iteration.
func (r *row) sortedSymbols() []symbol {
	syms := make([]symbol, 0, len(r.cells))
	for s := range r.cells {
		syms = append(syms, s)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].id < syms[j].id })
	return syms
}
