// Package cassowary implements an incremental linear-arithmetic constraint
// solver based on the Cassowary algorithm.
//
// Constraints may be added and removed one at a time; each change pivots only
// the tableau rows it touches instead of re-solving the whole system. Edit
// variables accept suggested values that are reconciled with a dual simplex
// pass. Non-required constraints are satisfied in strength order; required
// constraints that cannot all hold are reported as unsatisfiable.
package cassowary

import (
	"math"

	lerrors "github.com/agiangrant/lattice/errors"
)

type tag struct {
	marker symbol
	other  symbol
}

type editInfo struct {
	tag        tag
	constraint *Constraint
	constant   float64
}

type varInfo struct {
	sym  symbol
	refs int
}

// Solver is an incremental simplex solver. The zero value is not usable;
// call NewSolver.
type Solver struct {
	cns        map[*Constraint]tag
	rows       map[symbol]*row
	vars       map[*Variable]*varInfo
	edits      map[*Variable]*editInfo
	infeasible []symbol
	objective  *row
	artificial *row
	nextID     uint64
}

// NewSolver returns an empty solver.
func NewSolver() *Solver {
	s := &Solver{}
	s.Reset()
	return s
}

// Reset clears all constraints, edit variables and tableau state.
func (s *Solver) Reset() {
	s.cns = make(map[*Constraint]tag)
	s.rows = make(map[symbol]*row)
	s.vars = make(map[*Variable]*varInfo)
	s.edits = make(map[*Variable]*editInfo)
	s.infeasible = nil
	s.objective = newRow(0)
	s.artificial = nil
	s.nextID = 0
}

// Len returns the number of constraints in the solver, edit constraints included.
func (s *Solver) Len() int { return len(s.cns) }

// NumVariables returns the number of variables referenced by at least one constraint.
func (s *Solver) NumVariables() int { return len(s.vars) }

// HasConstraint reports whether c has been added.
func (s *Solver) HasConstraint(c *Constraint) bool {
	_, ok := s.cns[c]
	return ok
}

// HasEditVariable reports whether v has been declared as an edit variable.
func (s *Solver) HasEditVariable(v *Variable) bool {
	_, ok := s.edits[v]
	return ok
}

// AddConstraint adds c to the solver.
//
// It fails with KindDuplicateConstraint if c is already present and with
// KindUnsatisfiableConstraints if c is required and conflicts with the
// required constraints already present; in both cases the solver is unchanged.
func (s *Solver) AddConstraint(c *Constraint) error {
	const op = "cassowary.Solver.AddConstraint"
	if _, ok := s.cns[c]; ok {
		return lerrors.Newf(op, lerrors.KindDuplicateConstraint, "%s", c)
	}

	var t tag
	r, created := s.createRow(c, &t)
	subject := s.chooseSubject(r, t)

	if !subject.valid() && allDummies(r) {
		if !nearZero(r.constant) {
			s.discardVars(created)
			return lerrors.Newf(op, lerrors.KindUnsatisfiableConstraints, "%s", c)
		}
		subject = t.marker
	}

	if !subject.valid() {
		// The artificial pass pivots the tableau even when it fails, so keep
		// a copy to roll back to.
		snap := s.snapshot()
		ok, err := s.addWithArtificialVariable(r)
		if err != nil || !ok {
			s.restore(snap)
			s.discardVars(created)
			if err != nil {
				return err
			}
			return lerrors.Newf(op, lerrors.KindUnsatisfiableConstraints, "%s", c)
		}
	} else {
		r.solveFor(subject)
		s.substitute(subject, r)
		s.rows[subject] = r
	}

	s.cns[c] = t
	s.retainVars(c)
	return s.optimize(s.objective)
}

// RemoveConstraint removes c from the solver.
// It fails with KindUnknownConstraint if c was never added.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	const op = "cassowary.Solver.RemoveConstraint"
	t, ok := s.cns[c]
	if !ok {
		return lerrors.Newf(op, lerrors.KindUnknownConstraint, "%s", c)
	}
	delete(s.cns, c)
	s.removeConstraintEffects(c, t)

	if _, ok := s.rows[t.marker]; ok {
		delete(s.rows, t.marker)
	} else {
		leaving, r := s.markerLeavingRow(t.marker)
		if r == nil {
			return lerrors.Newf(op, lerrors.KindInternalSolver, "no leaving row for marker of %s", c)
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, t.marker)
		s.substitute(t.marker, r)
	}

	s.releaseVars(c)
	return s.optimize(s.objective)
}

// AddEditVariable declares v as an edit variable pulled toward suggested
// values at the given strength, which must be below Required.
func (s *Solver) AddEditVariable(v *Variable, strength Strength) error {
	const op = "cassowary.Solver.AddEditVariable"
	if _, ok := s.edits[v]; ok {
		return lerrors.Newf(op, lerrors.KindDuplicateEditVariable, "%s", v)
	}
	strength = strength.Clip()
	if strength.IsRequired() {
		return lerrors.Newf(op, lerrors.KindBadRequiredStrength, "%s", v)
	}
	c := NewConstraint(v, EQ, Const(0), strength)
	if err := s.AddConstraint(c); err != nil {
		return err
	}
	s.edits[v] = &editInfo{tag: s.cns[c], constraint: c}
	return nil
}

// RemoveEditVariable removes the edit constraint on v.
func (s *Solver) RemoveEditVariable(v *Variable) error {
	e, ok := s.edits[v]
	if !ok {
		return lerrors.Newf("cassowary.Solver.RemoveEditVariable", lerrors.KindUnknownEditVariable, "%s", v)
	}
	delete(s.edits, v)
	return s.RemoveConstraint(e.constraint)
}

// SuggestValue pulls edit variable v toward value.
// It fails with KindUnknownEditVariable if v was not declared.
func (s *Solver) SuggestValue(v *Variable, value float64) error {
	e, ok := s.edits[v]
	if !ok {
		return lerrors.Newf("cassowary.Solver.SuggestValue", lerrors.KindUnknownEditVariable, "%s", v)
	}
	delta := value - e.constant
	e.constant = value

	switch {
	case s.rows[e.tag.marker] != nil:
		if s.rows[e.tag.marker].add(-delta) < 0 {
			s.infeasible = append(s.infeasible, e.tag.marker)
		}
	case s.rows[e.tag.other] != nil:
		if s.rows[e.tag.other].add(delta) < 0 {
			s.infeasible = append(s.infeasible, e.tag.other)
		}
	default:
		for sym, r := range s.rows {
			coeff := r.coefficient(e.tag.marker)
			if coeff != 0 && r.add(delta*coeff) < 0 && sym.kind != externalSymbol {
				s.infeasible = append(s.infeasible, sym)
			}
		}
	}
	return s.dualOptimize()
}

// UpdateVariables writes the current solution into every variable known to
// the solver.
func (s *Solver) UpdateVariables() {
	for v, info := range s.vars {
		if r, ok := s.rows[info.sym]; ok {
			v.value = r.constant
		} else {
			v.value = 0
		}
	}
}

func (s *Solver) newSymbol(kind symbolKind) symbol {
	s.nextID++
	return symbol{id: s.nextID, kind: kind}
}

// varSymbol returns the symbol for v, creating it if needed. created
// collects variables first seen while building the current row.
func (s *Solver) varSymbol(v *Variable, created *[]*Variable) symbol {
	if info, ok := s.vars[v]; ok {
		return info.sym
	}
	info := &varInfo{sym: s.newSymbol(externalSymbol)}
	s.vars[v] = info
	*created = append(*created, v)
	return info.sym
}

func (s *Solver) retainVars(c *Constraint) {
	for _, t := range c.expr.Terms {
		s.vars[t.Variable].refs++
	}
}

// releaseVars drops the references held by a removed constraint.
func (s *Solver) releaseVars(c *Constraint) {
	for _, t := range c.expr.Terms {
		info, ok := s.vars[t.Variable]
		if !ok {
			continue
		}
		info.refs--
		if info.refs <= 0 {
			s.dropVar(t.Variable, info)
		}
	}
}

// discardVars forgets variables first seen by a constraint that was rejected.
func (s *Solver) discardVars(created []*Variable) {
	for _, v := range created {
		if info, ok := s.vars[v]; ok && info.refs == 0 {
			s.dropVar(v, info)
		}
	}
}

func (s *Solver) dropVar(v *Variable, info *varInfo) {
	delete(s.vars, v)
	// A basic row for an unreferenced variable constrains nothing else.
	delete(s.rows, info.sym)
	v.value = 0
}

func (s *Solver) createRow(c *Constraint, t *tag) (*row, []*Variable) {
	var created []*Variable
	r := newRow(c.expr.Constant)
	for _, term := range c.expr.Terms {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.varSymbol(term.Variable, &created)
		if basic, ok := s.rows[sym]; ok {
			r.insertRow(basic, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	switch c.op {
	case LE, GE:
		coeff := 1.0
		if c.op == GE {
			coeff = -1.0
		}
		slack := s.newSymbol(slackSymbol)
		t.marker = slack
		r.insertSymbol(slack, coeff)
		if !c.strength.IsRequired() {
			errSym := s.newSymbol(errorSymbol)
			t.other = errSym
			r.insertSymbol(errSym, -coeff)
			s.objective.insertSymbol(errSym, float64(c.strength))
		}
	case EQ:
		if !c.strength.IsRequired() {
			plus := s.newSymbol(errorSymbol)
			minus := s.newSymbol(errorSymbol)
			t.marker = plus
			t.other = minus
			r.insertSymbol(plus, -1)
			r.insertSymbol(minus, 1)
			s.objective.insertSymbol(plus, float64(c.strength))
			s.objective.insertSymbol(minus, float64(c.strength))
		} else {
			dummy := s.newSymbol(dummySymbol)
			t.marker = dummy
			r.insertSymbol(dummy, 1)
		}
	}

	if r.constant < 0 {
		r.reverseSign()
	}
	return r, created
}

func (s *Solver) chooseSubject(r *row, t tag) symbol {
	for _, sym := range r.sortedSymbols() {
		if sym.kind == externalSymbol {
			return sym
		}
	}
	if t.marker.kind == slackSymbol || t.marker.kind == errorSymbol {
		if r.coefficient(t.marker) < 0 {
			return t.marker
		}
	}
	if t.other.kind == slackSymbol || t.other.kind == errorSymbol {
		if r.coefficient(t.other) < 0 {
			return t.other
		}
	}
	return symbol{}
}

func allDummies(r *row) bool {
	for sym := range r.cells {
		if sym.kind != dummySymbol {
			return false
		}
	}
	return true
}

func (s *Solver) addWithArtificialVariable(r *row) (bool, error) {
	art := s.newSymbol(slackSymbol)
	s.rows[art] = r.clone()
	s.artificial = r.clone()

	if err := s.optimize(s.artificial); err != nil {
		s.artificial = nil
		return false, err
	}
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	if basic, ok := s.rows[art]; ok {
		delete(s.rows, art)
		if len(basic.cells) == 0 {
			return success, nil
		}
		entering := anyPivotableSymbol(basic)
		if !entering.valid() {
			return false, nil
		}
		basic.solveForPair(art, entering)
		s.substitute(entering, basic)
		s.rows[entering] = basic
	}

	for _, basic := range s.rows {
		basic.remove(art)
	}
	s.objective.remove(art)
	return success, nil
}

type snapshot struct {
	rows       map[symbol]*row
	objective  *row
	infeasible []symbol
}

func (s *Solver) snapshot() snapshot {
	rows := make(map[symbol]*row, len(s.rows))
	for sym, r := range s.rows {
		rows[sym] = r.clone()
	}
	return snapshot{
		rows:       rows,
		objective:  s.objective.clone(),
		infeasible: append([]symbol(nil), s.infeasible...),
	}
}

func (s *Solver) restore(snap snapshot) {
	s.rows = snap.rows
	s.objective = snap.objective
	s.infeasible = snap.infeasible
	s.artificial = nil
}

func (s *Solver) substitute(sym symbol, r *row) {
	for basicSym, basic := range s.rows {
		basic.substitute(sym, r)
		if basicSym.kind != externalSymbol && basic.constant < 0 {
			s.infeasible = append(s.infeasible, basicSym)
		}
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

func (s *Solver) optimize(objective *row) error {
	for {
		entering := enteringSymbol(objective)
		if !entering.valid() {
			return nil
		}
		leaving, r := s.leavingRow(entering)
		if r == nil {
			return lerrors.Newf("cassowary.Solver.optimize", lerrors.KindInternalSolver, "objective is unbounded")
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
	}
}

func (s *Solver) dualOptimize() error {
	for len(s.infeasible) > 0 {
		// Take the oldest infeasible symbol so the result does not depend on
		// the order rows were visited when they became infeasible.
		best := 0
		for i, sym := range s.infeasible {
			if sym.id < s.infeasible[best].id {
				best = i
			}
		}
		leaving := s.infeasible[best]
		s.infeasible = append(s.infeasible[:best], s.infeasible[best+1:]...)

		r, ok := s.rows[leaving]
		if !ok || nearZero(r.constant) || r.constant >= 0 {
			continue
		}
		entering := s.dualEnteringSymbol(r)
		if !entering.valid() {
			return lerrors.Newf("cassowary.Solver.dualOptimize", lerrors.KindInternalSolver, "dual optimize failed")
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substitute(entering, r)
		s.rows[entering] = r
	}
	return nil
}

func enteringSymbol(objective *row) symbol {
	for _, sym := range objective.sortedSymbols() {
		if sym.kind != dummySymbol && objective.cells[sym] < 0 {
			return sym
		}
	}
	return symbol{}
}

func (s *Solver) dualEnteringSymbol(r *row) symbol {
	var entering symbol
	ratio := math.MaxFloat64
	for _, sym := range r.sortedSymbols() {
		c := r.cells[sym]
		if c > 0 && sym.kind != dummySymbol {
			rr := s.objective.coefficient(sym) / c
			if rr < ratio {
				ratio = rr
				entering = sym
			}
		}
	}
	return entering
}

func anyPivotableSymbol(r *row) symbol {
	for _, sym := range r.sortedSymbols() {
		if sym.kind == slackSymbol || sym.kind == errorSymbol {
			return sym
		}
	}
	return symbol{}
}

func (s *Solver) leavingRow(entering symbol) (symbol, *row) {
	ratio := math.MaxFloat64
	var found symbol
	var foundRow *row
	for sym, r := range s.rows {
		if sym.kind == externalSymbol {
			continue
		}
		c := r.coefficient(entering)
		if c >= 0 {
			continue
		}
		rr := -r.constant / c
		if rr < ratio || (rr == ratio && sym.id < found.id) {
			ratio = rr
			found = sym
			foundRow = r
		}
	}
	return found, foundRow
}

func (s *Solver) markerLeavingRow(marker symbol) (symbol, *row) {
	r1, r2 := math.MaxFloat64, math.MaxFloat64
	var first, second, third symbol
	for sym, r := range s.rows {
		c := r.coefficient(marker)
		if c == 0 {
			continue
		}
		switch {
		case sym.kind == externalSymbol:
			if !third.valid() || sym.id < third.id {
				third = sym
			}
		case c < 0:
			rr := -r.constant / c
			if rr < r1 || (rr == r1 && sym.id < first.id) {
				r1 = rr
				first = sym
			}
		default:
			rr := r.constant / c
			if rr < r2 || (rr == r2 && sym.id < second.id) {
				r2 = rr
				second = sym
			}
		}
	}
	for _, sym := range []symbol{first, second, third} {
		if sym.valid() {
			return sym, s.rows[sym]
		}
	}
	return symbol{}, nil
}

func (s *Solver) removeConstraintEffects(c *Constraint, t tag) {
	if t.marker.kind == errorSymbol {
		s.removeMarkerEffects(t.marker, c.strength)
	}
	if t.other.kind == errorSymbol {
		s.removeMarkerEffects(t.other, c.strength)
	}
}

func (s *Solver) removeMarkerEffects(marker symbol, strength Strength) {
	if r, ok := s.rows[marker]; ok {
		s.objective.insertRow(r, -float64(strength))
	} else {
		s.objective.insertSymbol(marker, -float64(strength))
	}
}
