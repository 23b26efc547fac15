package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/chewxy/math32"

	"github.com/agiangrant/lattice/cassowary"
	lerrors "github.com/agiangrant/lattice/errors"
	"github.com/agiangrant/lattice/widget"
)

// Change is one solved variable whose value moved since the last fetch.
type Change struct {
	Widget widget.ID
	Kind   VarKind
	Value  float64
}

func (c Change) String() string {
	return fmt.Sprintf("%s.%s=%g", c.Widget, c.Kind, c.Value)
}

// ChangeList is ordered by widget id, then variable kind.
type ChangeList []Change

// Widgets returns the distinct widgets in the list, in list order.
func (l ChangeList) Widgets() []widget.ID {
	var out []widget.ID
	for i, c := range l {
		if i == 0 || l[i-1].Widget != c.Widget {
			out = append(out, c.Widget)
		}
	}
	return out
}

type varRef struct {
	widget widget.ID
	kind   VarKind
}

type entry struct {
	vars      *Vars
	intrinsic []*cassowary.Constraint
	cns       map[*cassowary.Constraint]struct{}
	edits     map[VarKind]struct{}
}

type record struct {
	seq     uint64
	widgets []widget.ID
}

// Solver is the incremental layout solver. It owns the variable sets of all
// registered widgets and the constraints between them.
//
// Solver remembers which widgets each constraint references so RemoveWidget
// can purge what is left, but it does not know who added a constraint:
// container policies retract their own constraints before a widget is
// removed.
type Solver struct {
	solver    *cassowary.Solver
	widgets   map[widget.ID]*entry
	owners    map[*cassowary.Variable]varRef
	cns       map[*cassowary.Constraint]*record
	published map[*cassowary.Variable]float64
	seq       uint64
	stale     bool
	logger    *slog.Logger
}

// NewSolver returns an empty layout solver logging to logger.
// A nil logger means slog.Default().
func NewSolver(logger *slog.Logger) *Solver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Solver{
		solver:    cassowary.NewSolver(),
		widgets:   make(map[widget.ID]*entry),
		owners:    make(map[*cassowary.Variable]varRef),
		cns:       make(map[*cassowary.Constraint]*record),
		published: make(map[*cassowary.Variable]float64),
		logger:    logger,
	}
}

// AddWidget registers the variable set of widget id together with the
// constraints supplied at creation. A nil vars creates a fresh set.
//
// It fails with KindDuplicateWidget if id is already registered. If any
// constraint cannot be added the widget is not registered and the solver is
// left as it was.
func (s *Solver) AddWidget(id widget.ID, vars *Vars, constraints ...*cassowary.Constraint) error {
	const op = "layout.Solver.AddWidget"
	if _, ok := s.widgets[id]; ok {
		return lerrors.New(op, lerrors.KindDuplicateWidget).ForWidget(id)
	}
	if vars == nil {
		vars = NewVars(id, "")
	}

	e := &entry{
		vars:      vars,
		intrinsic: vars.intrinsic(),
		cns:       make(map[*cassowary.Constraint]struct{}),
		edits:     make(map[VarKind]struct{}),
	}
	s.widgets[id] = e
	for _, k := range Kinds {
		s.owners[vars.Var(k)] = varRef{widget: id, kind: k}
	}

	all := append(append([]*cassowary.Constraint(nil), e.intrinsic...), constraints...)
	for i, c := range all {
		if err := s.AddConstraint(c); err != nil {
			for j := i - 1; j >= 0; j-- {
				s.removeTracked(all[j])
			}
			s.forget(id, e)
			var le *lerrors.Error
			if errors.As(err, &le) {
				return le.ForWidget(id)
			}
			return err
		}
	}
	return nil
}

// RemoveWidget purges widget id: its edit variables, every constraint still
// referencing it and its variable set. Constraints that also reference other
// widgets should have been retracted by the container policy first; any left
// over are removed with a warning.
func (s *Solver) RemoveWidget(id widget.ID) error {
	const op = "layout.Solver.RemoveWidget"
	e, ok := s.widgets[id]
	if !ok {
		return lerrors.New(op, lerrors.KindUnknownWidget).ForWidget(id)
	}

	for _, k := range Kinds {
		if _, ok := e.edits[k]; ok {
			if err := s.RemoveEditVariable(id, k); err != nil {
				return err
			}
		}
	}

	intrinsic := make(map[*cassowary.Constraint]bool, len(e.intrinsic))
	for _, c := range e.intrinsic {
		intrinsic[c] = true
	}
	for _, c := range s.sortedConstraints(e.cns) {
		if !intrinsic[c] && len(s.cns[c].widgets) > 1 {
			s.logger.Warn("purging constraint shared with other widgets",
				"widget", id.String(), "constraint", c.String())
		}
		if err := s.RemoveConstraint(c); err != nil {
			return err
		}
	}

	s.forget(id, e)
	return nil
}

func (s *Solver) forget(id widget.ID, e *entry) {
	for _, k := range Kinds {
		v := e.vars.Var(k)
		delete(s.owners, v)
		delete(s.published, v)
	}
	delete(s.widgets, id)
}

// AddConstraint adds c. Every variable in c must belong to a registered
// widget; otherwise it fails with KindUnknownWidget.
func (s *Solver) AddConstraint(c *cassowary.Constraint) error {
	const op = "layout.Solver.AddConstraint"
	var ids []widget.ID
	for _, v := range c.Variables() {
		ref, ok := s.owners[v]
		if !ok {
			return lerrors.Newf(op, lerrors.KindUnknownWidget, "variable %s has no registered widget", v)
		}
		if !containsID(ids, ref.widget) {
			ids = append(ids, ref.widget)
		}
	}
	if err := s.solver.AddConstraint(c); err != nil {
		return err
	}
	s.seq++
	s.stale = true
	s.cns[c] = &record{seq: s.seq, widgets: ids}
	for _, id := range ids {
		s.widgets[id].cns[c] = struct{}{}
	}
	return nil
}

// AddConstraints adds cs in order, stopping at the first error. Constraints
// added before the error stay in the solver.
func (s *Solver) AddConstraints(cs ...*cassowary.Constraint) error {
	for _, c := range cs {
		if err := s.AddConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// RemoveConstraint removes c.
func (s *Solver) RemoveConstraint(c *cassowary.Constraint) error {
	if err := s.solver.RemoveConstraint(c); err != nil {
		return err
	}
	s.stale = true
	s.untrack(c)
	return nil
}

// RemoveConstraints removes cs in order, stopping at the first error.
func (s *Solver) RemoveConstraints(cs ...*cassowary.Constraint) error {
	for _, c := range cs {
		if err := s.RemoveConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// removeTracked undoes AddConstraint during rollback.
func (s *Solver) removeTracked(c *cassowary.Constraint) {
	if s.solver.HasConstraint(c) {
		_ = s.solver.RemoveConstraint(c)
		s.stale = true
	}
	s.untrack(c)
}

func (s *Solver) untrack(c *cassowary.Constraint) {
	r, ok := s.cns[c]
	if !ok {
		return
	}
	for _, id := range r.widgets {
		if e, ok := s.widgets[id]; ok {
			delete(e.cns, c)
		}
	}
	delete(s.cns, c)
}

// Apply retracts edit.Remove and then adds edit.Add.
func (s *Solver) Apply(edit Edit) error {
	if err := s.RemoveConstraints(edit.Remove...); err != nil {
		return err
	}
	return s.AddConstraints(edit.Add...)
}

// HasConstraint reports whether c is in the solver.
func (s *Solver) HasConstraint(c *cassowary.Constraint) bool {
	_, ok := s.cns[c]
	return ok
}

// AddEditVariable declares the kind variable of widget id as editable at the
// given strength, which must be below cassowary.Required.
func (s *Solver) AddEditVariable(id widget.ID, kind VarKind, strength cassowary.Strength) error {
	e, ok := s.widgets[id]
	if !ok {
		return lerrors.New("layout.Solver.AddEditVariable", lerrors.KindUnknownWidget).ForWidget(id)
	}
	if err := s.solver.AddEditVariable(e.vars.Var(kind), strength); err != nil {
		return err
	}
	s.stale = true
	e.edits[kind] = struct{}{}
	return nil
}

// RemoveEditVariable removes an edit variable declared with AddEditVariable.
func (s *Solver) RemoveEditVariable(id widget.ID, kind VarKind) error {
	const op = "layout.Solver.RemoveEditVariable"
	e, ok := s.widgets[id]
	if !ok {
		return lerrors.New(op, lerrors.KindUnknownWidget).ForWidget(id)
	}
	if _, ok := e.edits[kind]; !ok {
		return lerrors.Newf(op, lerrors.KindUnknownEditVariable, "%s", e.vars.Var(kind)).ForWidget(id)
	}
	if err := s.solver.RemoveEditVariable(e.vars.Var(kind)); err != nil {
		return err
	}
	s.stale = true
	delete(e.edits, kind)
	return nil
}

// SuggestValue pulls an edit variable toward value. It fails with
// KindUnknownEditVariable if the variable was not declared editable.
func (s *Solver) SuggestValue(id widget.ID, kind VarKind, value float64) error {
	const op = "layout.Solver.SuggestValue"
	e, ok := s.widgets[id]
	if !ok {
		return lerrors.New(op, lerrors.KindUnknownWidget).ForWidget(id)
	}
	if _, ok := e.edits[kind]; !ok {
		return lerrors.Newf(op, lerrors.KindUnknownEditVariable, "%s", e.vars.Var(kind)).ForWidget(id)
	}
	if err := s.solver.SuggestValue(e.vars.Var(kind), value); err != nil {
		return err
	}
	s.stale = true
	return nil
}

// Stale reports whether the solver was mutated since the last FetchChanges.
func (s *Solver) Stale() bool { return s.stale }

// HasEditVariable reports whether the kind variable of id is editable.
func (s *Solver) HasEditVariable(id widget.ID, kind VarKind) bool {
	e, ok := s.widgets[id]
	if !ok {
		return false
	}
	_, ok = e.edits[kind]
	return ok
}

// FetchChanges returns every variable whose solved value differs from the
// value published by the previous call, and records the new values as
// published. Values start out published as 0. A second call with no
// mutation in between returns an empty list without scanning.
func (s *Solver) FetchChanges() ChangeList {
	if !s.stale {
		return nil
	}
	s.stale = false
	s.solver.UpdateVariables()

	var changes ChangeList
	for _, id := range s.Widgets() {
		e := s.widgets[id]
		for _, k := range Kinds {
			v := e.vars.Var(k)
			value := v.Value()
			if math.Abs(value-s.published[v]) <= cassowary.Tolerance {
				continue
			}
			s.published[v] = value
			changes = append(changes, Change{Widget: id, Kind: k, Value: value})
		}
	}

	if len(changes) > 0 {
		s.logger.Debug("layout has changes", "count", len(changes))
		for _, c := range changes {
			s.logger.Debug("layout change", "widget", c.Widget.String(), "var", c.Kind.String(), "value", c.Value)
		}
	}
	return changes
}

// Value returns the last published value of the kind variable of id.
func (s *Solver) Value(id widget.ID, kind VarKind) (float64, bool) {
	e, ok := s.widgets[id]
	if !ok {
		return 0, false
	}
	return s.published[e.vars.Var(kind)], true
}

// Bounds returns the last published geometry of id in pixels.
func (s *Solver) Bounds(id widget.ID) (widget.Bounds, bool) {
	e, ok := s.widgets[id]
	if !ok {
		return widget.Bounds{}, false
	}
	px := func(k VarKind) float32 {
		return math32.Round(float32(s.published[e.vars.Var(k)])*1000) / 1000
	}
	return widget.Rect(px(Left), px(Top), px(Width), px(Height)), true
}

// Vars returns the variable set of id, or nil if id is not registered.
func (s *Solver) Vars(id widget.ID) *Vars {
	if e, ok := s.widgets[id]; ok {
		return e.vars
	}
	return nil
}

// Has reports whether id is registered.
func (s *Solver) Has(id widget.ID) bool {
	_, ok := s.widgets[id]
	return ok
}

// Widgets returns the registered widget ids in id order.
func (s *Solver) Widgets() []widget.ID {
	ids := make([]widget.ID, 0, len(s.widgets))
	for id := range s.widgets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// Len returns the number of constraints in the solver, intrinsic ones included.
func (s *Solver) Len() int { return len(s.cns) }

// ConstraintsFor returns the constraints referencing id in insertion order.
func (s *Solver) ConstraintsFor(id widget.ID) []*cassowary.Constraint {
	e, ok := s.widgets[id]
	if !ok {
		return nil
	}
	return s.sortedConstraints(e.cns)
}

// DebugString dumps every widget's published values followed by every
// constraint in insertion order.
func (s *Solver) DebugString() string {
	var sb strings.Builder
	for _, id := range s.Widgets() {
		e := s.widgets[id]
		fmt.Fprintf(&sb, "%s:", e.vars.Name())
		for _, k := range Kinds {
			fmt.Fprintf(&sb, " %s=%g", k, s.published[e.vars.Var(k)])
		}
		sb.WriteByte('\n')
	}
	all := make(map[*cassowary.Constraint]struct{}, len(s.cns))
	for c := range s.cns {
		all[c] = struct{}{}
	}
	for _, c := range s.sortedConstraints(all) {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (s *Solver) sortedConstraints(set map[*cassowary.Constraint]struct{}) []*cassowary.Constraint {
	out := make([]*cassowary.Constraint, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return s.cns[out[i]].seq < s.cns[out[j]].seq })
	return out
}

func containsID(ids []widget.ID, id widget.ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
