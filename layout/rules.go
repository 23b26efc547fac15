package layout

import "github.com/agiangrant/lattice/cassowary"

// ============================================================================
// Constraint Rules
// ============================================================================
//
// A Rule is a small builder for one or more related constraints:
//
//	cs := layout.Collect(
//		layout.Size(child, 100, 40),
//		layout.AlignTop(child, parent).Padding(8),
//		layout.Center(child, parent).Strength(cassowary.Strong),
//	)
//
// Rules default to required strength unless noted and to zero padding.

// Rule builds constraints at a chosen strength and padding.
type Rule struct {
	strength cassowary.Strength
	padding  float64
	build    func(pad float64, s cassowary.Strength) []*cassowary.Constraint
}

func rule(s cassowary.Strength, build func(pad float64, s cassowary.Strength) []*cassowary.Constraint) Rule {
	return Rule{strength: s, build: build}
}

// Strength returns a copy of r building at strength s.
func (r Rule) Strength(s cassowary.Strength) Rule {
	r.strength = s
	return r
}

// Padding returns a copy of r using padding p. Rules that relate a widget to
// another one keep p pixels between them; others ignore it.
func (r Rule) Padding(p float64) Rule {
	r.padding = p
	return r
}

// Build returns the constraints described by r.
func (r Rule) Build() []*cassowary.Constraint {
	if r.build == nil {
		return nil
	}
	return r.build(r.padding, r.strength)
}

// Collect builds every rule and concatenates the results.
func Collect(rules ...Rule) []*cassowary.Constraint {
	var out []*cassowary.Constraint
	for _, r := range rules {
		out = append(out, r.Build()...)
	}
	return out
}

func num(v float64) cassowary.Const { return cassowary.Const(v) }

// TopLeft places w's top-left corner at (x, y).
func TopLeft(w *Vars, x, y float64) Rule {
	return rule(cassowary.Required, func(_ float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{
			cassowary.Eq(w.Left(), num(x), s),
			cassowary.Eq(w.Top(), num(y), s),
		}
	})
}

// Size fixes w's width and height.
func Size(w *Vars, width, height float64) Rule {
	return rule(cassowary.Required, func(_ float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{
			cassowary.Eq(w.Width(), num(width), s),
			cassowary.Eq(w.Height(), num(height), s),
		}
	})
}

// FixedWidth fixes w's width.
func FixedWidth(w *Vars, width float64) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Eq(w.Width(), num(width), s)
	})
}

// FixedHeight fixes w's height.
func FixedHeight(w *Vars, height float64) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Eq(w.Height(), num(height), s)
	})
}

// MinWidth keeps w at least width wide.
func MinWidth(w *Vars, width float64) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Ge(w.Width(), num(width), s)
	})
}

// MinHeight keeps w at least height tall.
func MinHeight(w *Vars, height float64) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Ge(w.Height(), num(height), s)
	})
}

// MaxWidth keeps w at most width wide.
func MaxWidth(w *Vars, width float64) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Le(w.Width(), num(width), s)
	})
}

// MaxHeight keeps w at most height tall.
func MaxHeight(w *Vars, height float64) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Le(w.Height(), num(height), s)
	})
}

// MinSize keeps w at least width by height.
func MinSize(w *Vars, width, height float64) Rule {
	return rule(cassowary.Required, func(_ float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{
			cassowary.Ge(w.Width(), num(width), s),
			cassowary.Ge(w.Height(), num(height), s),
		}
	})
}

// Shrink pulls w's size toward zero. Weak by default, so anything else
// wins.
func Shrink(w *Vars) Rule {
	return rule(cassowary.Weak, func(_ float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{
			cassowary.Eq(w.Width(), num(0), s),
			cassowary.Eq(w.Height(), num(0), s),
		}
	})
}

// MatchLayout makes w cover o, inset by the padding on every side.
func MatchLayout(w, o *Vars) Rule {
	return rule(cassowary.Required, func(p float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{
			cassowary.Eq(w.Left(), o.Left().Plus(num(p)), s),
			cassowary.Eq(w.Top(), o.Top().Plus(num(p)), s),
			cassowary.Eq(w.Right(), o.Right().Minus(num(p)), s),
			cassowary.Eq(w.Bottom(), o.Bottom().Minus(num(p)), s),
		}
	})
}

// MatchWidth makes w as wide as o.
func MatchWidth(w, o *Vars) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Eq(w.Width(), o.Width(), s)
	})
}

// MatchHeight makes w as tall as o.
func MatchHeight(w, o *Vars) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Eq(w.Height(), o.Height(), s)
	})
}

// BoundBy keeps w inside o, at least the padding away from each edge.
func BoundBy(w, o *Vars) Rule {
	return rule(cassowary.Required, func(p float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{
			cassowary.Ge(w.Left(), o.Left().Plus(num(p)), s),
			cassowary.Ge(w.Top(), o.Top().Plus(num(p)), s),
			cassowary.Le(w.Right(), o.Right().Minus(num(p)), s),
			cassowary.Le(w.Bottom(), o.Bottom().Minus(num(p)), s),
		}
	})
}

// Center centers w within o on both axes.
func Center(w, o *Vars) Rule {
	return rule(cassowary.Required, func(_ float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{
			centerX(w, o, s),
			centerY(w, o, s),
		}
	})
}

// CenterHorizontal centers w within o along the x axis.
func CenterHorizontal(w, o *Vars) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return centerX(w, o, s)
	})
}

// CenterVertical centers w within o along the y axis.
func CenterVertical(w, o *Vars) Rule {
	return single(cassowary.Required, func(s cassowary.Strength) *cassowary.Constraint {
		return centerY(w, o, s)
	})
}

func centerX(w, o *Vars, s cassowary.Strength) *cassowary.Constraint {
	return cassowary.Eq(w.Left().Plus(w.Width().Times(0.5)), o.Left().Plus(o.Width().Times(0.5)), s)
}

func centerY(w, o *Vars, s cassowary.Strength) *cassowary.Constraint {
	return cassowary.Eq(w.Top().Plus(w.Height().Times(0.5)), o.Top().Plus(o.Height().Times(0.5)), s)
}

// AlignTop lines up w's top edge with o's, inset by the padding.
func AlignTop(w, o *Vars) Rule {
	return padded(func(p float64, s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Eq(w.Top(), o.Top().Plus(num(p)), s)
	})
}

// AlignBottom lines up w's bottom edge with o's, inset by the padding.
func AlignBottom(w, o *Vars) Rule {
	return padded(func(p float64, s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Eq(w.Bottom(), o.Bottom().Minus(num(p)), s)
	})
}

// AlignLeft lines up w's left edge with o's, inset by the padding.
func AlignLeft(w, o *Vars) Rule {
	return padded(func(p float64, s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Eq(w.Left(), o.Left().Plus(num(p)), s)
	})
}

// AlignRight lines up w's right edge with o's, inset by the padding.
func AlignRight(w, o *Vars) Rule {
	return padded(func(p float64, s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Eq(w.Right(), o.Right().Minus(num(p)), s)
	})
}

// Above keeps w above o with at least the padding between them.
func Above(w, o *Vars) Rule {
	return padded(func(p float64, s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Le(w.Bottom().Plus(num(p)), o.Top(), s)
	})
}

// Below keeps w below o with at least the padding between them.
func Below(w, o *Vars) Rule {
	return padded(func(p float64, s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Ge(w.Top(), o.Bottom().Plus(num(p)), s)
	})
}

// ToLeftOf keeps w left of o with at least the padding between them.
func ToLeftOf(w, o *Vars) Rule {
	return padded(func(p float64, s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Le(w.Right().Plus(num(p)), o.Left(), s)
	})
}

// ToRightOf keeps w right of o with at least the padding between them.
func ToRightOf(w, o *Vars) Rule {
	return padded(func(p float64, s cassowary.Strength) *cassowary.Constraint {
		return cassowary.Ge(w.Left(), o.Right().Plus(num(p)), s)
	})
}

func single(def cassowary.Strength, build func(s cassowary.Strength) *cassowary.Constraint) Rule {
	return rule(def, func(_ float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{build(s)}
	})
}

func padded(build func(p float64, s cassowary.Strength) *cassowary.Constraint) Rule {
	return rule(cassowary.Required, func(p float64, s cassowary.Strength) []*cassowary.Constraint {
		return []*cassowary.Constraint{build(p, s)}
	})
}
