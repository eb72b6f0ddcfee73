package trans

import (
	"github.com/rommelDB/PSyclone/access"
	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/report"
	"github.com/rommelDB/PSyclone/symbols"
)

// AssignmentTrans rewrites a tangent-linear assignment into its adjoint
// form: for each right-hand-side term the adjoint of the term's active
// variable accumulates the left-hand side scaled by the term's passive
// factors, and the left-hand side itself is finally zeroed or, when the
// assignment increments its own target, scaled in place.
type AssignmentTrans struct {
	// Active lists the active (differentiated) variables.  Variables not
	// in the list are passive and pass through unchanged.
	Active []*symbols.DataSymbol
}

func (t *AssignmentTrans) Name() string {
	return "AssignmentTrans"
}

// term is one additive component of the right-hand side, with the sign it
// carries after resolving subtractions and top-level unary minuses.
type term struct {
	negative bool
	expr     ir.DataNode
}

func (t *AssignmentTrans) activeSet() map[*symbols.DataSymbol]bool {
	active := make(map[*symbols.DataSymbol]bool, len(t.Active))
	for _, sym := range t.Active {
		active[sym] = true
	}
	return active
}

func (t *AssignmentTrans) Validate(node ir.Node) error {
	asg, ok := node.(*ir.Assignment)
	if !ok {
		if node == nil {
			return report.Transformationf("AssignmentTrans: the supplied node must not be nil")
		}
		return report.Transformationf(
			"AssignmentTrans can only be applied to an Assignment but found '%s'",
			node.NodeName())
	}

	active := t.activeSet()
	terms := splitTerms(asg.RHS(), false, nil)

	rhsActive := false
	for _, tm := range terms {
		if len(activeRefsIn(tm.expr, active)) > 0 {
			rhsActive = true
			break
		}
	}
	lhsActive := isActiveRef(asg.LHS(), active)

	if !rhsActive && !lhsActive {
		return nil
	}

	if rhsActive && !lhsActive {
		return report.TangentLinearf(
			"the assignment to '%s' has active variables on its right-hand side but its left-hand side is not an active variable",
			refName(asg.LHS()))
	}

	if asg.Parent() == nil {
		return report.Transformationf("AssignmentTrans: the supplied assignment must have a parent")
	}

	if !rhsActive {
		return nil
	}

	for i, tm := range terms {
		refs := activeRefsIn(tm.expr, active)
		if len(refs) != 1 {
			return report.TangentLinearf(
				"each term on the right-hand side of an active assignment must contain exactly one active variable but term %d contains %d",
				i+1, len(refs))
		}
		if err := checkActiveUsage(refs[0], tm.expr); err != nil {
			return err
		}
	}
	return nil
}

func (t *AssignmentTrans) Apply(node ir.Node) error {
	if err := t.Validate(node); err != nil {
		return err
	}

	asg := node.(*ir.Assignment)
	active := t.activeSet()
	lhs := asg.LHS()
	terms := splitTerms(asg.RHS(), false, nil)

	if !isActiveRef(lhs, active) {
		// Fully passive assignments pass through unchanged.
		return nil
	}

	type selfTerm struct {
		negative bool
		factor   ir.DataNode
	}

	var stmts []ir.Statement
	var selfs []selfTerm

	for _, tm := range terms {
		refs := activeRefsIn(tm.expr, active)
		if len(refs) == 0 {
			// Only reachable when the whole right-hand side is passive.
			continue
		}
		ref := refs[0]

		if sameLocation(ref, lhs) {
			selfs = append(selfs, selfTerm{tm.negative, selfFactor(tm.expr, ref)})
			continue
		}

		// target = target +/- term[active -> lhs]
		update := ir.CopyReplacing(tm.expr, ref, func() ir.Node {
			return ir.CopyData(lhs)
		}).(ir.DataNode)

		op := ir.Add
		if tm.negative {
			op = ir.Sub
		}
		stmt, err := ir.NewAssignment(ir.CopyData(ref), ir.NewBinaryOperation(op, ir.CopyData(ref), update))
		if err != nil {
			return err
		}
		stmts = append(stmts, stmt)
	}

	switch {
	case len(selfs) == 1 && !selfs[0].negative && selfs[0].factor == nil:
		// A pure increment of the target leaves its adjoint unchanged.

	case len(selfs) > 0:
		var coeff ir.DataNode
		for _, st := range selfs {
			factor := st.factor
			if factor == nil {
				factor = ir.RealLiteral("1.0")
			}
			if coeff == nil {
				if st.negative {
					factor = ir.NewUnaryOperation(ir.UnaryMinus, factor)
				}
				coeff = factor
				continue
			}
			op := ir.Add
			if st.negative {
				op = ir.Sub
			}
			coeff = ir.NewBinaryOperation(op, coeff, factor)
		}

		stmt, err := ir.NewAssignment(ir.CopyData(lhs), ir.NewBinaryOperation(ir.Mul, ir.CopyData(lhs), coeff))
		if err != nil {
			return err
		}
		stmts = append(stmts, stmt)

	default:
		// The target's previous value is fully consumed.
		stmt, err := ir.NewAssignment(ir.CopyData(lhs), ir.RealLiteral("0.0"))
		if err != nil {
			return err
		}
		stmts = append(stmts, stmt)
	}

	parent := asg.Parent()
	position := asg.Position()
	asg.Detach()
	for i, stmt := range stmts {
		if err := parent.InsertChild(position+i, stmt); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// splitTerms flattens the additive structure of an expression into its
// terms, pushing subtractions and top-level unary signs into per-term
// signs.
func splitTerms(expr ir.DataNode, negative bool, terms []term) []term {
	switch node := expr.(type) {
	case *ir.BinaryOperation:
		if node.Operator == ir.Add {
			terms = splitTerms(node.LHS(), negative, terms)
			return splitTerms(node.RHS(), negative, terms)
		}
		if node.Operator == ir.Sub {
			terms = splitTerms(node.LHS(), negative, terms)
			return splitTerms(node.RHS(), !negative, terms)
		}
	case *ir.UnaryOperation:
		if node.Operator == ir.UnaryMinus {
			return splitTerms(node.Operand(), !negative, terms)
		}
		if node.Operator == ir.UnaryPlus {
			return splitTerms(node.Operand(), negative, terms)
		}
	}
	return append(terms, term{negative, expr})
}

// activeRefsIn returns, in visit order, every reference to an active
// variable inside one term.
func activeRefsIn(expr ir.DataNode, active map[*symbols.DataSymbol]bool) []ir.DataNode {
	var refs []ir.DataNode
	for _, n := range ir.Walk[ir.Node](expr) {
		switch ref := n.(type) {
		case *ir.Reference:
			if active[ref.Symbol] {
				refs = append(refs, ref)
			}
		case *ir.ArrayReference:
			if active[ref.Symbol] {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

func isActiveRef(n ir.DataNode, active map[*symbols.DataSymbol]bool) bool {
	switch ref := n.(type) {
	case *ir.Reference:
		return active[ref.Symbol]
	case *ir.ArrayReference:
		return active[ref.Symbol]
	default:
		return false
	}
}

func refName(n ir.DataNode) string {
	switch ref := n.(type) {
	case *ir.Reference:
		return ref.Symbol.Name()
	case *ir.ArrayReference:
		return ref.Symbol.Name()
	case *ir.StructureReference:
		return ref.Symbol.Name()
	default:
		return n.NodeName()
	}
}

// checkActiveUsage walks from an active reference up to its term root and
// rejects any combination other than multiplication, division with the
// active part as the dividend, and sign changes.
func checkActiveUsage(ref ir.DataNode, root ir.DataNode) error {
	for cur := ir.Node(ref); cur != root; cur = cur.Parent() {
		switch parent := cur.Parent().(type) {
		case *ir.BinaryOperation:
			switch parent.Operator {
			case ir.Mul:
			case ir.Div:
				if cur == parent.RHS() {
					return report.TangentLinearf(
						"the active variable '%s' appears as the divisor of a division which is not supported",
						refName(ref))
				}
			default:
				return report.TangentLinearf(
					"an active variable may only be combined with other factors by multiplication or division but '%s' is combined using '%s'",
					refName(ref), parent.Operator)
			}
		case *ir.UnaryOperation:
			if parent.Operator == ir.Not {
				return report.TangentLinearf(
					"an active variable may only be combined with other factors by multiplication or division but '%s' is combined using '%s'",
					refName(ref), parent.Operator)
			}
		default:
			return report.TangentLinearf(
				"an active variable may only be combined with other factors by multiplication or division but '%s' appears inside a '%s'",
				refName(ref), parent.NodeName())
		}
	}
	return nil
}

// sameLocation reports whether two references name the same storage
// location: the same symbol and, for array accesses, structurally equal
// index expressions.
func sameLocation(a, b ir.DataNode) bool {
	switch an := a.(type) {
	case *ir.Reference:
		bn, ok := b.(*ir.Reference)
		return ok && an.Symbol == bn.Symbol

	case *ir.ArrayReference:
		bn, ok := b.(*ir.ArrayReference)
		if !ok || an.Symbol != bn.Symbol || len(an.Children()) != len(bn.Children()) {
			return false
		}
		for i, child := range an.Children() {
			if !access.SameIndex(child.(ir.DataNode), bn.Children()[i].(ir.DataNode)) {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// contains reports whether the target node occurs in the subtree.
func contains(expr ir.Node, target ir.Node) bool {
	for _, n := range ir.Walk[ir.Node](expr) {
		if n == target {
			return true
		}
	}
	return false
}

// selfFactor extracts the passive coefficient of a term whose active
// reference is the assignment target itself.  A nil result means the
// coefficient is one.
func selfFactor(expr ir.DataNode, ref ir.DataNode) ir.DataNode {
	switch node := expr.(type) {
	case *ir.BinaryOperation:
		switch node.Operator {
		case ir.Mul:
			if contains(node.LHS(), ref) {
				factor := selfFactor(node.LHS(), ref)
				if factor == nil {
					return ir.CopyData(node.RHS())
				}
				return ir.NewBinaryOperation(ir.Mul, factor, ir.CopyData(node.RHS()))
			}
			factor := selfFactor(node.RHS(), ref)
			if factor == nil {
				return ir.CopyData(node.LHS())
			}
			return ir.NewBinaryOperation(ir.Mul, ir.CopyData(node.LHS()), factor)

		case ir.Div:
			factor := selfFactor(node.LHS(), ref)
			if factor == nil {
				factor = ir.RealLiteral("1.0")
			}
			return ir.NewBinaryOperation(ir.Div, factor, ir.CopyData(node.RHS()))
		}

	case *ir.UnaryOperation:
		factor := selfFactor(node.Operand(), ref)
		if node.Operator == ir.UnaryMinus {
			if factor == nil {
				return ir.RealLiteral("-1.0")
			}
			return ir.NewUnaryOperation(ir.UnaryMinus, factor)
		}
		return factor
	}

	// The term is the bare reference itself.
	return nil
}
