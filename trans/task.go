package trans

import (
	"strconv"

	"github.com/rommelDB/PSyclone/access"
	"github.com/rommelDB/PSyclone/ir"
	"github.com/rommelDB/PSyclone/report"
	"github.com/rommelDB/PSyclone/symbols"
)

// loopParts is the common shape of the two loop node kinds.
type loopParts struct {
	node     ir.Node
	variable *symbols.DataSymbol
	start    ir.DataNode
	stop     ir.DataNode
	step     ir.DataNode
}

func asLoop(n ir.Node) (loopParts, bool) {
	switch loop := n.(type) {
	case *ir.Loop:
		return loopParts{loop, loop.Variable, loop.Start(), loop.Stop(), loop.Step()}, true
	case *ir.KernelLoop:
		return loopParts{loop, loop.Variable, loop.Start(), loop.Stop(), loop.Step()}, true
	default:
		return loopParts{}, false
	}
}

// regionLoops returns every loop in the subtree, the root included when it
// is itself a loop.
func regionLoops(root ir.Node) []loopParts {
	var loops []loopParts
	for _, n := range ir.Walk[ir.Node](root) {
		if parts, ok := asLoop(n); ok {
			loops = append(loops, parts)
		}
	}
	return loops
}

// taskClauses holds the data-sharing and dependency clauses computed for a
// task region.  The whole analysis runs before any node is moved so a
// failing transformation leaves the tree untouched.
type taskClauses struct {
	private      []*symbols.DataSymbol
	firstprivate []*symbols.DataSymbol
	shared       []*symbols.DataSymbol

	inDepend  []ir.DataNode
	outDepend []ir.DataNode
}

// TaskTrans wraps a single loop in a task directive and fills in the
// directive's data-sharing and dependency clauses from the accesses made
// inside the loop.  The loop must already sit inside a single-thread
// region so that sibling tasks are created by one thread only.
type TaskTrans struct{}

func (t *TaskTrans) Name() string {
	return "TaskTrans"
}

func (t *TaskTrans) Validate(node ir.Node) error {
	if node == nil {
		return report.Transformationf("TaskTrans: the supplied node must not be nil")
	}
	if _, ok := asLoop(node); !ok {
		return report.Transformationf(
			"TaskTrans can only be applied to a Loop but found '%s'", node.NodeName())
	}
	if node.Parent() == nil {
		return report.Transformationf("TaskTrans: the supplied loop must have a parent")
	}
	if _, ok := ir.Ancestor[*ir.SingleDirective](node); !ok {
		return report.Transformationf(
			"TaskDirective must be inside a Single region but could not find an ancestor node.")
	}
	return nil
}

func (t *TaskTrans) Apply(node ir.Node) error {
	if err := t.Validate(node); err != nil {
		return err
	}

	clauses, err := analyzeTaskRegion(node)
	if err != nil {
		return err
	}

	parent := node.Parent()
	position := node.Position()
	node.Detach()

	directive, err := ir.NewTaskDirective(node.(ir.Statement))
	if err != nil {
		return err
	}
	if err := parent.InsertChild(position, directive); err != nil {
		return err
	}

	clauses.assign(directive)
	return nil
}

// LowerTaskDirective recomputes the clauses of an already-placed task
// directive from its current region contents.
func LowerTaskDirective(directive *ir.TaskDirective) error {
	if _, ok := ir.Ancestor[*ir.SingleDirective](directive); !ok {
		return report.Generationf(
			"TaskDirective must be inside a Single region but could not find an ancestor node.")
	}

	children := directive.Body().Children()
	if len(children) != 1 {
		return report.Generationf(
			"TaskDirective must have exactly one Loop child. Found %d children.", len(children))
	}
	if _, ok := asLoop(children[0]); !ok {
		return report.Generationf(
			"TaskDirective must have exactly one Loop child. Found a '%s'.",
			children[0].NodeName())
	}

	clauses, err := analyzeTaskRegion(children[0])
	if err != nil {
		return err
	}
	clauses.assign(directive)
	return nil
}

func (tc *taskClauses) assign(directive *ir.TaskDirective) {
	directive.Private = tc.private
	directive.Firstprivate = tc.firstprivate
	directive.Shared = tc.shared
	directive.InDepend = tc.inDepend
	directive.OutDepend = tc.outDepend
}

// -----------------------------------------------------------------------------

// symbolRole is the data-sharing classification of one symbol.
type symbolRole int

const (
	roleShared symbolRole = iota
	rolePrivate
	roleFirstprivate
)

// analyzeTaskRegion partitions the variables accessed in the task's loop
// into private/firstprivate/shared and derives the depend clause entries.
// Nothing is mutated.
func analyzeTaskRegion(loop ir.Node) (*taskClauses, error) {
	loops := regionLoops(loop)
	regionVars := make(map[*symbols.DataSymbol]bool)
	for _, parts := range loops {
		regionVars[parts.variable] = true
	}

	for _, parts := range loops {
		if err := checkLoopBounds(parts); err != nil {
			return nil, err
		}
	}

	// Literal steps of enclosing loops give the stride families used to
	// normalize shifted index offsets.
	ancestorSteps := make(map[*symbols.DataSymbol]int)
	for cur := loop.Parent(); cur != nil; cur = cur.Parent() {
		if parts, ok := asLoop(cur); ok {
			step := 0
			if lit, ok := parts.step.(*ir.Literal); ok {
				if value, err := strconv.Atoi(lit.Value); err == nil {
					step = value
				}
			}
			ancestorSteps[parts.variable] = step
		}
	}

	info, err := access.CollectAll(loop)
	if err != nil {
		return nil, err
	}

	clauses := &taskClauses{}
	roles := make(map[*symbols.DataSymbol]symbolRole)
	for _, sym := range info.Symbols() {
		seq := info.For(sym)
		role := classify(sym, seq, regionVars, ancestorSteps)

		if regionVars[sym] && role != rolePrivate {
			return nil, report.Generationf(
				"found shared loop variable which is not allowed in a TaskDirective. Variable name is %s",
				sym.Name())
		}

		roles[sym] = role
		switch role {
		case rolePrivate:
			clauses.private = append(clauses.private, sym)
		case roleFirstprivate:
			clauses.firstprivate = append(clauses.firstprivate, sym)
		case roleShared:
			clauses.shared = append(clauses.shared, sym)
		}
	}

	for _, sym := range info.Symbols() {
		if roles[sym] != roleShared {
			continue
		}
		if err := clauses.addDepends(sym, info.For(sym), roles, regionVars, ancestorSteps); err != nil {
			return nil, err
		}
	}
	return clauses, nil
}

// checkLoopBounds rejects loops whose bound expressions contain an array
// reference, since such bounds cannot be captured in a depend clause.
func checkLoopBounds(parts loopParts) error {
	bounds := []struct {
		name string
		expr ir.DataNode
	}{
		{"start", parts.start},
		{"stop", parts.stop},
		{"step", parts.step},
	}
	for _, bound := range bounds {
		if len(ir.Walk[*ir.ArrayReference](bound.expr)) > 0 {
			return report.Generationf(
				"ArrayReference not supported in the %s variable of a Loop in a TaskDirective node.",
				bound.name)
		}
	}
	return nil
}

// classify assigns one symbol its data-sharing role.  Loop-control
// variables of the region and scalars first written inside the region are
// private; scalars that carry a value into the region (enclosing loop
// variables, and scalars read before a later write) are firstprivate;
// everything else, arrays included, is shared.
func classify(sym *symbols.DataSymbol, seq *access.Sequence,
	regionVars map[*symbols.DataSymbol]bool, ancestorSteps map[*symbols.DataSymbol]int) symbolRole {

	if _, isArray := sym.Datatype.(*symbols.ArrayType); isArray {
		return roleShared
	}
	if regionVars[sym] {
		if seq.FirstAccess().Type == access.Write {
			return rolePrivate
		}
		return roleShared
	}
	if _, ok := ancestorSteps[sym]; ok {
		return roleFirstprivate
	}
	if seq.FirstAccess().Type == access.Write {
		return rolePrivate
	}
	if seq.IsWritten() {
		return roleFirstprivate
	}
	return roleShared
}

// -----------------------------------------------------------------------------

// addDepends derives the depend clause entries produced by every access to
// one shared symbol.  Entries that normalize to the same index expressions
// collapse into one.
func (tc *taskClauses) addDepends(sym *symbols.DataSymbol, seq *access.Sequence,
	roles map[*symbols.DataSymbol]symbolRole, regionVars map[*symbols.DataSymbol]bool,
	ancestorSteps map[*symbols.DataSymbol]int) error {

	for _, acc := range seq.Accesses {
		entries, err := dependEntries(sym, acc, roles, regionVars, ancestorSteps)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			switch acc.Type {
			case access.Write, access.ReadWrite:
				tc.outDepend = appendDepend(tc.outDepend, entry)
			default:
				tc.inDepend = appendDepend(tc.inDepend, entry)
			}
		}
	}
	return nil
}

// dependEntries builds the depend targets for one access.  An index offset
// that is not a multiple of the owning enclosing loop's step straddles two
// chunks, so both the floor and ceiling step multiples become entries.
func dependEntries(sym *symbols.DataSymbol, acc *access.Access,
	roles map[*symbols.DataSymbol]symbolRole, regionVars map[*symbols.DataSymbol]bool,
	ancestorSteps map[*symbols.DataSymbol]int) ([]ir.DataNode, error) {

	indices := acc.Indices()
	if len(indices) == 0 {
		return []ir.DataNode{ir.NewReference(sym)}, nil
	}

	arrayRef, _ := acc.Node.(*ir.ArrayReference)
	choices := make([][]func() ir.DataNode, len(indices))

	for dim, index := range indices {
		if _, isRange := index.(*ir.Range); isRange {
			if arrayRef == nil || !arrayRef.IsFullRange(dim) {
				return nil, report.Generationf(
					"Range index that is not a full range is not supported as an index inside a TaskDirective")
			}
			d := dim
			choices[dim] = []func() ir.DataNode{func() ir.DataNode { return ir.FullRangeFor(sym, d) }}
			continue
		}

		affine, err := access.DecomposeIndex(index)
		if err != nil {
			return nil, err
		}

		if affine.Symbol == nil {
			value := strconv.Itoa(affine.Offset)
			choices[dim] = []func() ir.DataNode{func() ir.DataNode { return ir.IntLiteral(value) }}
			continue
		}

		base := affine.Symbol
		switch {
		case regionVars[base]:
			// The task spans every value of its own loop variables, so
			// the whole dimension is touched.
			d := dim
			choices[dim] = []func() ir.DataNode{func() ir.DataNode { return ir.FullRangeFor(sym, d) }}

		case roles[base] == roleShared:
			return nil, report.Generationf(
				"Shared variable access used as an index inside a TaskDirective which is not supported. Variable name is Reference[name:'%s']",
				base.Name())

		case roles[base] == rolePrivate:
			return nil, report.Generationf(
				"Private variable access used as an index inside a TaskDirective which is not supported. Variable name is Reference[name:'%s']",
				base.Name())

		default:
			step := ancestorSteps[base]
			if step > 1 && affine.Offset%step != 0 {
				low := floorDiv(affine.Offset, step) * step
				high := low + step
				choices[dim] = []func() ir.DataNode{
					offsetIndex(base, low),
					offsetIndex(base, high),
				}
			} else {
				choices[dim] = []func() ir.DataNode{offsetIndex(base, affine.Offset)}
			}
		}
	}

	var entries []ir.DataNode
	if err := buildEntries(sym, choices, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// buildEntries materializes one array-reference entry per combination of
// per-dimension index choices.  Each combination gets fresh nodes since an
// index expression can only belong to one entry.
func buildEntries(sym *symbols.DataSymbol, choices [][]func() ir.DataNode,
	prefix []func() ir.DataNode, entries *[]ir.DataNode) error {

	if len(prefix) == len(choices) {
		indices := make([]ir.DataNode, len(prefix))
		for i, build := range prefix {
			indices[i] = build()
		}
		entry, err := ir.NewArrayReference(sym, indices)
		if err != nil {
			return err
		}
		*entries = append(*entries, entry)
		return nil
	}

	for _, choice := range choices[len(prefix)] {
		if err := buildEntries(sym, choices, append(prefix, choice), entries); err != nil {
			return err
		}
	}
	return nil
}

// offsetIndex builds `sym`, `sym + k`, or `sym - k` as a fresh expression.
func offsetIndex(sym *symbols.DataSymbol, offset int) func() ir.DataNode {
	return func() ir.DataNode {
		switch {
		case offset == 0:
			return ir.NewReference(sym)
		case offset > 0:
			return ir.NewBinaryOperation(ir.Add, ir.NewReference(sym), ir.IntLiteral(strconv.Itoa(offset)))
		default:
			return ir.NewBinaryOperation(ir.Sub, ir.NewReference(sym), ir.IntLiteral(strconv.Itoa(-offset)))
		}
	}
}

func floorDiv(a, b int) int {
	quotient := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		quotient--
	}
	return quotient
}

// appendDepend adds an entry to a depend list unless a structurally equal
// entry is already present.
func appendDepend(list []ir.DataNode, entry ir.DataNode) []ir.DataNode {
	for _, existing := range list {
		if sameDependEntry(existing, entry) {
			return list
		}
	}
	return append(list, entry)
}

func sameDependEntry(a, b ir.DataNode) bool {
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
