package ir

// Range describes a span of array indices as a start, an inclusive stop,
// and a step, held as its three children in that fixed order.
type Range struct {
	BaseNode
}

// NewRange creates a range from its start, stop, and step expressions.
func NewRange(start, stop, step DataNode) *Range {
	rng := &Range{}
	rng.init(rng)
	for _, child := range []DataNode{start, stop, step} {
		if err := rng.AddChild(child); err != nil {
			panic(err)
		}
	}
	return rng
}

// UnitRange creates a range stepping by one.
func UnitRange(start, stop DataNode) *Range {
	return NewRange(start, stop, IntLiteral("1"))
}

func (r *Range) NodeName() string {
	return "Range"
}

func (r *Range) ChildValid(position int, child Node) bool {
	return position < 3 && isData(child)
}

func (r *Range) ChildFormat() string {
	return "DataNode, DataNode, DataNode"
}

func (r *Range) dataNode() {}

// Start returns the start expression of the range.
func (r *Range) Start() DataNode {
	return r.Children()[0].(DataNode)
}

// Stop returns the inclusive stop expression of the range.
func (r *Range) Stop() DataNode {
	return r.Children()[1].(DataNode)
}

// Step returns the step expression of the range.
func (r *Range) Step() DataNode {
	return r.Children()[2].(DataNode)
}
