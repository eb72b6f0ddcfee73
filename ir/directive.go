package ir

import "github.com/rommelDB/PSyclone/symbols"

// regionDirective supplies the single-Schedule child layout shared by all
// region directives.
type regionDirective struct {
	BaseNode
}

func (rd *regionDirective) ChildValid(position int, child Node) bool {
	if position != 0 {
		return false
	}
	_, ok := child.(*Schedule)
	return ok
}

func (rd *regionDirective) ChildFormat() string {
	return "Schedule"
}

func (rd *regionDirective) statementNode() {}

// Body returns the directive's region schedule.
func (rd *regionDirective) Body() *Schedule {
	return rd.Children()[0].(*Schedule)
}

func newRegionBody(rd Node, body []Statement) error {
	sched, err := NewSchedule(body...)
	if err != nil {
		return err
	}
	return rd.AddChild(sched)
}

// -----------------------------------------------------------------------------

// ParallelDirective marks a region executed by a team of threads.
type ParallelDirective struct {
	regionDirective

	// DefaultShared records whether the region carries a
	// default(shared) data-sharing clause.
	DefaultShared bool
}

// NewParallelDirective creates a parallel region around the given
// statements.
func NewParallelDirective(body ...Statement) (*ParallelDirective, error) {
	pd := &ParallelDirective{DefaultShared: true}
	pd.init(pd)
	if err := newRegionBody(pd, body); err != nil {
		return nil, err
	}
	return pd, nil
}

func (pd *ParallelDirective) NodeName() string {
	return "ParallelDirective"
}

// -----------------------------------------------------------------------------

// SingleDirective marks a region executed by exactly one thread of the
// enclosing team.
type SingleDirective struct {
	regionDirective

	// NoWait removes the implicit barrier at the end of the region.
	NoWait bool
}

// NewSingleDirective creates a single-thread region around the given
// statements.
func NewSingleDirective(body ...Statement) (*SingleDirective, error) {
	sd := &SingleDirective{}
	sd.init(sd)
	if err := newRegionBody(sd, body); err != nil {
		return nil, err
	}
	return sd, nil
}

func (sd *SingleDirective) NodeName() string {
	return "SingleDirective"
}

// -----------------------------------------------------------------------------

// TaskDirective marks a region executed as a deferrable task.  Its
// data-sharing and dependency clauses are computed from the region's
// variable accesses when the directive is lowered.
type TaskDirective struct {
	regionDirective

	// Private, Firstprivate, and Shared partition the variables accessed
	// in the region.
	Private      []*symbols.DataSymbol
	Firstprivate []*symbols.DataSymbol
	Shared       []*symbols.DataSymbol

	// InDepend and OutDepend hold the dependency targets, each a
	// Reference or ArrayReference with normalized index expressions.
	InDepend  []DataNode
	OutDepend []DataNode
}

// NewTaskDirective creates a task region around the given statements.  The
// clause lists start empty and are filled in when the directive is lowered.
func NewTaskDirective(body ...Statement) (*TaskDirective, error) {
	td := &TaskDirective{}
	td.init(td)
	if err := newRegionBody(td, body); err != nil {
		return nil, err
	}
	return td, nil
}

func (td *TaskDirective) NodeName() string {
	return "TaskDirective"
}

// -----------------------------------------------------------------------------

// ProfileRegion wraps a sequence of statements with calls into a profiling
// system, identified by a (module, region) name pair unique within the
// generated code.
type ProfileRegion struct {
	regionDirective

	ModuleName string
	RegionName string
}

// NewProfileRegion creates a named profiling region around the given
// statements.
func NewProfileRegion(moduleName, regionName string, body ...Statement) (*ProfileRegion, error) {
	pr := &ProfileRegion{ModuleName: moduleName, RegionName: regionName}
	pr.init(pr)
	if err := newRegionBody(pr, body); err != nil {
		return nil, err
	}
	return pr, nil
}

func (pr *ProfileRegion) NodeName() string {
	return "ProfileRegion"
}
