// Copyright (c) 2024, Ash Forge. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"github.com/ashforge/rendercore/base/errors"
	"github.com/ashforge/rendercore/render/target"
)

// ErrCycle is returned by Plan when the graph's edges contain a cycle.
var ErrCycle = errors.New("graph: job graph contains a cycle")

// plan is the resolved, cacheable result of planning a WorkGraph: the
// selected job run order (in forward order) and the target id bound to
// every pin of every selected job. A job the planner did not select never
// appears in order and never has a target id assigned to any of its pins.
type plan struct {
	order     []JobIdx
	hub       *target.Hub
	outputIds [][]target.Id // per job, per output pin (unselected jobs: zero)
	inputIds  [][]target.Id // per job, per input pin (param/unneeded pins: zero)
}

// selectJobs walks order backward from the graph's sinks and its
// side-effecting terminal jobs (jobs with no output pin at all, such as
// render/jobs.PresentDesc, which must run for their effect even though
// nothing downstream consumes an output of theirs) to decide which jobs
// this plan actually needs to run. A selected job's own PlanFunc (or, if it
// has none, the default of needing every update and read input) decides
// which of its input pins pull their producer into the selected set too.
// Jobs reachable only through an unrequested pin are left out entirely,
// along with their own upstream chain — this is what keeps an unsunk,
// unconsumed sub-graph from ever being planned or executed.
func selectJobs(g *WorkGraph, order []JobIdx) (map[JobIdx]bool, [][]bool, error) {
	selected := make(map[JobIdx]bool, len(g.jobs))
	neededIn := make([][]bool, len(g.jobs))
	for ji, job := range g.jobs {
		neededIn[ji] = make([]bool, job.NumInputs())
	}

	producer := make(map[PinId]PinId, len(g.edges))
	for _, e := range g.edges {
		producer[e.To] = e.From
	}

	for s := range g.sinks {
		selected[s.Job] = true
	}
	for ji, job := range g.jobs {
		if job.NumOutputs() == 0 {
			selected[JobIdx(ji)] = true
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		ji := order[i]
		if !selected[ji] {
			continue
		}
		job := &g.jobs[ji]
		need := neededIn[ji]
		if job.Plan != nil {
			if err := job.Plan(&Planner{needed: need}); err != nil {
				return nil, nil, errors.Logf("graph: plan "+job.Name, err)
			}
		} else {
			for pin := range need {
				if _, isParam := job.paramIdx(pin); isParam {
					continue
				}
				need[pin] = true
			}
		}
		for pin, want := range need {
			if !want {
				continue
			}
			from, ok := producer[PinId{Job: ji, Pin: pin, Output: false}]
			if ok {
				selected[from.Job] = true
			}
		}
	}
	return selected, neededIn, nil
}

// buildPlan runs toposort, selects the jobs reachable from a sink (see
// selectJobs), then assigns one target.Id per logical target (a maximal
// set of selected pins connected through edges and same-job update
// pass-throughs) and merges every selected pin's description into its
// target's accumulated Desc in the hub.
func buildPlan(g *WorkGraph, hub *target.Hub) (*plan, error) {
	order, err := toposort(g)
	if err != nil {
		return nil, err
	}
	selected, neededIn, err := selectJobs(g, order)
	if err != nil {
		return nil, err
	}

	uf := newUnionFind()
	slot := func(j JobIdx, output bool, pin int) int {
		return uf.slot(j, output, pin)
	}
	// Same-job update pass-through: output pin i (an update) is the same
	// logical target as input pin i, for i < NumUpdates, when the job
	// actually needs that input resolved.
	for ji, job := range g.jobs {
		j := JobIdx(ji)
		if !selected[j] {
			continue
		}
		for i := range job.Updates {
			if neededIn[ji][i] {
				uf.union(slot(j, true, i), slot(j, false, i))
			}
		}
	}
	// Edges union a producer's output pin with a consumer's input pin,
	// only when both ends are selected and the consumer actually needs it.
	for _, e := range g.edges {
		if !selected[e.From.Job] || !selected[e.To.Job] {
			continue
		}
		if !neededIn[e.To.Job][e.To.Pin] {
			continue
		}
		if _, isParam := g.jobs[e.To.Job].paramIdx(e.To.Pin); !isParam &&
			g.jobs[e.From.Job].outputPinDesc(e.From.Pin).Kind != g.jobs[e.To.Job].inputPinDesc(e.To.Pin).Kind {
			return nil, errors.New("graph: edge connects pins of different target kinds")
		}
		uf.union(slot(e.From.Job, true, e.From.Pin), slot(e.To.Job, false, e.To.Pin))
	}

	rootTarget := map[int]target.Id{}

	allocID := func(root int, kind target.Kind) target.Id {
		if id, ok := rootTarget[root]; ok {
			return id
		}
		id := hub.Alloc(kind)
		rootTarget[root] = id
		return id
	}

	outputIds := make([][]target.Id, len(g.jobs))
	inputIds := make([][]target.Id, len(g.jobs))
	for ji, job := range g.jobs {
		outputIds[ji] = make([]target.Id, job.NumOutputs())
		inputIds[ji] = make([]target.Id, job.NumInputs())
	}

	var selOrder []JobIdx
	for _, ji := range order {
		if selected[ji] {
			selOrder = append(selOrder, ji)
		}
	}

	// Assign ids and merge descriptions in reverse topological order, so
	// that a sink job's terminal output pins (the end of an update chain,
	// or a plain create with no consumer) mint the target's id before any
	// upstream producer along the same chain is visited. Only selected
	// jobs and only the pins they actually need are ever planned, so a
	// pruned sub-graph never reaches target.Hub.PlanCreate/PlanRead at all.
	for i := len(selOrder) - 1; i >= 0; i-- {
		ji := selOrder[i]
		job := &g.jobs[ji]
		for pin := 0; pin < job.NumOutputs(); pin++ {
			pd := job.outputPinDesc(pin)
			root := uf.find(slot(ji, true, pin))
			id := allocID(root, pd.Kind)
			outputIds[ji][pin] = id
			if err := planOutput(hub, id, pd); err != nil {
				return nil, err
			}
		}
		for pin := 0; pin < job.NumInputs(); pin++ {
			if _, ok := job.paramIdx(pin); ok {
				continue
			}
			if !neededIn[ji][pin] {
				continue
			}
			pd := job.inputPinDesc(pin)
			root := uf.find(slot(ji, false, pin))
			id := allocID(root, pd.Kind)
			inputIds[ji][pin] = id
			if _, isUpdate := job.updateIdxIn(pin); isUpdate {
				continue // already merged via the matching output pin above
			}
			if err := hub.PlanRead(id, target.Desc{Kind: pd.Kind, Usage: pd.Usage, Extent: pd.Extent, Format: pd.Format, Size: pd.Size}); err != nil {
				return nil, err
			}
		}
	}

	for s := range g.sinks {
		if int(s.Job) >= len(outputIds) || s.Pin >= len(outputIds[s.Job]) {
			return nil, errors.New("graph: sink refers to unknown pin")
		}
	}

	return &plan{order: selOrder, hub: hub, outputIds: outputIds, inputIds: inputIds}, nil
}

func planOutput(hub *target.Hub, id target.Id, pd PinDesc) error {
	desc := target.Desc{Kind: pd.Kind, Usage: pd.Usage, Extent: pd.Extent, Format: pd.Format, Size: pd.Size, Label: pd.Name}
	if pd.Kind == target.KindBuffer {
		return hub.PlanCreate(id, desc)
	}
	return hub.PlanCreate(id, desc)
}

// toposort orders jobs so that every edge's producer appears before its
// consumer, using an explicit-stack DFS: white (enqueued) jobs have not
// been visited, gray (pending) jobs are on the current DFS stack, and black
// (deferred) jobs are fully processed and appended to the order. A gray job
// reached again indicates a cycle.
func toposort(g *WorkGraph) ([]JobIdx, error) {
	n := len(g.jobs)
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int8, n)
	succs := buildSuccessors(g)

	var order []JobIdx
	type frame struct {
		job  JobIdx
		next int
	}
	for start := 0; start < n; start++ {
		if color[start] != white {
			continue
		}
		stack := []frame{{JobIdx(start), 0}}
		color[start] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(succs[top.job]) {
				next := succs[top.job][top.next]
				top.next++
				switch color[next] {
				case white:
					color[next] = gray
					stack = append(stack, frame{next, 0})
				case gray:
					return nil, ErrCycle
				}
				continue
			}
			color[top.job] = black
			order = append(order, top.job)
			stack = stack[:len(stack)-1]
		}
	}
	// order was built in post-order (dependency-last); reverse it so
	// producers precede consumers.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order, nil
}

func buildSuccessors(g *WorkGraph) [][]JobIdx {
	succs := make([][]JobIdx, len(g.jobs))
	for _, e := range g.edges {
		succs[e.From.Job] = append(succs[e.From.Job], e.To.Job)
	}
	return succs
}

// unionFind implements disjoint-set union over the synthetic slot space
// used to identify which pins refer to the same logical target.
type unionFind struct {
	ids    map[int64]int
	parent []int
	next   int
}

func newUnionFind() *unionFind {
	return &unionFind{ids: map[int64]int{}}
}

func (u *unionFind) slot(j JobIdx, output bool, pin int) int {
	key := int64(j)<<33 | int64(pin)<<1
	if output {
		key |= 1
	}
	if id, ok := u.ids[key]; ok {
		return id
	}
	id := u.next
	u.next++
	u.ids[key] = id
	u.parent = append(u.parent, id)
	return id
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
