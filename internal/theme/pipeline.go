package theme

import "sort"

// Stage names one point in the theme lifecycle.
type Stage string

const (
	StageSetup          Stage = "setup"
	StageWidgetsInit    Stage = "widgets_init"
	StageEnqueueScripts Stage = "enqueue_scripts"
	StageHead           Stage = "head"
	StageBodyClass      Stage = "body_class"
)

// DefaultPriority is used by Add.
const DefaultPriority = 10

type step[T any] struct {
	stage    Stage
	priority int
	seq      int
	handler  func(T)
}

// Pipeline is an explicit list of handlers per stage. Handlers of a stage run
// by ascending priority, then in the order they were added.
type Pipeline[T any] struct {
	steps []step[T]
}

// Add appends a handler at DefaultPriority.
func (p *Pipeline[T]) Add(stage Stage, handler func(T)) {
	p.AddAt(stage, DefaultPriority, handler)
}

func (p *Pipeline[T]) AddAt(stage Stage, priority int, handler func(T)) {
	p.steps = append(p.steps, step[T]{stage: stage, priority: priority, seq: len(p.steps), handler: handler})
}

// Run evaluates the handlers of one stage against v.
func (p *Pipeline[T]) Run(stage Stage, v T) {
	var steps []step[T]
	for _, s := range p.steps {
		if s.stage == stage {
			steps = append(steps, s)
		}
	}
	sort.SliceStable(steps, func(i, j int) bool {
		if steps[i].priority != steps[j].priority {
			return steps[i].priority < steps[j].priority
		}
		return steps[i].seq < steps[j].seq
	})
	for _, s := range steps {
		s.handler(v)
	}
}

// RunAll runs each stage in the given order.
func (p *Pipeline[T]) RunAll(v T, stages ...Stage) {
	for _, st := range stages {
		p.Run(st, v)
	}
}
