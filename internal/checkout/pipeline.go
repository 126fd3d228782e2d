package checkout

import (
	"context"
	"fmt"
)

// State names the phases of a checkout submission. A submission either
// runs every step to completion or stops at the first failure; there is
// no partial success.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Step is one sequential stage of the checkout: resolving the shipping
// address, verifying the payment reference, pricing, persisting.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline executes steps strictly in order and tracks the submission
// state. Later steps never run once one has failed.
type Pipeline struct {
	state      State
	failedStep string
}

func NewPipeline() *Pipeline {
	return &Pipeline{state: StateEditing}
}

func (p *Pipeline) State() State       { return p.state }
func (p *Pipeline) FailedStep() string { return p.failedStep }

func (p *Pipeline) Run(ctx context.Context, steps ...Step) error {
	p.state = StateSubmitting
	for _, s := range steps {
		if err := s.Run(ctx); err != nil {
			p.state = StateFailed
			p.failedStep = s.Name
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	p.state = StateSucceeded
	return nil
}
