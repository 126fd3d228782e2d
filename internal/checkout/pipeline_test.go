package checkout

import (
	"context"
	"errors"
	"testing"
)

func TestPipelineRunsAllSteps(t *testing.T) {
	p := NewPipeline()
	if p.State() != StateEditing {
		t.Fatalf("initial state = %s, want editing", p.State())
	}

	var ran []string
	step := func(name string) Step {
		return Step{Name: name, Run: func(context.Context) error {
			ran = append(ran, name)
			return nil
		}}
	}

	err := p.Run(context.Background(), step("a"), step("b"), step("c"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if p.State() != StateSucceeded {
		t.Errorf("state = %s, want succeeded", p.State())
	}
	if len(ran) != 3 {
		t.Errorf("ran = %v", ran)
	}
}

func TestPipelineAbortsOnFirstFailure(t *testing.T) {
	p := NewPipeline()

	var ran []string
	boom := errors.New("boom")
	steps := []Step{
		{Name: "resolve-address", Run: func(context.Context) error {
			ran = append(ran, "resolve-address")
			return boom
		}},
		{Name: "verify-payment", Run: func(context.Context) error {
			ran = append(ran, "verify-payment")
			return nil
		}},
		{Name: "persist-order", Run: func(context.Context) error {
			ran = append(ran, "persist-order")
			return nil
		}},
	}

	err := p.Run(context.Background(), steps...)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if p.State() != StateFailed {
		t.Errorf("state = %s, want failed", p.State())
	}
	if p.FailedStep() != "resolve-address" {
		t.Errorf("failed step = %s", p.FailedStep())
	}
	if len(ran) != 1 {
		t.Errorf("later steps ran after failure: %v", ran)
	}
}
