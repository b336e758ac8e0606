package ui

import (
	"bytes"
	"testing"
)

func TestPipelinePhases(t *testing.T) {
	p := NewPipelineWithOutput(DefaultPhases, &bytes.Buffer{})
	p.Disable()

	for _, want := range DefaultPhases {
		bar := p.NextPhase(3)
		if bar == nil {
			t.Fatalf("NextPhase returned nil before %s", want)
		}
		if bar.Phase() != want {
			t.Errorf("Phase() = %s, expected %s", bar.Phase(), want)
		}
		bar.Increment()
		bar.Increment()
		if bar.Current() != 2 {
			t.Errorf("%s: Current() = %d, expected 2", want, bar.Current())
		}
	}

	if bar := p.NextPhase(1); bar != nil {
		t.Error("NextPhase should return nil after the last phase")
	}
	p.Finish()
}

func TestDisabledPipelineWritesNothing(t *testing.T) {
	var out bytes.Buffer
	p := NewPipelineWithOutput([]Phase{PhaseParsing}, &out)
	p.Disable()

	bar := p.NextPhase(10)
	bar.SetTotal(20)
	bar.Describe("Order.java")
	bar.Increment()
	p.PrintSummary("done")
	p.Finish()

	if out.Len() != 0 {
		t.Errorf("disabled pipeline wrote %q", out.String())
	}
}
