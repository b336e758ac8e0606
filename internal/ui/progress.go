package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Phase represents a stage in the analysis pipeline
type Phase string

const (
	PhaseScanning   Phase = "Scanning"
	PhaseParsing    Phase = "Parsing"
	PhaseResolving  Phase = "Resolving"
	PhaseGenerating Phase = "Generating"
)

// DefaultPhases is the rest-recon pipeline in execution order
var DefaultPhases = []Phase{PhaseScanning, PhaseParsing, PhaseResolving, PhaseGenerating}

// ProgressBar wraps the progressbar library with our custom styling
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase Phase
}

func newBar(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(true),
	)
	return &ProgressBar{bar: bar, phase: phase}
}

// discardBar renders nothing but still counts
func discardBar(phase Phase, total int) *ProgressBar {
	return &ProgressBar{
		bar:   progressbar.NewOptions(total, progressbar.OptionSetWriter(io.Discard)),
		phase: phase,
	}
}

// Phase returns the pipeline phase of the bar
func (pb *ProgressBar) Phase() Phase {
	return pb.phase
}

// Increment increments the progress bar by 1.
// Render errors are ignored; progress output is best effort.
func (pb *ProgressBar) Increment() {
	_ = pb.bar.Add(1)
}

// SetTotal updates the total count of the progress bar
func (pb *ProgressBar) SetTotal(total int) {
	pb.bar.ChangeMax(total)
}

// Current returns the number of increments so far
func (pb *ProgressBar) Current() int {
	return int(pb.bar.State().CurrentNum)
}

// Describe updates the description of the progress bar
func (pb *ProgressBar) Describe(description string) {
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, description))
}

// Finish completes the progress bar
func (pb *ProgressBar) Finish() {
	_ = pb.bar.Finish()
}

// Pipeline tracks progress through consecutive phases, one bar at a time
type Pipeline struct {
	phases   []Phase
	current  int
	bar      *ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipeline creates a pipeline writing to stdout
func NewPipeline(phases []Phase) *Pipeline {
	return NewPipelineWithOutput(phases, os.Stdout)
}

// NewPipelineWithOutput creates a pipeline with custom output
func NewPipelineWithOutput(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{
		phases:  phases,
		current: -1,
		output:  output,
	}
}

// Disable turns rendering off; bars keep counting
func (p *Pipeline) Disable() {
	p.disabled = true
}

// NextPhase finishes the running phase and starts the next one.
// It returns nil once every phase has run.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	p.Finish()

	p.current++
	if p.current >= len(p.phases) {
		p.bar = nil
		return nil
	}

	phase := p.phases[p.current]
	if p.disabled {
		p.bar = discardBar(phase, total)
	} else {
		p.bar = newBar(phase, total, p.output)
	}
	return p.bar
}

// Finish completes the running phase, if any
func (p *Pipeline) Finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}

// PrintSummary prints a line below the bars
func (p *Pipeline) PrintSummary(message string) {
	if !p.disabled {
		fmt.Fprintln(p.output, message)
	}
}
