package testutil

import (
	"github.com/vk/framegraph/internal/node"
)

// Source is a node without inputs that fills each of its outputs with Value.
// When Silent is set it reports silence and writes nothing.
type Source struct {
	Outputs int
	Value   float32
	Silent  bool
	Renders int
}

// NewSource returns a single-output Source.
func NewSource(value float32) *Source {
	return &Source{Outputs: 1, Value: value}
}

func (s *Source) NumOutputs() int        { return s.Outputs }
func (s *Source) Inspect(node.Inspector) {}

func (s *Source) Render(outputs [][]float32, _ node.RenderContext) bool {
	s.Renders++
	if s.Silent {
		return false
	}
	for _, out := range outputs {
		for i := range out {
			out[i] = s.Value
		}
	}
	return true
}

// Through sums its inputs and writes the result, scaled by Gain, to each of
// its outputs. Samples overrides the sample count declared on every input;
// zero means the node's own output count.
type Through struct {
	Inputs  []node.Port
	Outputs int
	Samples int
	Gain    float32
	Renders int
}

// NewThrough returns a single-output, unity-gain Through reading from inputs.
func NewThrough(inputs ...node.Port) *Through {
	return &Through{Inputs: inputs, Outputs: 1, Gain: 1}
}

func (t *Through) NumOutputs() int { return t.Outputs }

// Connect replaces the inputs.
func (t *Through) Connect(inputs []node.Port) error {
	t.Inputs = inputs
	return nil
}

func (t *Through) Inspect(in node.Inspector) {
	for _, p := range t.Inputs {
		d := in.DeclareInput(p)
		if t.Samples > 0 {
			d = d.NumSamples(t.Samples)
		}
		d.Finish()
	}
}

func (t *Through) Render(outputs [][]float32, rc node.RenderContext) bool {
	t.Renders++
	for _, out := range outputs {
		clear(out)
	}
	active := false
	for _, p := range t.Inputs {
		h, ok := rc.Input(p)
		if !ok || !h.IsActive() {
			continue
		}
		active = true
		samples := h.Samples()
		for _, out := range outputs {
			for i := range out {
				if i < len(samples) {
					out[i] += samples[i] * t.Gain
				}
			}
		}
	}
	return active
}

// Sink is a node without outputs that reads Samples samples from each input
// and records what it saw. With PeekOnly it only checks IsActive and never
// touches the samples.
type Sink struct {
	Inputs   []node.Port
	Samples  int
	PeekOnly bool

	Renders int
	Missing int
	Active  []bool
	Got     [][]float32
}

// NewSink returns a Sink demanding samples from every input.
func NewSink(samples int, inputs ...node.Port) *Sink {
	return &Sink{Inputs: inputs, Samples: samples}
}

func (s *Sink) NumOutputs() int { return 0 }

// Connect replaces the inputs.
func (s *Sink) Connect(inputs []node.Port) error {
	s.Inputs = inputs
	return nil
}

func (s *Sink) Inspect(in node.Inspector) {
	for _, p := range s.Inputs {
		d := in.DeclareInput(p)
		if s.Samples > 0 {
			d = d.NumSamples(s.Samples)
		}
		d.Finish()
	}
}

func (s *Sink) Render(_ [][]float32, rc node.RenderContext) bool {
	s.Renders++
	s.Active = s.Active[:0]
	s.Got = s.Got[:0]
	for _, p := range s.Inputs {
		h, ok := rc.Input(p)
		if !ok {
			s.Missing++
			continue
		}
		s.Active = append(s.Active, h.IsActive())
		if s.PeekOnly {
			continue
		}
		s.Got = append(s.Got, append([]float32(nil), h.Samples()...))
	}
	return false
}

// Snooper is a sink that calls Input on ports it never declared.
type Snooper struct {
	Declared []node.Port
	Samples  int
	Reads    []node.Port
	Found    []bool
}

func (p *Snooper) NumOutputs() int { return 0 }

func (p *Snooper) Inspect(in node.Inspector) {
	for _, src := range p.Declared {
		in.DeclareInput(src).NumSamples(p.Samples).Finish()
	}
}

func (p *Snooper) Render(_ [][]float32, rc node.RenderContext) bool {
	p.Found = p.Found[:0]
	for _, src := range p.Reads {
		_, ok := rc.Input(src)
		p.Found = append(p.Found, ok)
	}
	return false
}

// Panicker declares its inputs like Through and panics when rendered.
type Panicker struct {
	Through
	Message string
}

func (p *Panicker) Render([][]float32, node.RenderContext) bool {
	panic(p.Message)
}

// Flaky inspects like Through. While Broken is set, the second Inspect of
// each pass (the one after its inputs were explored) misbehaves: it panics
// with Panic when that is set, or declares LeaveInputs instead.
type Flaky struct {
	Through
	Broken      bool
	Panic       string
	LeaveInputs []node.Port

	calls int
}

func (f *Flaky) Inspect(in node.Inspector) {
	f.calls++
	if !f.Broken || f.calls%2 == 1 {
		f.Through.Inspect(in)
		return
	}
	if f.Panic != "" {
		panic(f.Panic)
	}
	for _, p := range f.LeaveInputs {
		in.DeclareInput(p).Finish()
	}
}
