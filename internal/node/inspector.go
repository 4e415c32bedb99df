package node

// Inspector is handed to Node.Inspect so the node can describe its inputs.
type Inspector interface {
	// NumOutputSamples is the number of samples the node must produce this
	// frame. It is false for sinks, which have no outputs.
	NumOutputSamples() (int, bool)

	// DeclareInput starts an input declaration. The declaration takes
	// effect on Finish.
	DeclareInput(src Port) InputDecl
}

// Declarer receives finished input declarations. Schedulers implement it;
// nodes never call it directly.
type Declarer interface {
	// Declare records that the current node reads numSamples samples from
	// src. numSamples is zero when the node did not specify a count and has
	// no output count to default to.
	Declare(src Port, numSamples int)
}

// InputDecl is a builder for a single input declaration:
//
//	in.DeclareInput(src).NumSamples(256).Finish()
//
// NumSamples may be omitted when the inspector reports an output sample
// count, which is then used.
type InputDecl struct {
	to         Declarer
	src        Port
	numSamples int
}

// NewInputDecl starts a declaration that reports to to. defaultSamples is
// the count used when NumSamples is not called, zero for none.
func NewInputDecl(to Declarer, src Port, defaultSamples int) InputDecl {
	return InputDecl{to: to, src: src, numSamples: defaultSamples}
}

// NumSamples sets how many samples the node consumes from the input. It must
// not be zero.
func (d InputDecl) NumSamples(n int) InputDecl {
	d.numSamples = n
	return d
}

// Finish submits the declaration.
func (d InputDecl) Finish() {
	d.to.Declare(d.src, d.numSamples)
}
