package model

// RecordFailure is a per-record script invocation that raised an error.
type RecordFailure struct {
	Entity Entity
	Err    error
}

// PhaseReport summarises one update phase over one scene.
type PhaseReport struct {
	Scene    string
	Phase    int
	Records  int
	Skipped  int
	Failures []RecordFailure
}

// RecordDump is a printable snapshot of one component on one entity.
type RecordDump struct {
	Entity Entity
	Type   string
	Value  any
}

// Path represents a file system path.
type Path string

// Inspection is the outcome of resolving one display trace.
type Inspection struct {
	Trace     string
	Kind      string
	Component int
	Value     string
	Err       error
}

// TypeInfo describes one registered component type.
type TypeInfo struct {
	Name     string
	FullName string
	Kind     string
	Fields   []string
}
