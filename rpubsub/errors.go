package rpubsub

import "github.com/gordian-engine/rill"

// TerminatedError is returned from [*Subject.Send], [*Subject.Complete],
// and [*Subject.Fail] once the subject has already ended.
type TerminatedError struct {
	Terminal rill.Terminal
}

func (e TerminatedError) Error() string {
	return "subject already terminated (" + e.Terminal.String() + ")"
}
