package rill

// Terminal is the single completion-or-failure event that ends a stream.
//
// The zero value is a normal completion.
type Terminal struct {
	// Err is nil for a normal completion,
	// and otherwise the opaque error that ended the stream.
	Err error
}

// Completed returns the terminal event for a normal end of stream.
func Completed() Terminal {
	return Terminal{}
}

// Failed returns the terminal event for a stream ended by err.
// Passing a nil error is a bug and causes a panic.
func Failed(err error) Terminal {
	if err == nil {
		panic("BUG: Failed called with nil error")
	}
	return Terminal{Err: err}
}

// IsFailed reports whether t carries an error.
func (t Terminal) IsFailed() bool {
	return t.Err != nil
}

func (t Terminal) String() string {
	if t.Err == nil {
		return "completed"
	}
	return "failed: " + t.Err.Error()
}
