package rtest

import (
	"testing"
	"time"
)

// ScheduleTimeout is how long the Soon helpers wait
// before failing the test.
const ScheduleTimeout = time.Second

// ShortWait is a brief pause used to assert that something does not happen.
const ShortWait = 10 * time.Millisecond

// SendSoon sends v on ch, failing the test if the send blocks
// for longer than [ScheduleTimeout].
func SendSoon[T any](t testing.TB, ch chan<- T, v T) {
	t.Helper()

	select {
	case ch <- v:
		return
	case <-time.After(ScheduleTimeout):
		t.Fatalf("send did not complete within %s", ScheduleTimeout)
	}
}

// ReceiveSoon returns the next value from ch, failing the test
// if no value arrives within [ScheduleTimeout].
func ReceiveSoon[T any](t testing.TB, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(ScheduleTimeout):
		t.Fatalf("no value received within %s", ScheduleTimeout)
	}

	panic("unreachable")
}

// IsSending asserts that ch is immediately ready to receive from,
// which includes being closed.
func IsSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
		return
	default:
		t.Fatal("channel was not ready to receive")
	}
}

// NotSending asserts that ch stays blocked for [ShortWait].
func NotSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
		t.Fatal("channel unexpectedly ready to receive")
	case <-time.After(ShortWait):
		return
	}
}
