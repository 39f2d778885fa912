package utils

import (
	"errors"
	"testing"
	"time"
)

func TestSafeGo_RunsFunction(t *testing.T) {
	logger, _ := newTestLogger(t)

	done := make(chan struct{})
	SafeGo(logger, "work", func() {
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("function never ran")
	}
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	logger, path := newTestLogger(t)

	SafeGo(logger, "boom", func() {
		panic("kaboom")
	})

	waitForLog(t, path, "Panic recovered in boom")
}

func TestSafeGoWithError_ReportsError(t *testing.T) {
	logger, path := newTestLogger(t)

	errs := make(chan error, 1)
	SafeGoWithError(logger, "failing", func() error {
		return errors.New("disk full")
	}, func(err error) {
		errs <- err
	})

	select {
	case err := <-errs:
		if err.Error() != "disk full" {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("onError never called")
	}
	waitForLog(t, path, "Error in failing")
}
