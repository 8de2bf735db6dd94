package commands

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/maksimkurb/hostfile/src/internal/log"
)

func fastRunner(name string, maxRestarts int, run func(ctx context.Context) error) *RestartableRunner {
	return NewRestartableRunner(RunnerConfig{
		Name:           name,
		MaxRestarts:    maxRestarts,
		RestartBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
	}, run)
}

func waitDone(t *testing.T, r *RestartableRunner) {
	t.Helper()
	select {
	case <-r.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not finish")
	}
}

func TestRestartableRunnerRestartsOnError(t *testing.T) {
	log.DisableLogs()
	defer log.EnableLogs()

	var calls atomic.Int32
	r := fastRunner("failing", 0, func(ctx context.Context) error {
		if calls.Add(1) < 3 {
			return stderrors.New("boom")
		}
		return nil
	})

	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, r)

	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	status := r.Status()
	if status.RestartCount != 2 || status.Running || status.LastError != nil {
		t.Errorf("unexpected status %+v", status)
	}
}

func TestRestartableRunnerRecoversPanics(t *testing.T) {
	log.DisableLogs()
	defer log.EnableLogs()

	r := fastRunner("panicky", 2, func(ctx context.Context) error {
		panic("boom")
	})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	waitDone(t, r)

	status := r.Status()
	if status.RestartCount != 2 {
		t.Errorf("restart count = %d, want 2", status.RestartCount)
	}
	if status.LastError == nil || status.LastError.Error() != "panic: boom" {
		t.Errorf("last error = %v", status.LastError)
	}
}

func TestRestartableRunnerStop(t *testing.T) {
	log.DisableLogs()
	defer log.EnableLogs()

	r := fastRunner("blocking", 0, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := r.Start(context.Background()); err == nil {
		t.Error("second Start should fail")
	}

	if err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if r.Status().Running {
		t.Error("runner still running after Stop")
	}
	if r.Status().RestartCount != 0 {
		t.Error("cancellation must not count as a crash")
	}
	if err := r.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
}

func TestRunUntilDone(t *testing.T) {
	startErr := stderrors.New("address in use")
	err := runUntilDone(context.Background(), func() error { return startErr }, func(context.Context) error { return nil })
	if !stderrors.Is(err, startErr) {
		t.Errorf("err = %v, want %v", err, startErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	stopped := false
	go cancel()
	err = runUntilDone(ctx,
		func() error { <-release; return nil },
		func(context.Context) error { stopped = true; close(release); return nil },
	)
	if err != nil || !stopped {
		t.Errorf("err = %v stopped = %v", err, stopped)
	}
}
