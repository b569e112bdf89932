package cron

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRecoverer struct {
	recovered int
	err       error
	calls     int
}

func (f *fakeRecoverer) RecoverStuckOrders(context.Context) (int, error) {
	f.calls++
	return f.recovered, f.err
}

func TestSagaRecoveryJob(t *testing.T) {
	recoverer := &fakeRecoverer{recovered: 2}
	job, err := NewSagaRecoveryJob(SagaRecoveryJobParams{
		Logger:   testLogger(),
		Checkout: recoverer,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if recoverer.calls != 1 {
		t.Fatalf("expected one recovery call, got %d", recoverer.calls)
	}

	recoverer.err = errors.New("db down")
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error to propagate")
	}
}

type fakeRetentionRepo struct {
	lastCutoff time.Time
	calls      int
	err        error
}

func (f *fakeRetentionRepo) DeletePublishedBefore(cutoff time.Time) (int64, error) {
	f.calls++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return 4, nil
}

func TestOutboxRetentionJobCutoff(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeRetentionRepo{}
	jobIface, err := NewOutboxRetentionJob(OutboxRetentionJobParams{
		Logger:     testLogger(),
		Repository: repo,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	job := jobIface.(*outboxRetentionJob)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	expected := now.Add(-outboxRetentionDays * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expected) {
		t.Fatalf("expected cutoff %s, got %s", expected, repo.lastCutoff)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one delete call, got %d", repo.calls)
	}
}

func TestOutboxRetentionJobPropagatesError(t *testing.T) {
	repo := &fakeRetentionRepo{err: errors.New("boom")}
	jobIface, err := NewOutboxRetentionJob(OutboxRetentionJobParams{
		Logger:     testLogger(),
		Repository: repo,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if err := jobIface.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
