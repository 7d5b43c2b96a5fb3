package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRecordRepository struct {
	mu    sync.Mutex
	fn    func(ctx context.Context, record *navigation.Record) error
	calls int
	saved []*navigation.Record
}

func (s *stubRecordRepository) Save(ctx context.Context, record *navigation.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if err := s.fn(ctx, record); err != nil {
		return err
	}
	s.saved = append(s.saved, record)
	return nil
}

func (s *stubRecordRepository) snapshot() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, len(s.saved)
}

func testRecord() *navigation.Record {
	return navigation.NewRecord(
		"esp32-1",
		navigation.Coordinate{Lat: 23.7809, Lng: 90.2792},
		nil,
		"take me to the station",
		"en-US",
		"",
		"Central Station",
		&navigation.Coordinate{Lat: 23.81, Lng: 90.41},
	)
}

func TestAuditTrail_SavesQueuedRecords(t *testing.T) {
	repo := &stubRecordRepository{fn: func(context.Context, *navigation.Record) error {
		return nil
	}}
	trail := NewAuditTrail(repo, zap.NewNop())

	first := testRecord()
	second := testRecord()
	trail.Record(first)
	trail.Record(second)
	trail.Close()

	calls, saved := repo.snapshot()
	assert.Equal(t, 2, calls)
	require.Equal(t, 2, saved)
	assert.Equal(t, first.ID(), repo.saved[0].ID())
	assert.Equal(t, second.ID(), repo.saved[1].ID())
}

func TestAuditTrail_RetriesThenSucceeds(t *testing.T) {
	failures := 2
	repo := &stubRecordRepository{}
	repo.fn = func(context.Context, *navigation.Record) error {
		if repo.calls <= failures {
			return errors.New("connection reset")
		}
		return nil
	}
	trail := NewAuditTrail(repo, zap.NewNop())

	trail.Record(testRecord())
	trail.Close()

	calls, saved := repo.snapshot()
	assert.Equal(t, 3, calls)
	assert.Equal(t, 1, saved)
}

func TestAuditTrail_DropsAfterExhaustedRetries(t *testing.T) {
	repo := &stubRecordRepository{fn: func(context.Context, *navigation.Record) error {
		return errors.New("database unavailable")
	}}
	trail := NewAuditTrail(repo, zap.NewNop())

	trail.Record(testRecord())
	trail.Record(testRecord())
	trail.Close()

	// Each record exhausts its attempts and is dropped; the worker moves on.
	calls, saved := repo.snapshot()
	assert.Equal(t, 6, calls)
	assert.Equal(t, 0, saved)
}

func TestAuditTrail_CloseDrainsQueue(t *testing.T) {
	repo := &stubRecordRepository{fn: func(context.Context, *navigation.Record) error {
		return nil
	}}
	trail := NewAuditTrail(repo, zap.NewNop())

	for i := 0; i < 20; i++ {
		trail.Record(testRecord())
	}
	trail.Close()

	_, saved := repo.snapshot()
	assert.Equal(t, 20, saved)
}
