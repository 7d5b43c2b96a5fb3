package application

import (
	"context"
	"sync"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"go.uber.org/zap"
)

const (
	auditQueueSize   = 256
	auditAttempts    = 3
	auditRetryDelay  = 250 * time.Millisecond
	auditSaveTimeout = 5 * time.Second
)

// AuditTrail persists navigation records in the background through a bounded
// queue. Enqueueing never blocks the request path: a full queue drops the
// record with a warning, and persistence failures retry a fixed number of
// times before the record is dropped and logged.
type AuditTrail struct {
	repo   navigation.RecordRepository
	logger *zap.Logger
	queue  chan *navigation.Record
	wg     sync.WaitGroup
}

// NewAuditTrail creates an AuditTrail and starts its worker.
func NewAuditTrail(repo navigation.RecordRepository, log *zap.Logger) *AuditTrail {
	a := &AuditTrail{
		repo:   repo,
		logger: log,
		queue:  make(chan *navigation.Record, auditQueueSize),
	}
	a.wg.Add(1)
	go a.run()
	return a
}

// Record queues a record for persistence without blocking.
func (a *AuditTrail) Record(record *navigation.Record) {
	select {
	case a.queue <- record:
	default:
		a.logger.Warn("audit queue full, dropping record",
			zap.String("record_id", record.ID().String()),
		)
	}
}

// Close drains the queue and stops the worker.
func (a *AuditTrail) Close() {
	close(a.queue)
	a.wg.Wait()
}

func (a *AuditTrail) run() {
	defer a.wg.Done()
	for record := range a.queue {
		a.persist(record)
	}
}

func (a *AuditTrail) persist(record *navigation.Record) {
	var err error
	for attempt := 1; attempt <= auditAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), auditSaveTimeout)
		err = a.repo.Save(ctx, record)
		cancel()
		if err == nil {
			return
		}
		if attempt < auditAttempts {
			time.Sleep(auditRetryDelay)
		}
	}
	a.logger.Error("failed to persist navigation record, dropping",
		zap.String("record_id", record.ID().String()),
		zap.Int("attempts", auditAttempts),
		zap.Error(err),
	)
}
