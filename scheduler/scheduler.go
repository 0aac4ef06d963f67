package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/color-palette/api/datastore"
	"github.com/color-palette/api/telemetry"
)

// Sweeper periodically deletes expired history sessions.
type Sweeper struct {
	HistoryRepo datastore.HistoryRepository
	Metrics     telemetry.Recorder
	Interval    time.Duration

	now      func() time.Time
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewSweeper(repo datastore.HistoryRepository, metrics telemetry.Recorder, interval time.Duration) *Sweeper {
	if metrics == nil {
		metrics = telemetry.NoOpRecorder{}
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		HistoryRepo: repo,
		Metrics:     metrics,
		Interval:    interval,
		now:         time.Now,
		done:        make(chan struct{}),
	}
}

// Start sweeps once right away and then every Interval until Stop.
func (s *Sweeper) Start() {
	log.Printf("History sweeper started. Sweeping every %v", s.Interval)
	s.Sweep()

	s.ticker = time.NewTicker(s.Interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.ticker.C:
				s.Sweep()
			case <-s.done:
				return
			}
		}
	}()
}

// Stop halts the sweeper and waits for an in-flight sweep to finish. It is
// safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
		s.wg.Wait()
		log.Println("History sweeper stopped")
	})
}

// Sweep deletes every session whose expiry has passed.
func (s *Sweeper) Sweep() (int64, error) {
	n, err := s.HistoryRepo.DeleteExpired(s.now())
	if err != nil {
		log.Printf("Error sweeping expired history sessions: %v", err)
		return 0, err
	}
	if n > 0 {
		log.Printf("Removed %d expired history sessions", n)
		s.Metrics.RecordSwept(context.Background(), n)
	}
	return n, nil
}
