package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// sessionCloser is the slice of the session service the job needs.
type sessionCloser interface {
	CloseStale(ctx context.Context, maxAge time.Duration) (int, error)
}

// StaleSessionJob periodically ends scan sessions left active longer than
// maxAge, covering the operator who forgets to stop scanning.
type StaleSessionJob struct {
	sessions sessionCloser
	maxAge   time.Duration
	interval time.Duration
	done     chan struct{}
}

func NewStaleSessionJob(sessions sessionCloser, maxAge, interval time.Duration) *StaleSessionJob {
	return &StaleSessionJob{
		sessions: sessions,
		maxAge:   maxAge,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *StaleSessionJob) Start() {
	go j.run()
	log.Info().
		Dur("interval", j.interval).
		Dur("maxAge", j.maxAge).
		Msg("stale session job started")
}

func (j *StaleSessionJob) Stop() {
	close(j.done)
	log.Info().Msg("stale session job stopped")
}

func (j *StaleSessionJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep()

	for {
		select {
		case <-j.done:
			return
		case <-ticker.C:
			j.sweep()
		}
	}
}

func (j *StaleSessionJob) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.sessions.CloseStale(ctx, j.maxAge)
	if err != nil {
		log.Error().Err(err).Msg("failed to close stale sessions")
	} else if count > 0 {
		log.Info().Int("count", count).Msg("closed stale sessions")
	}
}
