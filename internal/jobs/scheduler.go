package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RunTimeout limita cada execução de uma varredura.
const RunTimeout = time.Minute

// Job é uma varredura periódica; devolve quantos itens processou.
type Job interface {
	Execute(ctx context.Context) (int, error)
}

type JobFunc func(ctx context.Context) (int, error)

func (f JobFunc) Execute(ctx context.Context) (int, error) {
	return f(ctx)
}

type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewScheduler(loc *time.Location, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	cl := cronLogger{sugar: logger.Sugar()}

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger: logger,
	}
}

// Add registra a varredura com uma especificação cron ("@every 5m",
// "*/10 * * * *").
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.run(name, job) }); err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop para de agendar e espera as execuções em curso ou o fim do ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), RunTimeout)
	defer cancel()

	start := time.Now()
	n, err := job.Execute(ctx)
	if err != nil {
		s.logger.Error("job failed", zap.String("job", name), zap.Error(err))
		return
	}

	s.logger.Debug("job finished",
		zap.String("job", name),
		zap.Int("processed", n),
		zap.Duration("took", time.Since(start)),
	)
}

// --------------------------------------------------
// cron.Logger sobre zap
// --------------------------------------------------

type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
