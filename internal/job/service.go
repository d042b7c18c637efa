package job

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/mediafetch/internal/config"
	"github.com/ytget/mediafetch/internal/fetch"
	"github.com/ytget/mediafetch/internal/model"
	"github.com/ytget/mediafetch/internal/registry"
	"github.com/ytget/mediafetch/internal/tagger"
)

// Request is one submit call: fetch the target URL as format/quality
// into the destination named by Location. IsCollection groups a
// multi-item batch under a shared collection name.
type Request struct {
	URL          string
	Format       string
	Quality      string
	Location     string
	IsCollection bool
}

// Service is the only entry point that creates job records and starts
// orchestration. Submit never blocks on the download pipeline; Status
// serves pollers from the registry.
type Service struct {
	cfg     *config.Config
	reg     *registry.Registry
	engine  fetch.Engine
	tagger  tagger.Tagger
	sweeper *Sweeper
	log     *zap.Logger

	// ctx bounds every orchestrator the service spawns; canceled on
	// shutdown.
	ctx context.Context

	// slots bounds concurrently running orchestrators. A job over the
	// bound stays pending until a slot frees.
	slots chan struct{}
}

// NewService wires the job pipeline together
func NewService(ctx context.Context, cfg *config.Config, reg *registry.Registry, engine fetch.Engine, tg tagger.Tagger, log *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		reg:     reg,
		engine:  engine,
		tagger:  tg,
		sweeper: NewSweeper(reg, cfg.Retention.Delay, log),
		log:     log,
		ctx:     ctx,
		slots:   make(chan struct{}, cfg.Downloads.MaxConcurrentJobs),
	}
}

// Submit validates the request, registers a job record, and starts the
// orchestrator in the background. It always returns a job id: a failed
// validation yields an immediately-terminal error job so the caller
// learns about it through the same polling contract as runtime errors.
func (s *Service) Submit(req Request) string {
	job := model.NewJob(uuid.NewString())

	spec, err := s.validate(req)
	if err != nil {
		job.Status = model.JobStatusError
		job.Error = err.Error()
		s.reg.Put(job)
		s.sweeper.Schedule(job.ID)
		s.log.Warn("job rejected",
			zap.String("job_id", job.ID),
			zap.String("url", req.URL),
			zap.Error(err))
		return job.ID
	}

	s.reg.Put(job)
	s.log.Info("job accepted",
		zap.String("job_id", job.ID),
		zap.String("url", spec.url),
		zap.String("format", spec.format),
		zap.String("quality", spec.quality))

	go s.run(s.ctx, job.ID, spec)

	return job.ID
}

// Status returns a snapshot of the job, or registry.ErrNotFound for an
// unknown or expired id
func (s *Service) Status(id string) (*model.Job, error) {
	return s.reg.Get(id)
}
