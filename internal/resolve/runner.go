package resolve

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pitchside/playerfacts/internal/model"
	"github.com/pitchside/playerfacts/internal/store"
	"github.com/pitchside/playerfacts/internal/strategy"
)

// Summary reports the outcome of one batch run.
type Summary struct {
	RunID     string `json:"run_id"`
	Processed int    `json:"processed"`
	Resolved  int    `json:"resolved"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
}

// Runner resolves facts for batches of players, strictly in input order.
// A per-player failure is recorded in the audit log and the batch moves
// on; only context cancellation aborts the run.
type Runner struct {
	store   store.Store
	dir     *strategy.Directory
	limiter *rate.Limiter
	runID   string
	log     *zap.Logger
}

// NewRunner creates a Runner with a fresh run ID. delay is the pause
// between players, spreading load across the scraped sites.
func NewRunner(st store.Store, dir *strategy.Directory, delay time.Duration) *Runner {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	runID := uuid.New().String()
	return &Runner{
		store:   st,
		dir:     dir,
		limiter: rate.NewLimiter(limit, 1),
		runID:   runID,
		log:     zap.L().With(zap.String("run_id", runID)),
	}
}

// RunID returns the identifier stamped on this run's audit entries.
func (r *Runner) RunID() string { return r.runID }

// RunSchool resolves the high school fact for each player in order.
func (r *Runner) RunSchool(ctx context.Context, players []model.Player) (Summary, error) {
	return r.run(ctx, players, r.resolveSchool)
}

// RunBio fills the biographical facts for each player in order.
func (r *Runner) RunBio(ctx context.Context, players []model.Player) (Summary, error) {
	return r.run(ctx, players, r.resolveBio)
}

func (r *Runner) run(ctx context.Context, players []model.Player, resolveOne func(context.Context, model.Player) (model.Outcome, error)) (Summary, error) {
	sum := Summary{RunID: r.runID}

	for _, p := range players {
		if err := ctx.Err(); err != nil {
			return sum, eris.Wrap(err, "resolve: run aborted")
		}
		if err := r.limiter.Wait(ctx); err != nil {
			return sum, eris.Wrap(err, "resolve: rate limiter wait")
		}

		sum.Processed++
		outcome, err := resolveOne(ctx, p)
		if err != nil {
			if ctx.Err() != nil {
				return sum, eris.Wrap(err, "resolve: run aborted")
			}
			sum.Failed++
			r.log.Warn("player failed, continuing batch",
				zap.String("player", p.Key().String()),
				zap.Error(err),
			)
			continue
		}

		switch outcome {
		case model.OutcomeSaved:
			sum.Resolved++
		case model.OutcomeSkipped:
			sum.Skipped++
		}
	}

	r.log.Info("batch complete",
		zap.Int("processed", sum.Processed),
		zap.Int("resolved", sum.Resolved),
		zap.Int("skipped", sum.Skipped),
		zap.Int("failed", sum.Failed),
	)
	return sum, nil
}

const (
	sourceSchoolResolver = "school_resolver"
	sourceBioResolver    = "bio_resolver"
)

func (r *Runner) resolveSchool(ctx context.Context, p model.Player) (model.Outcome, error) {
	c, err := r.dir.Resolve(ctx, p, model.FactSchool)
	if err != nil {
		r.audit(ctx, sourceSchoolResolver, p, "", model.AuditError, 0, err)
		return model.OutcomeFailed, err
	}

	if c == nil {
		r.audit(ctx, sourceSchoolResolver, p, "", model.AuditWarning, 0, nil)
		return model.OutcomeSkipped, nil
	}

	current, err := r.store.GetPlayer(ctx, p.Key())
	if err != nil {
		r.audit(ctx, c.Strategy, p, c.SourceURL, model.AuditError, 0, err)
		return model.OutcomeFailed, err
	}

	if ApplySchool(current, c) {
		if err := r.store.SetSchool(ctx, p.Key(), *c); err != nil {
			r.audit(ctx, c.Strategy, p, c.SourceURL, model.AuditError, 0, err)
			return model.OutcomeFailed, err
		}
	}

	r.audit(ctx, c.Strategy, p, c.SourceURL, model.AuditSuccess, 1, nil)
	return model.OutcomeSaved, nil
}

func (r *Runner) resolveBio(ctx context.Context, p model.Player) (model.Outcome, error) {
	bio, err := r.dir.ResolveBio(ctx, p)
	if err != nil {
		r.audit(ctx, sourceBioResolver, p, "", model.AuditError, 0, err)
		return model.OutcomeFailed, err
	}

	if bio.Empty() {
		r.audit(ctx, sourceBioResolver, p, "", model.AuditWarning, 0, nil)
		return model.OutcomeSkipped, nil
	}

	current, err := r.store.GetPlayer(ctx, p.Key())
	if err != nil {
		r.audit(ctx, sourceBioResolver, p, bio.SourceURL, model.AuditError, 0, err)
		return model.OutcomeFailed, err
	}

	if ApplyBio(current, bio) {
		if err := r.store.FillBio(ctx, p.Key(), bio); err != nil {
			r.audit(ctx, sourceBioResolver, p, bio.SourceURL, model.AuditError, 0, err)
			return model.OutcomeFailed, err
		}
	}

	r.audit(ctx, sourceBioResolver, p, bio.SourceURL, model.AuditSuccess, 1, nil)
	return model.OutcomeSaved, nil
}

// audit appends one entry. A failed append is logged and the player
// outcome stands.
func (r *Runner) audit(ctx context.Context, source string, p model.Player, url string, status model.AuditStatus, records int, cause error) {
	entry := model.AuditEntry{
		RunID:     r.runID,
		Source:    source,
		PlayerKey: p.Key().String(),
		URL:       url,
		Status:    status,
		Records:   records,
		ScrapedAt: time.Now().UTC(),
	}
	if cause != nil {
		entry.Error = cause.Error()
	}
	if err := r.store.AppendAudit(ctx, entry); err != nil {
		r.log.Warn("audit append failed",
			zap.String("player", entry.PlayerKey),
			zap.Error(err),
		)
	}
}
