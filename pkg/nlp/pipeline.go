package nlp

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"nexmind-be/internal/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

const (
	// remoteTimeout bounds the LLM call; past it the local classifier takes
	// over and the user never waits on the network.
	remoteTimeout = 15 * time.Second

	cacheTTL     = 30 * time.Minute
	cacheCleanup = 10 * time.Minute
)

// Pipeline is the two-stage classification strategy: a remote classifier
// tried first under a hard timeout, and a deterministic local classifier
// that handles every remote failure. Both stages implement Classifier.
type Pipeline struct {
	remote Classifier // nil when no LLM is configured
	local  Classifier
	cache  *gocache.Cache
	logger logger.ILogger
	now    func() time.Time
}

func NewPipeline(remote Classifier, local Classifier, log logger.ILogger) *Pipeline {
	return &Pipeline{
		remote: remote,
		local:  local,
		cache:  gocache.New(cacheTTL, cacheCleanup),
		logger: log,
		now:    time.Now,
	}
}

func (p *Pipeline) Classify(ctx context.Context, text string) ([]ClassifiedItem, error) {
	cacheKey := fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
	if cached, ok := p.cache.Get(cacheKey); ok {
		return p.resolveDates(cached.([]ClassifiedItem)), nil
	}

	items, err := p.classify(ctx, text)
	if err != nil {
		return nil, err
	}

	p.cache.Set(cacheKey, items, gocache.DefaultExpiration)
	return p.resolveDates(items), nil
}

func (p *Pipeline) classify(ctx context.Context, text string) ([]ClassifiedItem, error) {
	if p.remote != nil {
		remoteCtx, cancel := context.WithTimeout(ctx, remoteTimeout)
		defer cancel()

		items, err := p.remote.Classify(remoteCtx, text)
		if err == nil {
			return items, nil
		}
		// Remote failure is an expected condition, not an error surfaced to
		// the caller. Log it and degrade.
		p.logger.Warn("NLP", "Remote classification failed, using local fallback", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return p.local.Classify(ctx, text)
}

// resolveDates turns raw due expressions into calendar dates against the
// current date. Resolution happens after caching so a cached "morgen" still
// means tomorrow relative to today.
func (p *Pipeline) resolveDates(items []ClassifiedItem) []ClassifiedItem {
	resolved := make([]ClassifiedItem, len(items))
	copy(resolved, items)
	for i := range resolved {
		resolved[i].DueDate = nil
		if resolved[i].DueExpression == "" {
			continue
		}
		if date, ok := ResolveDueDate(resolved[i].DueExpression, p.now()); ok {
			resolved[i].DueDate = &date
		}
	}
	return resolved
}
