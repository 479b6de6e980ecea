package nlp

import (
	"context"
	"errors"
	"testing"
	"time"

	"nexmind-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

type stubLogger struct{}

func (stubLogger) Debug(module, message string, details map[string]interface{}) {}
func (stubLogger) Info(module, message string, details map[string]interface{})  {}
func (stubLogger) Warn(module, message string, details map[string]interface{})  {}
func (stubLogger) Error(module, message string, details map[string]interface{}) {}
func (stubLogger) Sync() error                                                  { return nil }

type stubClassifier struct {
	items []ClassifiedItem
	err   error
	calls int
}

func (s *stubClassifier) Classify(ctx context.Context, text string) ([]ClassifiedItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.items, nil
}

func fixedPipeline(remote, local Classifier) *Pipeline {
	p := NewPipeline(remote, local, stubLogger{})
	p.now = func() time.Time { return anchor }
	return p
}

func TestPipelineUsesRemoteWhenHealthy(t *testing.T) {
	remote := &stubClassifier{items: []ClassifiedItem{{Category: entity.CategoryTask, Content: "from remote"}}}
	local := &stubClassifier{items: []ClassifiedItem{{Category: entity.CategoryInfo, Content: "from local"}}}

	items, err := fixedPipeline(remote, local).Classify(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Equal(t, "from remote", items[0].Content)
	assert.Zero(t, local.calls)
}

func TestPipelineFallsBackOnRemoteError(t *testing.T) {
	remote := &stubClassifier{err: errors.New("boom")}
	local := &stubClassifier{items: []ClassifiedItem{{Category: entity.CategoryInfo, Content: "from local"}}}

	items, err := fixedPipeline(remote, local).Classify(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Equal(t, "from local", items[0].Content)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, 1, local.calls)
}

func TestPipelineNoRemoteConfigured(t *testing.T) {
	local := &stubClassifier{items: []ClassifiedItem{{Category: entity.CategoryInfo, Content: "from local"}}}

	items, err := fixedPipeline(nil, local).Classify(context.Background(), "anything")
	assert.NoError(t, err)
	assert.Equal(t, "from local", items[0].Content)
}

func TestPipelineCachesByContent(t *testing.T) {
	remote := &stubClassifier{items: []ClassifiedItem{{Category: entity.CategoryTask, Content: "cached"}}}
	p := fixedPipeline(remote, &stubClassifier{})

	_, err := p.Classify(context.Background(), "same text")
	assert.NoError(t, err)
	_, err = p.Classify(context.Background(), "same text")
	assert.NoError(t, err)
	assert.Equal(t, 1, remote.calls)

	_, err = p.Classify(context.Background(), "different text")
	assert.NoError(t, err)
	assert.Equal(t, 2, remote.calls)
}

func TestPipelineResolvesDueDates(t *testing.T) {
	remote := &stubClassifier{items: []ClassifiedItem{
		{Category: entity.CategoryTask, Content: "report", DueExpression: "morgen"},
		{Category: entity.CategoryTask, Content: "someday thing", DueExpression: "not-a-date"},
	}}

	items, err := fixedPipeline(remote, &stubClassifier{}).Classify(context.Background(), "x")
	assert.NoError(t, err)
	if assert.NotNil(t, items[0].DueDate) {
		assert.Equal(t, "2026-08-20", *items[0].DueDate)
	}
	assert.Nil(t, items[1].DueDate)
}
