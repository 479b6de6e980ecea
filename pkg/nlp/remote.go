package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"nexmind-be/internal/entity"
	"nexmind-be/pkg/llm"
)

const classifyPrompt = `You are a note classification engine. Split the user text into separate items and return ONLY a JSON array, no prose. Each element:
{
  "category": "task" | "event" | "idea" | "info" | "person",
  "content": "<the item text>",
  "due": "<due date expression if present, verbatim>",
  "priority": "low" | "medium" | "high" (tasks only, optional),
  "entities": {
    "persons": [], "places": [], "projects": [], "topics": []
  },
  "confidence": 0.0-1.0,
  "reason": "<one short sentence>",
  "group_id": "<same id for items belonging together>"
}

User text:
%s`

// RemoteClassifier asks an LLM to split and classify raw input. Any
// transport error, timeout, or malformed payload is returned as an error;
// the pipeline treats all of them the same and falls back.
type RemoteClassifier struct {
	provider llm.LLMProvider
}

func NewRemoteClassifier(provider llm.LLMProvider) *RemoteClassifier {
	return &RemoteClassifier{provider: provider}
}

func (c *RemoteClassifier) Classify(ctx context.Context, text string) ([]ClassifiedItem, error) {
	raw, err := c.provider.Generate(ctx,
		fmt.Sprintf(classifyPrompt, text),
		llm.WithTemperature(0.1),
	)
	if err != nil {
		return nil, fmt.Errorf("remote classification: %w", err)
	}

	items, err := parseClassifierPayload(raw)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("remote classification: empty item list")
	}
	return items, nil
}

// parseClassifierPayload digs the JSON array out of the model response.
// Models wrap payloads in markdown fences or prose often enough that a
// plain Unmarshal of the whole response is not reliable.
func parseClassifierPayload(raw string) ([]ClassifiedItem, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in model response")
	}

	var items []ClassifiedItem
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("malformed classifier payload: %w", err)
	}

	valid := items[:0]
	for _, item := range items {
		if strings.TrimSpace(item.Content) == "" {
			continue
		}
		if !validCategory(item.Category) {
			item.Category = entity.CategoryInfo
		}
		valid = append(valid, item)
	}
	return valid, nil
}

func validCategory(c entity.NoteCategory) bool {
	switch c {
	case entity.CategoryTask, entity.CategoryEvent, entity.CategoryIdea,
		entity.CategoryInfo, entity.CategoryPerson:
		return true
	}
	return false
}
