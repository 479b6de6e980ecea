package nlp

import (
	"context"
	"testing"

	"nexmind-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestLocalClassifierSplitsCompoundInput(t *testing.T) {
	c := NewLocalClassifier()

	items, err := c.Classify(context.Background(), "Milch kaufen und Maria anrufen, Meeting morgen vorbereiten")
	assert.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestLocalClassifierCategories(t *testing.T) {
	c := NewLocalClassifier()

	tests := []struct {
		text string
		want entity.NoteCategory
	}{
		{"Milch kaufen", entity.CategoryTask},
		{"Meeting mit Anna am Freitag", entity.CategoryEvent},
		{"Idee: vielleicht eine App bauen", entity.CategoryIdea},
		{"Der Himmel ist blau", entity.CategoryInfo},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			items, err := c.Classify(context.Background(), tt.text)
			assert.NoError(t, err)
			assert.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Category)
		})
	}
}

func TestLocalClassifierExtractsPersonAfterTrigger(t *testing.T) {
	c := NewLocalClassifier()

	items, err := c.Classify(context.Background(), "Lunch mit Maria besprechen")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Contains(t, items[0].Entities.Persons, "Maria")
}

func TestLocalClassifierExtractsProject(t *testing.T) {
	c := NewLocalClassifier()

	items, err := c.Classify(context.Background(), "Budget für Projekt Phoenix prüfen")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Contains(t, items[0].Entities.Projects, "Phoenix")
}

func TestLocalClassifierDueExpressionAndPriority(t *testing.T) {
	c := NewLocalClassifier()

	items, err := c.Classify(context.Background(), "dringend Bericht schreiben morgen")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, entity.CategoryTask, items[0].Category)
	assert.Equal(t, "morgen", items[0].DueExpression)
	if assert.NotNil(t, items[0].Priority) {
		assert.Equal(t, entity.PriorityHigh, *items[0].Priority)
	}
}

func TestLocalClassifierSingularDayExpression(t *testing.T) {
	c := NewLocalClassifier()

	items, err := c.Classify(context.Background(), "Rechnung bezahlen in 1 tag")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "in 1 tag", items[0].DueExpression)
}

func TestLocalClassifierEmptyInput(t *testing.T) {
	c := NewLocalClassifier()

	items, err := c.Classify(context.Background(), "   ")
	assert.NoError(t, err)
	assert.Empty(t, items)
}
