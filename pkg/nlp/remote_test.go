package nlp

import (
	"testing"

	"nexmind-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestParseClassifierPayload(t *testing.T) {
	raw := "Here you go:\n```json\n[{\"category\":\"task\",\"content\":\"buy milk\",\"due\":\"tomorrow\",\"entities\":{\"topics\":[\"groceries\"]}}]\n```"

	items, err := parseClassifierPayload(raw)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, entity.CategoryTask, items[0].Category)
	assert.Equal(t, "buy milk", items[0].Content)
	assert.Equal(t, "tomorrow", items[0].DueExpression)
	assert.Equal(t, []string{"groceries"}, items[0].Entities.Topics)
}

func TestParseClassifierPayloadNoArray(t *testing.T) {
	_, err := parseClassifierPayload("I could not classify that.")
	assert.Error(t, err)
}

func TestParseClassifierPayloadMalformedJSON(t *testing.T) {
	_, err := parseClassifierPayload("[{\"category\": }]")
	assert.Error(t, err)
}

func TestParseClassifierPayloadUnknownCategoryDefaultsToInfo(t *testing.T) {
	items, err := parseClassifierPayload("[{\"category\":\"banana\",\"content\":\"something\"}]")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, entity.CategoryInfo, items[0].Category)
}

func TestParseClassifierPayloadDropsEmptyContent(t *testing.T) {
	items, err := parseClassifierPayload("[{\"category\":\"info\",\"content\":\"  \"},{\"category\":\"info\",\"content\":\"kept\"}]")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].Content)
}
