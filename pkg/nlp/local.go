package nlp

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"nexmind-be/internal/entity"
)

// LocalClassifier is the deterministic keyword pipeline used when no LLM is
// configured or the remote call failed. Quality is deliberately modest: it
// splits compound input, guesses one category per part, and extracts names
// and dates by trigger words.
type LocalClassifier struct{}

func NewLocalClassifier() *LocalClassifier {
	return &LocalClassifier{}
}

var splitPattern = regexp.MustCompile(`(?i)\s*(?:,|\bund\b|\band\b|\balso\b)\s*`)

var taskKeywords = []string{
	"todo", "erledigen", "kaufen", "anrufen", "call", "buy", "fix",
	"schreiben", "write", "senden", "send", "vorbereiten", "prepare",
	"muss", "must", "should",
}

var eventKeywords = []string{
	"meeting", "termin", "treffen", "appointment", "konferenz",
	"conference", "geburtstag", "birthday", "um ", " uhr", "o'clock",
}

var ideaKeywords = []string{
	"idee", "idea", "vielleicht", "maybe", "könnte", "could", "was wäre",
	"what if", "brainstorm",
}

var highPriorityKeywords = []string{"dringend", "urgent", "wichtig", "important", "asap", "sofort"}
var lowPriorityKeywords = []string{"irgendwann", "someday", "eventually", "später", "later"}

var dueExprPattern = regexp.MustCompile(`(?i)\b(heute|today|morgen|tomorrow|übermorgen|nächste woche|next week|in \d+ (?:tag(?:en?)?|days?|wochen?|weeks?)|montag|dienstag|mittwoch|donnerstag|freitag|samstag|sonntag|monday|tuesday|wednesday|thursday|friday|saturday|sunday|\d{4}-\d{2}-\d{2})\b`)

// personTrigger words announce that the following capitalized token is a name.
var personTriggers = map[string]bool{
	"mit": true, "with": true, "bei": true, "für": true, "for": true,
	"an": true, "to": true, "von": true, "from": true,
}

var projectTriggerPattern = regexp.MustCompile(`(?i)\bprojekt\s+(\p{L}[\p{L}\d_-]*)|\bproject\s+(\p{L}[\p{L}\d_-]*)`)

var stopwords = map[string]bool{
	"der": true, "die": true, "das": true, "ein": true, "eine": true,
	"und": true, "oder": true, "mit": true, "für": true, "the": true,
	"a": true, "an": true, "and": true, "or": true, "with": true,
	"for": true, "to": true, "in": true, "on": true, "at": true,
	"ich": true, "i": true, "wir": true, "we": true, "ist": true,
	"is": true, "of": true, "muss": true, "must": true,
}

func (c *LocalClassifier) Classify(ctx context.Context, text string) ([]ClassifiedItem, error) {
	parts := splitPattern.Split(text, -1)

	items := make([]ClassifiedItem, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, c.classifyPart(part))
	}
	return items, nil
}

func (c *LocalClassifier) classifyPart(text string) ClassifiedItem {
	lower := strings.ToLower(text)

	item := ClassifiedItem{
		Category: entity.CategoryInfo,
		Content:  text,
		Entities: extractEntities(text),
	}

	switch {
	case containsAny(lower, eventKeywords):
		item.Category = entity.CategoryEvent
	case containsAny(lower, taskKeywords):
		item.Category = entity.CategoryTask
	case containsAny(lower, ideaKeywords):
		item.Category = entity.CategoryIdea
	case len(item.Entities.Persons) > 0 && len(strings.Fields(text)) <= 4:
		item.Category = entity.CategoryPerson
	}

	if m := dueExprPattern.FindString(lower); m != "" {
		item.DueExpression = m
	}

	if item.Category == entity.CategoryTask {
		prio := entity.PriorityMedium
		if containsAny(lower, highPriorityKeywords) {
			prio = entity.PriorityHigh
		} else if containsAny(lower, lowPriorityKeywords) {
			prio = entity.PriorityLow
		}
		item.Priority = &prio
	}

	return item
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func extractEntities(text string) entity.EntityBag {
	var bag entity.EntityBag

	words := strings.Fields(text)
	for i, word := range words {
		cleaned := strings.Trim(word, ".,!?;:\"'()")
		if cleaned == "" {
			continue
		}
		lowerCleaned := strings.ToLower(cleaned)
		if lowerCleaned == "projekt" || lowerCleaned == "project" {
			continue
		}
		if i > 0 && personTriggers[strings.ToLower(words[i-1])] && isCapitalized(cleaned) {
			bag.Persons = append(bag.Persons, cleaned)
		}
	}

	for _, m := range projectTriggerPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if name != "" {
			bag.Projects = append(bag.Projects, name)
		}
	}

	bag.Topics = extractTopics(text, 3)
	return bag
}

// extractTopics picks the longest non-stopword tokens as rough thematic
// tags. Crude, but stable, and enough for the graph to cluster on.
func extractTopics(text string, max int) []string {
	seen := make(map[string]bool)
	var topics []string

	for _, word := range strings.Fields(strings.ToLower(text)) {
		cleaned := strings.Trim(word, ".,!?;:\"'()")
		if len(cleaned) < 5 || stopwords[cleaned] || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		topics = append(topics, cleaned)
		if len(topics) == max {
			break
		}
	}
	return topics
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}
