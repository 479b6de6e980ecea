package dto

import "github.com/google/uuid"

// PublishEmbedNoteMessage is the internal pub/sub payload the note service
// emits after a write. The consumer embeds the note and updates the graph;
// Rebuild requests a full graph rebuild instead (used after deletes, where
// an incremental update would leave stale nodes behind).
type PublishEmbedNoteMessage struct {
	NoteId  uuid.UUID `json:"note_id"`
	UserId  uuid.UUID `json:"user_id"`
	Rebuild bool      `json:"rebuild,omitempty"`
}
