// Package note defines the note record shared by the store, the list screen
// and the CLI.
package note

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmpty is returned by Validate for a note without a title or content.
var ErrEmpty = errors.New("note: title or content required")

// Note is a user-authored record.
type Note struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content,omitempty"`
	Created Timestamp `json:"created"`
	Updated Timestamp `json:"updated"`
}

// New returns a note with a fresh ID and both timestamps set to now.
func New(title, content string) *Note {
	now := time.Now()
	return &Note{
		ID:      NewID(),
		Title:   title,
		Content: content,
		Created: Timestamp{Time: now},
		Updated: Timestamp{Time: now},
	}
}

// NewID returns a random note identifier.
func NewID() string {
	return uuid.NewString()
}

// Touch marks the note as updated at the given time.
func (n *Note) Touch(now time.Time) {
	n.Updated = Timestamp{Time: now}
}

// Validate reports ErrEmpty when neither a title nor content is present.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == "" {
		return ErrEmpty
	}
	return nil
}

// Summary is the line shown for the note in lists: the title, or the first
// non-blank line of the content when the title is blank.
func (n *Note) Summary() string {
	if t := strings.TrimSpace(n.Title); t != "" {
		return t
	}
	for _, line := range strings.Split(n.Content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Clone returns a copy that shares nothing with n.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	cp := *n
	return &cp
}
