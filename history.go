package thumbpro

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryLimit is the number of generations a History keeps.
const DefaultHistoryLimit = 6

// HistoryItem records one generated image for display.
type HistoryItem struct {
	ID          string
	Image       *Image
	Prompt      string
	AspectRatio AspectRatio
	CreatedAt   time.Time
}

// History is a bounded, most-recent-first list of generated images.
// It is safe for concurrent use.
type History struct {
	mu    sync.Mutex
	limit int
	items []HistoryItem
	now   func() time.Time
}

// NewHistory creates a history holding at most limit items.
// A non-positive limit uses DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit, now: time.Now}
}

// Add records img at the front of the history, evicting the oldest entry when full.
func (h *History) Add(img *Image, prompt string, ratio AspectRatio) HistoryItem {
	item := HistoryItem{
		ID:          uuid.New().String(),
		Image:       img,
		Prompt:      prompt,
		AspectRatio: ratio,
		CreatedAt:   h.now(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.items = append([]HistoryItem{item}, h.items...)
	if len(h.items) > h.limit {
		h.items = h.items[:h.limit]
	}
	return item
}

// Items returns a snapshot of the history, most recent first.
func (h *History) Items() []HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]HistoryItem, len(h.items))
	copy(out, h.items)
	return out
}

// Get returns the item with the given ID.
func (h *History) Get(id string) (HistoryItem, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, item := range h.items {
		if item.ID == id {
			return item, true
		}
	}
	return HistoryItem{}, false
}

// Len returns the number of items held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Clear removes every item.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
}
