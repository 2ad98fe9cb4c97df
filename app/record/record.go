// Package record defines generated records and the collections that hold
// them: the bounded history and the id-keyed saved and favorite sets.
package record

import (
	"slices"
	"time"
)

const DefaultHistorySize = 20

// Record is one generated output. It is never mutated after creation;
// favoriting stores a copy with Favorited set.
type Record struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Items     []string  `json:"items" yaml:"items"`
	Category  string    `json:"category" yaml:"category"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	IsBatch   bool      `json:"isBatch" yaml:"isBatch"`
	Favorited bool      `json:"favorited,omitempty" yaml:"favorited,omitempty"`
}

// Clone returns a copy of r that shares no memory with it.
func (r Record) Clone() Record {
	r.Items = slices.Clone(r.Items)
	return r
}

// History is a newest-first list capped at limit records.
type History struct {
	limit   int
	records []Record
}

// NewHistory restores a history, dropping anything past limit.
func NewHistory(limit int, records []Record) *History {
	if limit < 1 {
		limit = DefaultHistorySize
	}
	if len(records) > limit {
		records = records[:limit]
	}
	return &History{
		limit:   limit,
		records: cloneAll(records),
	}
}

// Push inserts r at the front and returns the records evicted past the cap.
func (h *History) Push(r Record) []Record {
	h.records = slices.Insert(h.records, 0, r.Clone())
	if len(h.records) <= h.limit {
		return nil
	}
	evicted := slices.Clone(h.records[h.limit:])
	h.records = h.records[:h.limit]
	return evicted
}

func (h *History) Records() []Record {
	return cloneAll(h.records)
}

func (h *History) Len() int {
	return len(h.records)
}

func (h *History) Limit() int {
	return h.limit
}

func (h *History) Clear() {
	h.records = nil
}

func (h *History) Find(id string) (Record, bool) {
	return find(h.records, id)
}

// Collection is a set of records keyed by id, kept in insertion order.
type Collection struct {
	records []Record
}

func NewCollection(records []Record) *Collection {
	c := &Collection{}
	for _, r := range records {
		c.Add(r)
	}
	return c
}

// Add inserts r unless a record with the same id exists.
func (c *Collection) Add(r Record) bool {
	if c.Contains(r.ID) {
		return false
	}
	c.records = append(c.records, r.Clone())
	return true
}

func (c *Collection) Remove(id string) bool {
	i := slices.IndexFunc(c.records, func(r Record) bool { return r.ID == id })
	if i < 0 {
		return false
	}
	c.records = slices.Delete(c.records, i, i+1)
	return true
}

func (c *Collection) Contains(id string) bool {
	_, ok := c.Find(id)
	return ok
}

func (c *Collection) Find(id string) (Record, bool) {
	return find(c.records, id)
}

func (c *Collection) Records() []Record {
	return cloneAll(c.records)
}

func (c *Collection) Len() int {
	return len(c.records)
}

func find(records []Record, id string) (Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return Record{}, false
}

func cloneAll(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
