package record

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id string) Record {
	return Record{ID: id, Text: "text " + id, Items: []string{"text " + id}, Category: "writing"}
}

func ids(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestHistory_PushNewestFirst(t *testing.T) {
	h := NewHistory(3, nil)

	assert.Nil(t, h.Push(rec("1")))
	assert.Nil(t, h.Push(rec("2")))
	assert.Nil(t, h.Push(rec("3")))
	assert.Equal(t, []string{"3", "2", "1"}, ids(h.Records()))

	evicted := h.Push(rec("4"))
	assert.Equal(t, []string{"1"}, ids(evicted))
	assert.Equal(t, []string{"4", "3", "2"}, ids(h.Records()))
}

func TestHistory_Bound(t *testing.T) {
	const limit = 20
	h := NewHistory(limit, nil)

	for i := range limit + 5 {
		h.Push(rec(fmt.Sprint(i)))
		require.LessOrEqual(t, h.Len(), limit)
	}

	records := h.Records()
	require.Len(t, records, limit)
	assert.Equal(t, "24", records[0].ID)
	assert.Equal(t, "5", records[limit-1].ID)
	_, ok := h.Find("4")
	assert.False(t, ok)
}

func TestNewHistory(t *testing.T) {
	h := NewHistory(2, []Record{rec("a"), rec("b"), rec("c")})
	assert.Equal(t, []string{"a", "b"}, ids(h.Records()))
	assert.Equal(t, 2, h.Limit())

	d := NewHistory(0, nil)
	assert.Equal(t, DefaultHistorySize, d.Limit())
}

func TestHistory_RecordsIsCopy(t *testing.T) {
	h := NewHistory(5, nil)
	h.Push(rec("a"))

	records := h.Records()
	records[0].ID = "changed"

	_, ok := h.Find("a")
	assert.True(t, ok)
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory(5, []Record{rec("a")})
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Records())
}

func TestCollection(t *testing.T) {
	c := NewCollection([]Record{rec("a"), rec("a"), rec("b")})
	assert.Equal(t, 2, c.Len())

	assert.False(t, c.Add(rec("b")))
	assert.True(t, c.Add(rec("c")))
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.Records()))

	assert.True(t, c.Remove("b"))
	assert.False(t, c.Remove("b"))
	assert.False(t, c.Contains("b"))
	assert.Equal(t, []string{"a", "c"}, ids(c.Records()))

	r, ok := c.Find("c")
	require.True(t, ok)
	assert.Equal(t, "text c", r.Text)
}

func TestItemsAreNotShared(t *testing.T) {
	r := rec("a")
	h := NewHistory(5, nil)
	h.Push(r)
	c := NewCollection(nil)
	c.Add(r)

	r.Items[0] = "changed"
	assert.Equal(t, "text a", h.Records()[0].Items[0])
	assert.Equal(t, "text a", c.Records()[0].Items[0])

	got, ok := h.Find("a")
	require.True(t, ok)
	got.Items[0] = "changed"
	again, _ := h.Find("a")
	assert.Equal(t, "text a", again.Items[0])

	listed := c.Records()
	listed[0].Items[0] = "changed"
	found, ok := c.Find("a")
	require.True(t, ok)
	assert.Equal(t, "text a", found.Items[0])
}
