package session

import (
	"fmt"
	"log/slog"
)

// Cursor is the position within the active working set.
type Cursor struct {
	// Index is the 0-based offset into the working set.
	Index int

	// GroupIndex is the absolute offset of the set's first word within the
	// full word population.
	GroupIndex int

	// TotalWords is the size of the full population, informational only.
	TotalWords int
}

// Stats is the presentation summary of a cursor.
type Stats struct {
	WordNumber int // 1-based position in the set
	SetSize    int
	SetNumber  int // 1-based sub-group within the set
	SetCount   int
	Absolute   int // 1-based position in the full population

	WordLabel string
	SetLabel  string
}

// ComputeStats derives the labels shown for a cursor over a set of setSize
// words split into sub-groups of groupSize.
func ComputeStats(c Cursor, setSize, groupSize int) Stats {
	if groupSize <= 0 {
		groupSize = 10
	}
	st := Stats{
		WordNumber: c.Index + 1,
		SetSize:    setSize,
		SetNumber:  c.Index/groupSize + 1,
		SetCount:   (setSize + groupSize - 1) / groupSize,
		Absolute:   c.GroupIndex + c.Index + 1,
	}
	st.WordLabel = fmt.Sprintf("%d/%d", st.WordNumber, st.SetSize)
	st.SetLabel = fmt.Sprintf("%d/%d", st.SetNumber, st.SetCount)
	return st
}

// Seek moves the cursor to index if it lies within [0, setSize). Out of
// range indexes are logged and ignored; they come from responses meant for
// a set that has since been replaced.
func (c *Cursor) Seek(index, setSize int, logger *slog.Logger) bool {
	if index < 0 || index >= setSize {
		if logger != nil {
			logger.Warn("cursor index out of range", "index", index, "set_size", setSize)
		}
		return false
	}
	c.Index = index
	return true
}
