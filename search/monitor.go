package search

import "github.com/poiesic/insight/core"

// Monitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type Monitor interface {
	Start(query string)
	AfterVectorSearch(ids []core.ID)
	VerbatimHit(chunk *core.Chunk)
	Finish(results []*Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)              {}
func (n *noopMonitor) AfterVectorSearch(_ []core.ID) {}
func (n *noopMonitor) VerbatimHit(_ *core.Chunk)   {}
func (n *noopMonitor) Finish(_ []*Result)          {}
