package search

import "github.com/trovia/trovia/core"

// Monitor provides hooks to observe the pipeline stages.
// Implement this interface to track intermediate results during a search.
type Monitor interface {
	Start(state core.FilterState, mode core.SortMode)
	AfterCatalogLoad(records []core.Provider)
	AfterResolve(records []core.Resolved)
	AfterFilter(records []core.Resolved)
	Finish(results []core.RankedProvider)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.FilterState, _ core.SortMode) {}
func (n *noopMonitor) AfterCatalogLoad(_ []core.Provider)        {}
func (n *noopMonitor) AfterResolve(_ []core.Resolved)            {}
func (n *noopMonitor) AfterFilter(_ []core.Resolved)             {}
func (n *noopMonitor) Finish(_ []core.RankedProvider)            {}
