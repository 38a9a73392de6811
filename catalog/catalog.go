package catalog

import (
	"encoding/json"
	"slices"
	"sync"

	_ "embed"

	"github.com/trovia/trovia/core"
)

//go:embed dataset.json
var datasetJSON []byte

var (
	datasetOnce sync.Once
	dataset     []core.Provider
)

// Dataset returns the bundled static provider catalog. Records are
// immutable once loaded; callers receive a fresh copy.
func Dataset() []core.Provider {
	datasetOnce.Do(func() {
		// The dataset is compiled in; a decode failure here means a
		// broken build, and the session degrades to an empty catalog.
		if err := json.Unmarshal(datasetJSON, &dataset); err != nil {
			dataset = nil
		}
	})
	return slices.Clone(dataset)
}
