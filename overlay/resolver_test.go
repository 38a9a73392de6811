package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trovia/trovia/core"
)

func boolPtr(b bool) *bool { return &b }

func TestResolve(t *testing.T) {
	t.Run("no override fails open", func(t *testing.T) {
		p := core.Provider{ID: "p1", Name: "Ace Plumbing", Category: "Plumber"}
		res := Resolve(p, nil)
		assert.Equal(t, core.SourceStatic, res.Source)
		assert.False(t, res.Verified)
		assert.False(t, res.Removed)
	})

	t.Run("own verification kept without override", func(t *testing.T) {
		p := core.Provider{ID: "p1", Verified: boolPtr(true)}
		res := Resolve(p, map[string]core.Override{})
		assert.True(t, res.Verified)
	})

	t.Run("legacy verification spelling kept", func(t *testing.T) {
		p := core.Provider{ID: "p1", IsVerified: boolPtr(true)}
		res := Resolve(p, nil)
		assert.True(t, res.Verified)
	})

	t.Run("override verification wins over own flag", func(t *testing.T) {
		p := core.Provider{ID: "p1", Verified: boolPtr(true)}
		overrides := map[string]core.Override{
			"static:p1": {Verified: boolPtr(false)},
		}
		res := Resolve(p, overrides)
		assert.False(t, res.Verified)
	})

	t.Run("removal override marks the record", func(t *testing.T) {
		p := core.Provider{ID: "p1", Verified: boolPtr(true), Rating: 5}
		overrides := map[string]core.Override{
			"static:p1": {Removed: boolPtr(true)},
		}
		res := Resolve(p, overrides)
		assert.True(t, res.Removed)
		// Removal does not touch verification.
		assert.True(t, res.Verified)
	})

	t.Run("removed false is not removed", func(t *testing.T) {
		p := core.Provider{ID: "p1"}
		overrides := map[string]core.Override{
			"static:p1": {Removed: boolPtr(false)},
		}
		res := Resolve(p, overrides)
		assert.False(t, res.Removed)
	})

	t.Run("override keyed to other source does not apply", func(t *testing.T) {
		p := core.Provider{ID: "p1"} // static origin
		overrides := map[string]core.Override{
			"vendor:p1": {Removed: boolPtr(true)},
		}
		res := Resolve(p, overrides)
		assert.False(t, res.Removed)
	})

	t.Run("vendor marker selects vendor key", func(t *testing.T) {
		p := core.Provider{ID: "v1", IsVendor: true}
		overrides := map[string]core.Override{
			"vendor:v1": {Verified: boolPtr(true)},
		}
		res := Resolve(p, overrides)
		assert.Equal(t, core.SourceVendor, res.Source)
		assert.True(t, res.Verified)
	})

	t.Run("record without id receives no override", func(t *testing.T) {
		p := core.Provider{Name: "Anonymous"}
		overrides := map[string]core.Override{
			"static:": {Removed: boolPtr(true)},
		}
		res := Resolve(p, overrides)
		assert.False(t, res.Removed)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		p := core.Provider{ID: "p1", Name: "Ace Plumbing"}
		overrides := map[string]core.Override{
			"static:p1": {Removed: boolPtr(true)},
		}
		_ = Resolve(p, overrides)
		assert.False(t, p.IsVendor)
		assert.Nil(t, p.Verified)
	})
}

func TestResolveAll(t *testing.T) {
	catalog := []core.Provider{
		{ID: "p1", Name: "Ace Plumbing", Category: "Plumber"},
		{ID: "p2", Name: "Brightline Electric", Category: "Electrician"},
	}
	vendors := []core.Provider{
		{ID: "v1", Name: "Pipe Bros", Category: "Plumber", IsVendor: true},
	}
	overrides := map[string]core.Override{
		"static:p2": {Removed: boolPtr(true)},
		"vendor:v1": {Verified: boolPtr(true)},
	}

	out := ResolveAll(catalog, vendors, overrides)
	require.Len(t, out, 3)

	t.Run("static layer first, input order kept", func(t *testing.T) {
		assert.Equal(t, "p1", out[0].Provider.ID)
		assert.Equal(t, "p2", out[1].Provider.ID)
		assert.Equal(t, "v1", out[2].Provider.ID)
	})

	t.Run("overrides applied per layer", func(t *testing.T) {
		assert.True(t, out[1].Removed)
		assert.True(t, out[2].Verified)
		assert.Equal(t, core.SourceVendor, out[2].Source)
	})

	t.Run("empty layers yield empty output", func(t *testing.T) {
		assert.Empty(t, ResolveAll(nil, nil, nil))
	})
}
