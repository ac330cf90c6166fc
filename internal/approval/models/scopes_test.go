package models

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSubset(t *testing.T) {
	t.Run("empty requested set is a subset of anything", func(t *testing.T) {
		assert.True(t, IsSubset(NewScopeSet(), NewScopeSet()))
		assert.True(t, IsSubset(NewScopeSet(), NewScopeSet("openid")))
		assert.True(t, IsSubset(nil, nil))
	})

	t.Run("equal sets", func(t *testing.T) {
		assert.True(t, IsSubset(NewScopeSet("openid", "profile"), NewScopeSet("profile", "openid")))
	})

	t.Run("missing scope fails", func(t *testing.T) {
		assert.False(t, IsSubset(NewScopeSet("openid", "email"), NewScopeSet("openid", "profile")))
	})

	t.Run("match is case-sensitive", func(t *testing.T) {
		assert.False(t, IsSubset(NewScopeSet("Profile"), NewScopeSet("profile")))
	})
}

// TestIsSubset_Property checks the definition against random supersets and
// disjoint sets.
func TestIsSubset_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randomSet := func(prefix string, n int) ScopeSet {
		set := NewScopeSet()
		for i := 0; i < n; i++ {
			set.Add(fmt.Sprintf("%s%d", prefix, rng.Intn(50)))
		}
		return set
	}

	for i := 0; i < 200; i++ {
		requested := randomSet("s", rng.Intn(8))

		superset := requested.Clone()
		for scope := range randomSet("s", rng.Intn(8)) {
			superset.Add(scope)
		}
		require.True(t, IsSubset(requested, superset), "superset must cover %v", requested.Slice())

		disjoint := randomSet("d", 1+rng.Intn(8))
		require.Equal(t, requested.Len() == 0, IsSubset(requested, disjoint))

		// Removing any requested scope from the allowed set breaks the relation.
		for scope := range requested {
			reduced := superset.Clone()
			delete(reduced, scope)
			require.False(t, IsSubset(requested, reduced))
		}
	}
}

func TestScopeSet(t *testing.T) {
	set := NewScopeSet("profile", "", "openid", "openid")
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"openid", "profile"}, set.Slice())

	clone := set.Clone()
	clone.Add("email")
	assert.False(t, set.Contains("email"))

	raw, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `["openid","profile"]`, string(raw))

	var decoded ScopeSet
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, set, decoded)
}
