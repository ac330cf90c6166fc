package models

import (
	"encoding/json"
	"sort"
)

// ScopeSet is an unordered set of scope names. Membership is exact and
// case-sensitive.
type ScopeSet map[string]struct{}

// NewScopeSet builds a set from the given names, ignoring empty strings.
func NewScopeSet(scopes ...string) ScopeSet {
	set := make(ScopeSet, len(scopes))
	for _, scope := range scopes {
		if scope == "" {
			continue
		}
		set[scope] = struct{}{}
	}
	return set
}

func (s ScopeSet) Contains(scope string) bool {
	_, ok := s[scope]
	return ok
}

func (s ScopeSet) Add(scope string) {
	s[scope] = struct{}{}
}

func (s ScopeSet) Len() int {
	return len(s)
}

// Slice returns the scopes in sorted order so output is stable.
func (s ScopeSet) Slice() []string {
	out := make([]string, 0, len(s))
	for scope := range s {
		out = append(out, scope)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s ScopeSet) Clone() ScopeSet {
	out := make(ScopeSet, len(s))
	for scope := range s {
		out[scope] = struct{}{}
	}
	return out
}

func (s ScopeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *ScopeSet) UnmarshalJSON(data []byte) error {
	var scopes []string
	if err := json.Unmarshal(data, &scopes); err != nil {
		return err
	}
	*s = NewScopeSet(scopes...)
	return nil
}

// IsSubset reports whether every requested scope is present in allowed.
// The empty set is a subset of anything.
func IsSubset(requested, allowed ScopeSet) bool {
	for scope := range requested {
		if !allowed.Contains(scope) {
			return false
		}
	}
	return true
}
