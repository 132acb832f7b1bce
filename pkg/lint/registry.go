package lint

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry indexes rules by ID, name and alias. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	byName  map[string]Rule
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[rule.ID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// RegisterAlias maps a short key such as "text" to a rule ID.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// GetByID looks a rule up by exact ID.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byID[id]
	return rule, ok
}

// GetByName looks a rule up by exact name.
func (r *Registry) GetByName(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Get looks a rule up by exact ID, then by exact name.
func (r *Registry) Get(key string) (Rule, bool) {
	if rule, ok := r.GetByID(key); ok {
		return rule, true
	}
	return r.GetByName(key)
}

// Resolve accepts an ID (any case), a name or an alias and returns the
// canonical ID with its rule.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	candidates := []func() (Rule, bool){
		func() (Rule, bool) { rule, ok := r.byID[key]; return rule, ok },
		func() (Rule, bool) { rule, ok := r.byID[strings.ToUpper(key)]; return rule, ok },
		func() (Rule, bool) { rule, ok := r.byName[key]; return rule, ok },
		func() (Rule, bool) { rule, ok := r.byID[r.aliases[key]]; return rule, ok },
	}
	for _, lookup := range candidates {
		if rule, ok := lookup(); ok {
			return rule.ID(), rule, true
		}
	}

	return "", nil, false
}

// AliasesFor returns the aliases registered for ruleID, sorted.
func (r *Registry) AliasesFor(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for alias, target := range r.aliases {
		if target == ruleID {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// Rules returns every registered rule ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.SortedFunc(maps.Values(r.byID), func(a, b Rule) int {
		return cmp.Compare(a.ID(), b.ID())
	})
}

// IDs returns every registered rule ID in order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.byID))
}

// DefaultRegistry holds the built-in rules, registered from init.
//
//nolint:gochecknoglobals // rules register themselves at init
var DefaultRegistry = NewRegistry()
