package uistate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ziadkadry99/docshell/internal/nav"
)

// ErrUnknownGroup is returned when toggling an id that is not a group of the
// current tree.
var ErrUnknownGroup = errors.New("uistate: unknown nav group")

// GroupState maps a group id to whether it is expanded.
type GroupState map[string]bool

func (g GroupState) clone() GroupState {
	out := make(GroupState, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}

// ComputeDefaults expands exactly the groups that contain the active page.
// It never reads persisted state.
func ComputeDefaults(items []*nav.Item, loc nav.Location, m nav.Matcher) GroupState {
	defaults := make(GroupState)
	for _, item := range nav.Flatten(items) {
		if item.IsGroup() {
			defaults[item.ID] = nav.IsGroupActive(item.Children, loc, m)
		}
	}
	return defaults
}

// IsAllExpanded reports whether every id of validIDs that appears in state
// is expanded. Ids missing from state and stale keys are ignored. With no
// valid ids there is nothing to expand and the result is false.
func IsAllExpanded(state GroupState, validIDs []string) bool {
	tracked := 0
	for _, id := range validIDs {
		v, ok := state[id]
		if !ok {
			continue
		}
		if !v {
			return false
		}
		tracked++
	}
	return tracked > 0
}

// SetAll returns a state with every valid id set to value and nothing else.
func SetAll(validIDs []string, value bool) GroupState {
	out := make(GroupState, len(validIDs))
	for _, id := range validIDs {
		out[id] = value
	}
	return out
}

// NavState is the nav group state of one page view: the persisted map
// reconciled against the defaults of the current tree.
type NavState struct {
	store    *Store
	defaults GroupState
	ids      []string

	mu        sync.Mutex
	persisted GroupState
}

// LoadNav acquires the persisted nav state. On first use the store is seeded
// with defaults; afterwards the persisted map wins and defaults only fill in
// groups it has never seen. Stale persisted ids are kept in storage but never
// surface through the handle.
func LoadNav(ctx context.Context, store *Store, defaults GroupState) (*NavState, error) {
	ids := make([]string, 0, len(defaults))
	for id := range defaults {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ns := &NavState{store: store, defaults: defaults.clone(), ids: ids}

	var persisted GroupState
	found, err := store.Get(ctx, KeyNav, &persisted)
	if err != nil {
		return nil, fmt.Errorf("loading nav state: %w", err)
	}
	if !found || persisted == nil {
		persisted = defaults.clone()
		if err := store.Set(ctx, KeyNav, persisted); err != nil {
			return nil, fmt.Errorf("seeding nav state: %w", err)
		}
	}
	ns.persisted = persisted
	return ns, nil
}

// ValidIDs returns the group ids of the current tree, sorted.
func (ns *NavState) ValidIDs() []string {
	return append([]string(nil), ns.ids...)
}

// State returns the effective expanded flag of every current group.
func (ns *NavState) State() GroupState {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	return ns.stateLocked()
}

func (ns *NavState) stateLocked() GroupState {
	out := make(GroupState, len(ns.ids))
	for _, id := range ns.ids {
		if v, ok := ns.persisted[id]; ok {
			out[id] = v
		} else {
			out[id] = ns.defaults[id]
		}
	}
	return out
}

// Expanded reports whether group id is expanded.
func (ns *NavState) Expanded(id string) bool {
	return ns.State()[id]
}

// IsAllExpanded reports whether every current group is expanded.
func (ns *NavState) IsAllExpanded() bool {
	return IsAllExpanded(ns.State(), ns.ids)
}

// Toggle flips a single group and persists the result.
func (ns *NavState) Toggle(ctx context.Context, id string) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if _, ok := ns.defaults[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, id)
	}
	return ns.setLocked(ctx, id, !ns.stateLocked()[id])
}

// Set assigns a single group and persists the result. Other entries of the
// persisted map are left as they are.
func (ns *NavState) Set(ctx context.Context, id string, expanded bool) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if _, ok := ns.defaults[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, id)
	}
	return ns.setLocked(ctx, id, expanded)
}

// SetMany assigns several groups in one write. Nothing is persisted when any
// id is not a group of the current tree.
func (ns *NavState) SetMany(ctx context.Context, groups GroupState) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	for id := range groups {
		if _, ok := ns.defaults[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownGroup, id)
		}
	}
	if len(groups) == 0 {
		return nil
	}
	next := ns.persisted.clone()
	for id, expanded := range groups {
		next[id] = expanded
	}
	if err := ns.store.Set(ctx, KeyNav, next); err != nil {
		return fmt.Errorf("saving nav state: %w", err)
	}
	ns.persisted = next
	return nil
}

func (ns *NavState) setLocked(ctx context.Context, id string, expanded bool) error {
	next := ns.persisted.clone()
	next[id] = expanded
	if err := ns.store.Set(ctx, KeyNav, next); err != nil {
		return fmt.Errorf("saving nav state: %w", err)
	}
	ns.persisted = next
	return nil
}

// ToggleAll collapses every group when all are expanded and expands every
// group otherwise, nested groups included. The persisted map is replaced.
// With no groups it does nothing.
func (ns *NavState) ToggleAll(ctx context.Context) error {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if len(ns.ids) == 0 {
		return nil
	}
	next := SetAll(ns.ids, !IsAllExpanded(ns.stateLocked(), ns.ids))
	if err := ns.store.Set(ctx, KeyNav, next); err != nil {
		return fmt.Errorf("saving nav state: %w", err)
	}
	ns.persisted = next
	return nil
}
