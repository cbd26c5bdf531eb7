package nav

// Flatten returns every node in pre-order: a group is emitted before its
// children, leaves emit themselves. Declared order is preserved.
func Flatten(items []*Item) []*Item {
	var out []*Item
	for _, item := range items {
		out = append(out, item)
		if item.IsGroup() {
			out = append(out, Flatten(item.Children)...)
		}
	}
	return out
}

// Walk visits every node in pre-order with its depth (0 for top level).
// Returning false from fn skips the node's children.
func Walk(items []*Item, fn func(item *Item, depth int) bool) {
	walk(items, 0, fn)
}

func walk(items []*Item, depth int, fn func(*Item, int) bool) {
	for _, item := range items {
		if !fn(item, depth) {
			continue
		}
		if item.IsGroup() {
			walk(item.Children, depth+1, fn)
		}
	}
}

// GroupIDs returns the ids of all groups in flatten order.
func GroupIDs(items []*Item) []string {
	var ids []string
	for _, item := range Flatten(items) {
		if item.IsGroup() {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Leaves returns only the leaf nodes, in flatten order.
func Leaves(items []*Item) []*Item {
	var out []*Item
	for _, item := range Flatten(items) {
		if !item.IsGroup() {
			out = append(out, item)
		}
	}
	return out
}

// Find returns the first node whose resolved path is active for loc.
func Find(items []*Item, loc Location, m Matcher) *Item {
	for _, item := range Flatten(items) {
		if !item.HasPath() {
			continue
		}
		if IsItemActive(item, loc, m) {
			return item
		}
	}
	return nil
}
