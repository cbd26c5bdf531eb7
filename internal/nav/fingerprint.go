package nav

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable digest of the tree shape and contents. Two
// trees with the same fingerprint produce the same defaults and pagination
// for any location, so it can key caches of derived values.
func Fingerprint(items []*Item) string {
	d := xxhash.New()
	Walk(items, func(item *Item, depth int) bool {
		// Fields are length-prefixed so "a","bc" and "ab","c" differ.
		for _, f := range []string{
			strconv.Itoa(depth),
			item.Kind.String(),
			item.ID,
			item.Title,
			item.Path,
			strconv.Itoa(len(item.Children)),
		} {
			_, _ = d.WriteString(strconv.Itoa(len(f)))
			_, _ = d.WriteString(":")
			_, _ = d.WriteString(f)
		}
		return true
	})
	return fmt.Sprintf("%016x", d.Sum64())
}
