package inventory

// Aggregate merges the observations of an open session into one entry per key.
// The first observation of a key seeds the entry; later ones are merged into it.
func Aggregate[T Item[T]](items []T) map[string]T {
	out := make(map[string]T, len(items))
	for _, item := range items {
		key := item.ItemKey()
		if existing, ok := out[key]; ok {
			out[key] = existing.Merge(item)
			continue
		}
		out[key] = item
	}
	return out
}
