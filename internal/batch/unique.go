package batch

// Unique removes repeated entries in place, keeping the first occurrence of
// each and the relative order of the rest.
func Unique(src []string) []string {
	if len(src) < 2 {
		return src
	}

	seen := make(map[string]struct{}, len(src))
	dst := src[:0]
	for _, v := range src {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
