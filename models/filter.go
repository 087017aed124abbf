package models

// AllProvinces is the sentinel selection that disables province filtering.
// It is always the first entry of a province index.
const AllProvinces = "All"

// DeriveProvinces builds the province index for a result set: the distinct
// non-empty provinces in first-seen order, prefixed with AllProvinces.
// The output depends only on the order of results.
func DeriveProvinces(results []University) []string {
	provinces := []string{AllProvinces}
	seen := make(map[string]struct{}, len(results))

	for _, uni := range results {
		p := uni.Province()
		// a province literally named "All" would collide with the sentinel
		if p == "" || p == AllProvinces {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		provinces = append(provinces, p)
	}
	return provinces
}

// ApplyFilter returns the records visible under selection. AllProvinces
// returns results itself; any other value returns the order-preserving
// subsequence whose province matches exactly. A selection that matches
// nothing yields an empty, non-nil slice.
func ApplyFilter(results []University, selection string) []University {
	if selection == AllProvinces {
		return results
	}

	filtered := make([]University, 0, len(results))
	for _, uni := range results {
		if uni.Province() == selection {
			filtered = append(filtered, uni)
		}
	}
	return filtered
}

// RealProvinceCount is the number of entries in a province index that are
// actual provinces rather than the AllProvinces sentinel.
func RealProvinceCount(index []string) int {
	n := 0
	for _, p := range index {
		if p != AllProvinces {
			n++
		}
	}
	return n
}
