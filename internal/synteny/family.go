package synteny

// DistinctFamilies returns the distinct non-empty family identifiers in
// query, in first-seen order. The empty string is the reserved "no
// family" sentinel and is never eligible to match.
func DistinctFamilies(query []string) []string {
	seen := make(map[string]bool, len(query))
	var out []string
	for _, f := range query {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
