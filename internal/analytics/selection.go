package analytics

// Selection is the pair of multi-select filters applied to the dataset.
// A nil or empty slice selects nothing.
type Selection struct {
	Activities  []string `json:"activities"`
	Intensities []string `json:"intensities"`
}

// IsEmpty reports whether either criterion selects nothing, in which case
// Filter always returns no rows.
func (s Selection) IsEmpty() bool {
	return len(s.Activities) == 0 || len(s.Intensities) == 0
}

// Filter returns the records whose Activity and IntensityLevel are both in
// the selection. Matching is exact and the input order is preserved.
func Filter(records []Record, sel Selection) []Record {
	if sel.IsEmpty() {
		return []Record{}
	}

	activities := toSet(sel.Activities)
	intensities := toSet(sel.Intensities)

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if activities[r.Activity] && intensities[r.IntensityLevel] {
			out = append(out, r)
		}
	}
	return out
}

// UniqueActivities returns the distinct activities in order of first
// appearance.
func UniqueActivities(records []Record) []string {
	return unique(records, func(r Record) string { return r.Activity })
}

// UniqueIntensities returns the distinct intensity levels in order of first
// appearance.
func UniqueIntensities(records []Record) []string {
	return unique(records, func(r Record) string { return r.IntensityLevel })
}

// DefaultSelection selects every intensity level and every activity except
// the excluded ones.
func DefaultSelection(records []Record, excluded []string) Selection {
	skip := toSet(excluded)

	activities := make([]string, 0)
	for _, a := range UniqueActivities(records) {
		if !skip[a] {
			activities = append(activities, a)
		}
	}

	return Selection{
		Activities:  activities,
		Intensities: UniqueIntensities(records),
	}
}

func unique(records []Record, key func(Record) string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range records {
		k := key(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
