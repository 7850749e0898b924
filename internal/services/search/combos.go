package search

// combo is one (name, path, tag) keyword combination.
type combo struct {
	name string
	path string
	tag  string
}

// comboIter lazily walks the cartesian product of the three keyword
// classes. An unset class contributes a single empty-string placeholder,
// which matches everything. Laziness matters because the class sizes are
// caller-controlled.
type comboIter struct {
	names []string
	paths []string
	tags  []string
	i     int
	j     int
	k     int
}

func newComboIter(names, paths, tags []string) *comboIter {
	return &comboIter{
		names: orPlaceholder(names),
		paths: orPlaceholder(paths),
		tags:  orPlaceholder(tags),
	}
}

// Next returns the next combination, or ok=false when exhausted.
func (it *comboIter) Next() (combo, bool) {
	if it.i >= len(it.names) {
		return combo{}, false
	}

	c := combo{
		name: it.names[it.i],
		path: it.paths[it.j],
		tag:  it.tags[it.k],
	}

	it.k++
	if it.k >= len(it.tags) {
		it.k = 0
		it.j++
	}
	if it.j >= len(it.paths) {
		it.j = 0
		it.i++
	}

	return c, true
}

// Size returns the total number of combinations.
func (it *comboIter) Size() int {
	return len(it.names) * len(it.paths) * len(it.tags)
}

func orPlaceholder(keywords []string) []string {
	if len(keywords) == 0 {
		return []string{""}
	}
	return keywords
}
