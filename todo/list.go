package todo

// List is an ordered sequence of todos. Functions in this package never
// modify a List in place; they return a new one.
type List []Todo

// Clone returns a copy of the list that shares no storage with it.
// A nil list clones to an empty, non-nil list.
func (l List) Clone() List {
	cloned := make(List, len(l))
	copy(cloned, l)
	return cloned
}

// InRange reports whether i addresses an item in the list.
func (l List) InRange(i int) bool {
	return i >= 0 && i < len(l)
}

// Add returns a new list with item appended.
func Add(list List, item Todo) List {
	next := make(List, 0, len(list)+1)
	next = append(next, list...)
	return append(next, item)
}

// Replace returns a new list with the item at index i replaced.
// An index outside the list leaves the copy unchanged.
func Replace(list List, i int, item Todo) List {
	next := list.Clone()
	if !next.InRange(i) {
		return next
	}
	next[i] = item
	return next
}

// RemoveAt returns a new list without the item at index i. Later items
// shift down by one. An index outside the list leaves the copy unchanged.
func RemoveAt(list List, i int) List {
	if !list.InRange(i) {
		return list.Clone()
	}
	next := make(List, 0, len(list)-1)
	next = append(next, list[:i]...)
	return append(next, list[i+1:]...)
}

// CountDone returns how many items are marked done.
func CountDone(list List) int {
	count := 0
	for _, item := range list {
		if item.Done {
			count++
		}
	}
	return count
}
