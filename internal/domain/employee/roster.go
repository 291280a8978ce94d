package employee

import "fmt"

// Roster is the ordered in-memory employee collection.
type Roster struct {
	seq   *Sequence
	items []Employee
}

func NewRoster() *Roster {
	return &Roster{seq: NewSequence(0)}
}

func (r *Roster) Sequence() *Sequence {
	return r.seq
}

func (r *Roster) Len() int {
	return len(r.items)
}

func (r *Roster) Add(e Employee) {
	r.seq.Advance(e.Details().ID)
	r.items = append(r.items, e)
}

func (r *Roster) Find(id int64) (Employee, bool) {
	for _, item := range r.items {
		if item.Details().ID == id {
			return item, true
		}
	}
	return nil, false
}

// Remove deletes the employee with the given id and keeps the order of the
// remaining ones.
func (r *Roster) Remove(id int64) error {
	for i, item := range r.items {
		if item.Details().ID == id {
			r.items = append(r.items[:i:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

func (r *Roster) List() []Employee {
	out := make([]Employee, len(r.items))
	copy(out, r.items)
	return out
}

// Replace swaps the whole collection, as done after a load. Duplicate ids
// are rejected and the roster is left as it was.
func (r *Roster) Replace(items []Employee) error {
	seen := make(map[int64]struct{}, len(items))
	var maxID int64
	for _, item := range items {
		id := item.Details().ID
		if id <= 0 {
			return fmt.Errorf("%w: id must be positive, got %d", ErrMalformedRecord, id)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate id %d", ErrMalformedRecord, id)
		}
		seen[id] = struct{}{}
		if id > maxID {
			maxID = id
		}
	}
	r.items = make([]Employee, len(items))
	copy(r.items, items)
	r.seq.Advance(maxID)
	return nil
}
