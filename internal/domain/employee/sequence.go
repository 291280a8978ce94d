package employee

// Sequence hands out employee ids in creation order. Ids are never reused,
// including ids of removed employees.
type Sequence struct {
	last int64
}

func NewSequence(last int64) *Sequence {
	return &Sequence{last: last}
}

func (s *Sequence) Next() int64 {
	s.last++
	return s.last
}

func (s *Sequence) Last() int64 {
	return s.last
}

// Advance moves the sequence forward so the next id is greater than id.
func (s *Sequence) Advance(id int64) {
	if id > s.last {
		s.last = id
	}
}
