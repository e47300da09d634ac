package params

// Store owns the current parameter values. It is not safe for concurrent use;
// the simulation controller is its only writer.
type Store struct {
	values Values
}

// New returns a store seeded with v, each value clamped to its bounds.
func New(v Values) *Store {
	s := &Store{}
	for i := range v {
		s.Set(ID(i), v[i])
	}
	return s
}

// Default returns a store holding the reference parameter set.
func Default() *Store {
	return New(Defaults())
}

// Set clamps value into the bounds of id and stores it. Unknown ids are
// ignored.
func (s *Store) Set(id ID, value float64) {
	if !id.Valid() {
		return
	}
	spec := specs[id]
	s.values[id] = Clamp(value, spec.Min, spec.Max)
}

// Nudge moves id by one edit step in direction dir. Only the sign of dir is
// used; zero leaves the value untouched.
func (s *Store) Nudge(id ID, dir int) {
	if !id.Valid() || dir == 0 {
		return
	}
	step := specs[id].Step
	if dir < 0 {
		step = -step
	}
	s.Set(id, s.values[id]+step)
}

func (s *Store) Get(id ID) float64 {
	return s.values.Get(id)
}

// Values returns a copy of every value.
func (s *Store) Values() Values {
	return s.values
}

// Map returns the values keyed by parameter name.
func (s *Store) Map() map[string]float64 {
	m := make(map[string]float64, Count)
	for i, v := range s.values {
		m[specs[i].Name] = v
	}
	return m
}
