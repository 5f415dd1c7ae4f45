package kvstore

// Memory is an in-memory Store for tests and ephemeral use.
type Memory struct {
	values map[string][]byte

	// FailWrites makes Set and Delete return SetErr, for exercising the
	// swallow-and-log persistence policy in tests.
	FailWrites bool
	SetErr     error
}

func NewMemory() *Memory {
	return &Memory{values: map[string][]byte{}}
}

func (s *Memory) Get(key string) ([]byte, bool, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *Memory) Set(key string, value []byte) error {
	if s.FailWrites {
		return s.SetErr
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

func (s *Memory) Delete(key string) error {
	if s.FailWrites {
		return s.SetErr
	}
	delete(s.values, key)
	return nil
}
