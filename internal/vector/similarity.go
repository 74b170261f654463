package vector

// Similarity returns the cosine similarity of the vectors for a and b, in [-1, 1].
// A zero vector has similarity 0 with everything, itself included.
func (s *Space) Similarity(a, b string) (float64, error) {
	ua, err := s.unit(a)
	if err != nil {
		return 0, err
	}
	ub, err := s.unit(b)
	if err != nil {
		return 0, err
	}
	return clamp(dot(ua, ub)), nil
}

// Distance returns the cosine distance 1 - Similarity(a, b), in [0, 2].
func (s *Space) Distance(a, b string) (float64, error) {
	sim, err := s.Similarity(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - sim, nil
}

func (s *Space) unit(token string) ([]float64, error) {
	i, ok := s.index[token]
	if !ok {
		return nil, &UnknownTokenError{Token: token}
	}
	return s.units.get(token, s.vectors[i]), nil
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// clamp absorbs rounding that can push a normalised dot product just past ±1.
func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
