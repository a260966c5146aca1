package hit

// Record is one manual section or station as stored in the vector index.
type Record struct {
	ID      string
	Kind    Kind
	Title   string
	Section string
	Text    string
	Vector  []float32
}
