package nbsvm

// PadID is the reserved sequence-padding term ID. It is never assigned to a
// real vocabulary term, and both model tables map it to zero.
const PadID = 0

// Sentiment labels.
const (
	NegativeLabel = 0
	PositiveLabel = 1
)

// A Document represents a single labeled text.
type Document struct {
	Text  string // The document's raw content.
	Label int    // The document's sentiment label (0 or 1).
}

// A DocVector is one row of a term-document matrix: the vocabulary IDs
// present in a document together with their occurrence counts. IDs are
// strictly ascending and never include PadID.
type DocVector struct {
	IDs    []int
	Counts []int
}

// Nnz returns the number of distinct terms in the vector.
func (v DocVector) Nnz() int {
	return len(v.IDs)
}

// Total returns the total term occurrence count, i.e. the expanded sequence
// length before padding or truncation.
func (v DocVector) Total() int {
	total := 0
	for _, c := range v.Counts {
		total += c
	}
	return total
}

// CorpusStats summarizes a labeled corpus.
type CorpusStats struct {
	Documents int
	Positive  int
	Negative  int
	Tokens    int
	Sentences int
}
