package nbsvm

import (
	"errors"
	"reflect"
	"testing"
)

func TestVectorizerFitTransform(t *testing.T) {
	corpus := []string{
		"good movie",
		"bad movie",
		"good good plot",
	}

	v := NewCountVectorizer(WithNgramRange(1, 1), WithMaxFeatures(10))
	vectors, err := v.FitTransform(corpus)
	if err != nil {
		t.Fatalf("FitTransform failed: %v", err)
	}

	vocab := v.Vocabulary()
	if len(vocab) != 4 {
		t.Fatalf("expected 4 terms (good, movie, bad, plot), got %d: %v", len(vocab), vocab)
	}

	// "good" occurs three times and "movie" twice, so they take the first
	// two IDs; frequency ties break lexicographically.
	if vocab["good"] != 1 || vocab["movie"] != 2 {
		t.Errorf("unexpected frequency ordering: %v", vocab)
	}
	if vocab["bad"] != 3 || vocab["plot"] != 4 {
		t.Errorf("unexpected tie-break ordering: %v", vocab)
	}

	// Third document: good x2, plot x1.
	want := DocVector{IDs: []int{1, 4}, Counts: []int{2, 1}}
	if !reflect.DeepEqual(vectors[2], want) {
		t.Errorf("vector for doc 2 = %+v, want %+v", vectors[2], want)
	}
}

func TestVectorizerReservesPadID(t *testing.T) {
	v := NewCountVectorizer(WithNgramRange(1, 2))
	if err := v.Fit([]string{"some training text", "more training text"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	for term, id := range v.Vocabulary() {
		if id == PadID {
			t.Errorf("term %q was assigned the padding ID", term)
		}
	}
	if got := v.Term(PadID); got != "" {
		t.Errorf("Term(PadID) = %q, want empty", got)
	}
}

func TestVectorizerMaxFeaturesCap(t *testing.T) {
	corpus := []string{"a b c d e f g h i j k"}

	v := NewCountVectorizer(WithNgramRange(1, 3), WithMaxFeatures(5))
	if err := v.Fit(corpus); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if v.VocabSize() != 5 {
		t.Errorf("VocabSize = %d, want 5", v.VocabSize())
	}
}

func TestTransformNeverAddsTerms(t *testing.T) {
	v := NewCountVectorizer(WithNgramRange(1, 1))
	if err := v.Fit([]string{"known words only"}); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	sizeBefore := v.VocabSize()

	vectors, err := v.Transform([]string{"entirely unseen vocabulary here", "known words"})
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if v.VocabSize() != sizeBefore {
		t.Errorf("vocabulary grew from %d to %d during Transform", sizeBefore, v.VocabSize())
	}
	if vectors[0].Nnz() != 0 {
		t.Errorf("out-of-vocabulary document produced IDs: %+v", vectors[0])
	}
	for _, id := range vectors[1].IDs {
		if id < 1 || id > sizeBefore {
			t.Errorf("Transform produced ID %d outside fitted vocabulary [1, %d]", id, sizeBefore)
		}
	}
}

func TestTransformBeforeFit(t *testing.T) {
	v := NewCountVectorizer()
	if _, err := v.Transform([]string{"text"}); !errors.Is(err, ErrNotFitted) {
		t.Errorf("expected ErrNotFitted, got %v", err)
	}
}

func TestFitEmptyCorpus(t *testing.T) {
	v := NewCountVectorizer()
	if err := v.Fit(nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestBinarize(t *testing.T) {
	vectors := []DocVector{
		{IDs: []int{1, 3, 7}, Counts: []int{4, 1, 9}},
		{},
	}

	binary := Binarize(vectors)

	if !reflect.DeepEqual(binary[0].IDs, vectors[0].IDs) {
		t.Errorf("Binarize changed IDs: %v", binary[0].IDs)
	}
	for _, c := range binary[0].Counts {
		if c != 1 {
			t.Errorf("binarized count = %d, want 1", c)
		}
	}

	// The originals must keep their raw counts for sequence construction.
	if vectors[0].Counts[0] != 4 {
		t.Errorf("Binarize mutated the input vector: %+v", vectors[0])
	}
}
