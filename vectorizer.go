package nbsvm

import (
	"fmt"
	"sort"
)

// CountVectorizer converts text documents into sparse term-count vectors
// over a fixed n-gram vocabulary. The vocabulary is built once from the
// training corpus and reused unchanged afterward, so transforming held-out
// data can never introduce new term IDs.
type CountVectorizer struct {
	maxFeatures int
	ngramMin    int
	ngramMax    int
	tokenizer   Tokenizer

	vocab map[string]int // term -> ID, IDs assigned from 1; PadID reserved
	terms []string       // terms[id-1] = term
}

type VectorizerOptFunc func(*CountVectorizer)

// WithMaxFeatures caps the vocabulary at the n most frequent n-grams.
func WithMaxFeatures(n int) VectorizerOptFunc {
	return func(v *CountVectorizer) {
		v.maxFeatures = n
	}
}

// WithNgramRange sets the inclusive n-gram size range.
func WithNgramRange(minN, maxN int) VectorizerOptFunc {
	return func(v *CountVectorizer) {
		v.ngramMin = minN
		v.ngramMax = maxN
	}
}

// WithTokenizer replaces the default word tokenizer.
func WithTokenizer(t Tokenizer) VectorizerOptFunc {
	return func(v *CountVectorizer) {
		v.tokenizer = t
	}
}

// NewCountVectorizer creates a CountVectorizer. The defaults match the
// movie-review experiment: 1-3 grams capped at 200,000 features.
func NewCountVectorizer(opts ...VectorizerOptFunc) *CountVectorizer {
	v := &CountVectorizer{
		maxFeatures: 200000,
		ngramMin:    1,
		ngramMax:    3,
		tokenizer:   NewWordTokenizer(),
	}
	for _, applyOpt := range opts {
		applyOpt(v)
	}
	return v
}

func (v *CountVectorizer) analyze(text string) []string {
	return Ngrams(v.tokenizer.Tokenize(text), v.ngramMin, v.ngramMax)
}

// Fit builds the vocabulary from the most frequent n-grams in the corpus.
// Ties at the frequency cutoff break lexicographically so the vocabulary is
// deterministic.
func (v *CountVectorizer) Fit(texts []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("fit vectorizer: %w", ErrEmptyCorpus)
	}

	counts := make(map[string]int)
	for _, text := range texts {
		for _, gram := range v.analyze(text) {
			counts[gram]++
		}
	}

	selected := make([]string, 0, len(counts))
	for term := range counts {
		selected = append(selected, term)
	}
	sort.Slice(selected, func(i, j int) bool {
		if counts[selected[i]] != counts[selected[j]] {
			return counts[selected[i]] > counts[selected[j]]
		}
		return selected[i] < selected[j]
	})
	if v.maxFeatures > 0 && len(selected) > v.maxFeatures {
		selected = selected[:v.maxFeatures]
	}

	v.vocab = make(map[string]int, len(selected))
	v.terms = selected
	for i, term := range selected {
		v.vocab[term] = i + 1 // PadID stays unused
	}
	return nil
}

// Transform converts documents to sparse count vectors over the fitted
// vocabulary. Out-of-vocabulary n-grams are dropped silently.
func (v *CountVectorizer) Transform(texts []string) ([]DocVector, error) {
	if v.vocab == nil {
		return nil, ErrNotFitted
	}

	vectors := make([]DocVector, len(texts))
	for i, text := range texts {
		docCounts := make(map[int]int)
		for _, gram := range v.analyze(text) {
			if id, ok := v.vocab[gram]; ok {
				docCounts[id]++
			}
		}

		ids := make([]int, 0, len(docCounts))
		for id := range docCounts {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		vec := DocVector{IDs: ids, Counts: make([]int, len(ids))}
		for j, id := range ids {
			vec.Counts[j] = docCounts[id]
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// FitTransform fits the vocabulary and transforms the same corpus.
func (v *CountVectorizer) FitTransform(texts []string) ([]DocVector, error) {
	if err := v.Fit(texts); err != nil {
		return nil, err
	}
	return v.Transform(texts)
}

// Vocabulary returns a copy of the term-to-ID mapping.
func (v *CountVectorizer) Vocabulary() map[string]int {
	vocab := make(map[string]int, len(v.vocab))
	for term, id := range v.vocab {
		vocab[term] = id
	}
	return vocab
}

// VocabSize returns the number of real terms, excluding the padding ID.
func (v *CountVectorizer) VocabSize() int {
	return len(v.terms)
}

// Term returns the n-gram for a vocabulary ID, or "" for PadID and unknown
// IDs.
func (v *CountVectorizer) Term(id int) string {
	if id < 1 || id > len(v.terms) {
		return ""
	}
	return v.terms[id-1]
}

// Binarize returns copies of the vectors with every count clamped to 1,
// i.e. term presence instead of term frequency.
func Binarize(vectors []DocVector) []DocVector {
	out := make([]DocVector, len(vectors))
	for i, vec := range vectors {
		ids := make([]int, len(vec.IDs))
		copy(ids, vec.IDs)
		counts := make([]int, len(vec.Counts))
		for j := range counts {
			counts[j] = 1
		}
		out[i] = DocVector{IDs: ids, Counts: counts}
	}
	return out
}
