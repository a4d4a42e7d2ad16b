package nbsvm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogCountRatios computes the smoothed naive Bayes log-count ratio for every
// vocabulary term:
//
//	r_t = log((pos_t + 1) / (nPos + 1)) - log((neg_t + 1) / (nNeg + 1))
//
// where pos_t and neg_t count the documents of each class containing term t.
// Any nonzero count is treated as presence, so both raw and binarized
// vectors give the same result. The returned vector has vocabSize+1 entries;
// entry 0 belongs to PadID and is always zero. Swapping the two classes
// negates every ratio.
func LogCountRatios(docs []DocVector, labels []int, vocabSize int) (*mat.VecDense, error) {
	if len(docs) != len(labels) {
		return nil, fmt.Errorf("have %d documents but %d labels", len(docs), len(labels))
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("compute log-count ratios: %w", ErrEmptyCorpus)
	}

	posDocs := mat.NewVecDense(vocabSize+1, nil)
	negDocs := mat.NewVecDense(vocabSize+1, nil)
	nPos, nNeg := 0, 0

	for i, doc := range docs {
		var classCounts *mat.VecDense
		switch labels[i] {
		case PositiveLabel:
			classCounts = posDocs
			nPos++
		case NegativeLabel:
			classCounts = negDocs
			nNeg++
		default:
			return nil, fmt.Errorf("document %d has label %d: %w", i, labels[i], ErrBadLabel)
		}

		for j, id := range doc.IDs {
			if id <= PadID || id > vocabSize {
				return nil, fmt.Errorf("document %d has term ID %d outside vocabulary of size %d", i, id, vocabSize)
			}
			if doc.Counts[j] > 0 {
				classCounts.SetVec(id, classCounts.AtVec(id)+1)
			}
		}
	}

	ratios := mat.NewVecDense(vocabSize+1, nil)
	posDenom := float64(nPos + 1)
	negDenom := float64(nNeg + 1)
	for id := 1; id <= vocabSize; id++ {
		p := (posDocs.AtVec(id) + 1) / posDenom
		q := (negDocs.AtVec(id) + 1) / negDenom
		ratios.SetVec(id, math.Log(p)-math.Log(q))
	}
	return ratios, nil
}

// UniformRatios returns a ratio vector of all ones (zero at PadID). A model
// built on it degenerates to a plain logistic regression over term counts.
func UniformRatios(vocabSize int) *mat.VecDense {
	ratios := mat.NewVecDense(vocabSize+1, nil)
	for id := 1; id <= vocabSize; id++ {
		ratios.SetVec(id, 1)
	}
	return ratios
}
