package nbsvm

import (
	"encoding/gob"
	"fmt"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

const modelDirName = "NBSVM"

// A Model is the NBSVM scorer: two parallel per-term scalar tables over the
// vocabulary. The ratio table is fixed at construction (naive Bayes
// log-count ratios); the weight table is trainable. Scoring a term-ID
// sequence looks both tables up elementwise, takes the inner product of the
// results, and squashes through a sigmoid. Both tables map PadID to zero, so
// padding never contributes to the score.
type Model struct {
	ratios  *mat.VecDense
	weights *mat.VecDense
}

// NewModel builds a model from a fixed ratio table. Weights start at small
// random values (stddev 0.01) drawn from the seeded source, except the
// padding entry which is pinned to zero.
func NewModel(ratios *mat.VecDense, seed int64) *Model {
	rng := rand.New(rand.NewSource(seed))
	n := ratios.Len()
	weights := mat.NewVecDense(n, nil)
	for id := 1; id < n; id++ {
		weights.SetVec(id, rng.NormFloat64()*0.01)
	}
	return &Model{ratios: ratios, weights: weights}
}

// VocabSize returns the number of real vocabulary terms the model covers.
func (m *Model) VocabSize() int {
	return m.ratios.Len() - 1
}

// Ratio returns the fixed log-count ratio for a term ID.
func (m *Model) Ratio(id int) float64 {
	return m.ratios.AtVec(id)
}

// Weight returns the current trainable weight for a term ID.
func (m *Model) Weight(id int) float64 {
	return m.weights.AtVec(id)
}

// Score returns the pre-sigmoid decision value for a term-ID sequence.
func (m *Model) Score(seq []int) float64 {
	score := 0.0
	for _, id := range seq {
		if id == PadID {
			continue
		}
		score += m.ratios.AtVec(id) * m.weights.AtVec(id)
	}
	return score
}

// Predict returns the probability of the positive class for a term-ID
// sequence.
func (m *Model) Predict(seq []int) float64 {
	return sigmoid(m.Score(seq))
}

// PredictClass returns the predicted label for a term-ID sequence.
func (m *Model) PredictClass(seq []int) int {
	if m.Predict(seq) >= 0.5 {
		return PositiveLabel
	}
	return NegativeLabel
}

// Write saves the model tables to the user-provided location.
func (m *Model) Write(path string) error {
	dir := filepath.Join(path, modelDirName)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	for name, vec := range map[string]*mat.VecDense{
		"ratios.gob":  m.ratios,
		"weights.gob": m.weights,
	} {
		file, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		err = gob.NewEncoder(file).Encode(vec.RawVector().Data)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("encode %s: %w", name, err)
		}
	}
	return nil
}

// LoadModelFS loads a model previously saved with Write.
func LoadModelFS(filesys fs.FS) (*Model, error) {
	dir, err := fs.Sub(filesys, modelDirName)
	if err != nil {
		return nil, fmt.Errorf("open model directory: %w", err)
	}

	read := func(name string) ([]float64, error) {
		file, err := dir.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer file.Close()
		var data []float64
		if err := gob.NewDecoder(file).Decode(&data); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return data, nil
	}

	ratios, err := read("ratios.gob")
	if err != nil {
		return nil, err
	}
	weights, err := read("weights.gob")
	if err != nil {
		return nil, err
	}
	if len(ratios) != len(weights) {
		return nil, fmt.Errorf("ratio table has %d entries but weight table has %d", len(ratios), len(weights))
	}
	if len(ratios) == 0 {
		return nil, fmt.Errorf("model tables are empty")
	}

	return &Model{
		ratios:  mat.NewVecDense(len(ratios), ratios),
		weights: mat.NewVecDense(len(weights), weights),
	}, nil
}

// LoadModel loads a model from the user-provided location on disk.
func LoadModel(path string) (*Model, error) {
	return LoadModelFS(os.DirFS(path))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
