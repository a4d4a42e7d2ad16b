package nbsvm

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"
)

// TrainingConfig contains configuration for model training
type TrainingConfig struct {
	Epochs           int
	LearningRate     float64
	BatchSize        int
	ValidationSplit  float64
	EarlyStopping    bool
	Patience         int
	Seed             int64
	Context          context.Context
	ProgressCallback func(epoch int, loss float64, accuracy float64)
}

// DefaultTrainingConfig returns a default training configuration. Three
// epochs of mini-batch SGD are enough for the movie-review setup.
func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Epochs:          3,
		LearningRate:    0.01,
		BatchSize:       32,
		ValidationSplit: 0.1,
		EarlyStopping:   false,
		Patience:        2,
		Seed:            42,
		Context:         context.Background(),
	}
}

// TrainingMetrics contains metrics from training
type TrainingMetrics struct {
	FinalLoss       float64
	FinalAccuracy   float64
	BestLoss        float64
	BestAccuracy    float64
	EpochsCompleted int
	TrainingTime    time.Duration
	Converged       bool
}

// ValidationResult contains evaluation metrics for the positive class.
type ValidationResult struct {
	Accuracy  float64
	Loss      float64
	F1Score   float64
	Precision float64
	Recall    float64
}

// CrossValidationResult contains results from cross-validation
type CrossValidationResult struct {
	MeanAccuracy float64
	StdAccuracy  float64
	MeanLoss     float64
	StdLoss      float64
	FoldResults  []ValidationResult
}

// Trainer fits NBSVM models with mini-batch gradient descent.
type Trainer struct {
	config TrainingConfig
}

// NewTrainer creates a new trainer with the given configuration
func NewTrainer(config TrainingConfig) *Trainer {
	return &Trainer{config: config}
}

// Train fits the model's trainable weight table to the given term-ID
// sequences by minimizing binary cross-entropy. The fixed ratio table is
// never touched. Sequences must already be encoded against the model's
// vocabulary.
func (t *Trainer) Train(model *Model, seqs [][]int, labels []int) (TrainingMetrics, error) {
	startTime := time.Now()

	var metrics TrainingMetrics
	if len(seqs) == 0 {
		return metrics, fmt.Errorf("train model: %w", ErrEmptyCorpus)
	}
	if len(seqs) != len(labels) {
		return metrics, fmt.Errorf("have %d sequences but %d labels", len(seqs), len(labels))
	}
	for i, label := range labels {
		if label != NegativeLabel && label != PositiveLabel {
			return metrics, fmt.Errorf("sequence %d has label %d: %w", i, label, ErrBadLabel)
		}
	}

	ctx := t.config.Context
	if ctx == nil {
		ctx = context.Background()
	}
	batchSize := t.config.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}

	rng := rand.New(rand.NewSource(t.config.Seed))

	// The corpus loader groups documents by class, so shuffle before
	// carving off the validation tail.
	indices := rng.Perm(len(seqs))

	var trainIdx, validIdx []int
	if t.config.ValidationSplit > 0 {
		split := int(float64(len(indices)) * (1.0 - t.config.ValidationSplit))
		if split < 1 {
			split = 1
		}
		trainIdx = indices[:split]
		validIdx = indices[split:]
	} else {
		trainIdx = indices
	}

	bestLoss := math.Inf(1)
	bestAccuracy := 0.0
	patienceCounter := 0

	grad := make(map[int]float64)

	for epoch := 0; epoch < t.config.Epochs; epoch++ {
		select {
		case <-ctx.Done():
			return metrics, ctx.Err()
		default:
		}

		rng.Shuffle(len(trainIdx), func(i, j int) {
			trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i]
		})

		epochLoss := 0.0
		correct := 0

		for start := 0; start < len(trainIdx); start += batchSize {
			end := start + batchSize
			if end > len(trainIdx) {
				end = len(trainIdx)
			}
			batch := trainIdx[start:end]

			clear(grad)
			for _, idx := range batch {
				seq := seqs[idx]
				y := float64(labels[idx])

				p := model.Predict(seq)
				epochLoss += crossEntropy(p, y)
				if predictedLabel(p) == labels[idx] {
					correct++
				}

				// dL/dw_id = (p - y) * r_id per occurrence; the padding
				// entry has a zero ratio and is skipped outright.
				delta := p - y
				for _, id := range seq {
					if id == PadID {
						continue
					}
					grad[id] += delta * model.Ratio(id)
				}
			}

			scale := t.config.LearningRate / float64(len(batch))
			for id, g := range grad {
				model.weights.SetVec(id, model.weights.AtVec(id)-scale*g)
			}
		}

		trainLoss := epochLoss / float64(len(trainIdx))
		trainAccuracy := float64(correct) / float64(len(trainIdx))

		epochLossOut, epochAccuracy := trainLoss, trainAccuracy
		if len(validIdx) > 0 {
			result := t.evaluateSubset(model, seqs, labels, validIdx)
			epochLossOut, epochAccuracy = result.Loss, result.Accuracy
		}

		if t.config.ProgressCallback != nil {
			t.config.ProgressCallback(epoch, epochLossOut, epochAccuracy)
		}

		metrics.EpochsCompleted = epoch + 1
		metrics.FinalLoss = epochLossOut
		metrics.FinalAccuracy = epochAccuracy

		if epochAccuracy > bestAccuracy {
			bestAccuracy = epochAccuracy
			bestLoss = epochLossOut
			patienceCounter = 0
		} else if t.config.EarlyStopping {
			patienceCounter++
			if patienceCounter >= t.config.Patience {
				metrics.Converged = true
				break
			}
		}
	}

	metrics.BestLoss = bestLoss
	metrics.BestAccuracy = bestAccuracy
	metrics.TrainingTime = time.Since(startTime)

	return metrics, nil
}

// Evaluate scores the model over a labeled set of sequences.
func (t *Trainer) Evaluate(model *Model, seqs [][]int, labels []int) (ValidationResult, error) {
	if len(seqs) != len(labels) {
		return ValidationResult{}, fmt.Errorf("have %d sequences but %d labels", len(seqs), len(labels))
	}
	if len(seqs) == 0 {
		return ValidationResult{}, fmt.Errorf("evaluate model: %w", ErrEmptyCorpus)
	}

	indices := make([]int, len(seqs))
	for i := range indices {
		indices[i] = i
	}
	return t.evaluateSubset(model, seqs, labels, indices), nil
}

func (t *Trainer) evaluateSubset(model *Model, seqs [][]int, labels []int, indices []int) ValidationResult {
	correct := 0
	loss := 0.0
	truePos, falsePos, falseNeg := 0, 0, 0

	for _, idx := range indices {
		p := model.Predict(seqs[idx])
		loss += crossEntropy(p, float64(labels[idx]))

		predicted := predictedLabel(p)
		if predicted == labels[idx] {
			correct++
		}
		switch {
		case predicted == PositiveLabel && labels[idx] == PositiveLabel:
			truePos++
		case predicted == PositiveLabel && labels[idx] == NegativeLabel:
			falsePos++
		case predicted == NegativeLabel && labels[idx] == PositiveLabel:
			falseNeg++
		}
	}

	result := ValidationResult{
		Accuracy: float64(correct) / float64(len(indices)),
		Loss:     loss / float64(len(indices)),
	}
	if truePos+falsePos > 0 {
		result.Precision = float64(truePos) / float64(truePos+falsePos)
	}
	if truePos+falseNeg > 0 {
		result.Recall = float64(truePos) / float64(truePos+falseNeg)
	}
	if result.Precision+result.Recall > 0 {
		result.F1Score = 2 * result.Precision * result.Recall / (result.Precision + result.Recall)
	}
	return result
}

// CrossValidate performs k-fold cross-validation over term-count vectors.
// The log-count ratios are recomputed from each fold's training portion so
// no label information leaks into the held-out fold.
func (t *Trainer) CrossValidate(vectors []DocVector, labels []int, vocabSize, seqLen, k int) (CrossValidationResult, error) {
	if k <= 1 {
		return CrossValidationResult{}, fmt.Errorf("k must be greater than 1")
	}
	if len(vectors) != len(labels) {
		return CrossValidationResult{}, fmt.Errorf("have %d vectors but %d labels", len(vectors), len(labels))
	}
	if len(vectors) < k {
		return CrossValidationResult{}, fmt.Errorf("cannot split %d documents into %d folds", len(vectors), k)
	}

	rng := rand.New(rand.NewSource(t.config.Seed))
	order := rng.Perm(len(vectors))

	foldSize := len(vectors) / k
	results := make([]ValidationResult, k)
	accuracies := make([]float64, k)
	losses := make([]float64, k)

	for fold := 0; fold < k; fold++ {
		start := fold * foldSize
		end := start + foldSize
		if fold == k-1 {
			end = len(vectors)
		}

		var trainVecs, testVecs []DocVector
		var trainLabels, testLabels []int
		for pos, idx := range order {
			if pos >= start && pos < end {
				testVecs = append(testVecs, vectors[idx])
				testLabels = append(testLabels, labels[idx])
			} else {
				trainVecs = append(trainVecs, vectors[idx])
				trainLabels = append(trainLabels, labels[idx])
			}
		}

		ratios, err := LogCountRatios(Binarize(trainVecs), trainLabels, vocabSize)
		if err != nil {
			return CrossValidationResult{}, fmt.Errorf("fold %d: %w", fold, err)
		}
		model := NewModel(ratios, t.config.Seed+int64(fold))

		foldConfig := t.config
		foldConfig.EarlyStopping = false
		foldConfig.ValidationSplit = 0
		foldTrainer := NewTrainer(foldConfig)

		if _, err := foldTrainer.Train(model, EncodeSequences(trainVecs, seqLen), trainLabels); err != nil {
			return CrossValidationResult{}, fmt.Errorf("fold %d: %w", fold, err)
		}

		result, err := foldTrainer.Evaluate(model, EncodeSequences(testVecs, seqLen), testLabels)
		if err != nil {
			return CrossValidationResult{}, fmt.Errorf("fold %d: %w", fold, err)
		}
		results[fold] = result
		accuracies[fold] = result.Accuracy
		losses[fold] = result.Loss
	}

	return CrossValidationResult{
		MeanAccuracy: stat.Mean(accuracies, nil),
		StdAccuracy:  stat.PopStdDev(accuracies, nil),
		MeanLoss:     stat.Mean(losses, nil),
		StdLoss:      stat.PopStdDev(losses, nil),
		FoldResults:  results,
	}, nil
}

// crossEntropy is the per-example binary cross-entropy, clamped away from
// log(0).
func crossEntropy(p, y float64) float64 {
	const eps = 1e-12
	p = math.Min(math.Max(p, eps), 1-eps)
	return -(y*math.Log(p) + (1-y)*math.Log(1-p))
}

func predictedLabel(p float64) int {
	if p >= 0.5 {
		return PositiveLabel
	}
	return NegativeLabel
}
