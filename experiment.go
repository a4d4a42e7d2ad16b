package nbsvm

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/tebeka/snowball"
)

// An Experiment wires the full pipeline together: load the labeled corpora,
// fit the n-gram vocabulary on the training split, turn both splits into
// fixed-length term-ID sequences, compute the naive Bayes log-count ratios,
// and train and evaluate the model.
type Experiment struct {
	Config Config
	RunID  string

	// ProgressCallback, if set, receives per-epoch training progress.
	ProgressCallback func(epoch int, loss float64, accuracy float64)
}

// Result collects everything a finished run produced.
type Result struct {
	RunID      string
	TrainStats CorpusStats
	TestStats  CorpusStats
	VocabSize  int
	Metrics    TrainingMetrics
	Test       ValidationResult
	Model      *Model
}

// NewExperiment creates an experiment with a fresh ULID run identifier.
func NewExperiment(config Config) *Experiment {
	return &Experiment{
		Config: config,
		RunID:  ulid.Make().String(),
	}
}

// Run executes the pipeline end to end.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if err := e.Config.Validate(); err != nil {
		return nil, err
	}

	tokenizer, cleanup, err := e.buildTokenizer()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	train, err := LoadCorpus(e.Config.Data.TrainDir)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}
	test, err := LoadCorpus(e.Config.Data.TestDir)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}

	result := &Result{RunID: e.RunID}
	if result.TrainStats, err = SummarizeCorpus(train, tokenizer); err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}
	if result.TestStats, err = SummarizeCorpus(test, tokenizer); err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}

	vectorizer := NewCountVectorizer(
		WithMaxFeatures(e.Config.Vectorizer.MaxFeatures),
		WithNgramRange(e.Config.Vectorizer.NgramMin, e.Config.Vectorizer.NgramMax),
		WithTokenizer(tokenizer),
	)

	trainVecs, err := vectorizer.FitTransform(texts(train))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}
	testVecs, err := vectorizer.Transform(texts(test))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}
	result.VocabSize = vectorizer.VocabSize()

	trainLabels := labels(train)
	ratios, err := LogCountRatios(Binarize(trainVecs), trainLabels, vectorizer.VocabSize())
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}

	trainingConfig := e.Config.TrainingConfig()
	trainingConfig.Context = ctx
	trainingConfig.ProgressCallback = e.ProgressCallback
	trainer := NewTrainer(trainingConfig)

	model := NewModel(ratios, trainingConfig.Seed)
	seqLen := e.Config.SequenceLength

	result.Metrics, err = trainer.Train(model, EncodeSequences(trainVecs, seqLen), trainLabels)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}
	result.Test, err = trainer.Evaluate(model, EncodeSequences(testVecs, seqLen), labels(test))
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", e.RunID, err)
	}
	result.Model = model

	return result, nil
}

// buildTokenizer assembles the tokenizer from the vectorizer config. The
// returned cleanup releases the snowball stemmer, which holds C resources.
func (e *Experiment) buildTokenizer() (Tokenizer, func(), error) {
	opts := []TokenizerOptFunc{}
	cleanup := func() {}

	if lang := e.Config.Vectorizer.Stopwords; lang != "" {
		opts = append(opts, UsingStopwords(lang))
	}
	if lang := e.Config.Vectorizer.StemLanguage; lang != "" {
		stemmer, err := snowball.New(lang)
		if err != nil {
			return nil, nil, fmt.Errorf("create %q stemmer: %w", lang, err)
		}
		opts = append(opts, UsingStemmer(stemmer))
		cleanup = func() { stemmer.Close() }
	}

	return NewWordTokenizer(opts...), cleanup, nil
}

func texts(docs []Document) []string {
	out := make([]string, len(docs))
	for i, doc := range docs {
		out[i] = doc.Text
	}
	return out
}

func labels(docs []Document) []int {
	out := make([]int, len(docs))
	for i, doc := range docs {
		out[i] = doc.Label
	}
	return out
}
