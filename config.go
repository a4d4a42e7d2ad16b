package nbsvm

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full experiment configuration.
type Config struct {
	Data struct {
		TrainDir string `yaml:"train_dir"`
		TestDir  string `yaml:"test_dir"`
	} `yaml:"data"`

	Vectorizer struct {
		MaxFeatures  int    `yaml:"max_features"`
		NgramMin     int    `yaml:"ngram_min"`
		NgramMax     int    `yaml:"ngram_max"`
		Stopwords    string `yaml:"stopwords"`     // ISO 639-1 code, empty to keep stop words
		StemLanguage string `yaml:"stem_language"` // snowball language name, empty to skip stemming
	} `yaml:"vectorizer"`

	SequenceLength int `yaml:"sequence_length"`

	Training struct {
		Epochs          int     `yaml:"epochs"`
		LearningRate    float64 `yaml:"learning_rate"`
		BatchSize       int     `yaml:"batch_size"`
		ValidationSplit float64 `yaml:"validation_split"`
		EarlyStopping   bool    `yaml:"early_stopping"`
		Patience        int     `yaml:"patience"`
		Seed            int64   `yaml:"seed"`
	} `yaml:"training"`
}

// DefaultConfig mirrors the original movie-review experiment: 1-3 gram
// vocabulary capped at 200,000 terms, sequences of 2,000 IDs, three epochs.
func DefaultConfig() Config {
	var c Config
	c.Vectorizer.MaxFeatures = 200000
	c.Vectorizer.NgramMin = 1
	c.Vectorizer.NgramMax = 3
	c.SequenceLength = 2000

	t := DefaultTrainingConfig()
	c.Training.Epochs = t.Epochs
	c.Training.LearningRate = t.LearningRate
	c.Training.BatchSize = t.BatchSize
	c.Training.ValidationSplit = t.ValidationSplit
	c.Training.EarlyStopping = t.EarlyStopping
	c.Training.Patience = t.Patience
	c.Training.Seed = t.Seed
	return c
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("unable to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("unable to unmarshal config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Vectorizer.MaxFeatures < 1:
		return fmt.Errorf("%w: max_features must be positive", ErrInvalidConfig)
	case c.Vectorizer.NgramMin < 1:
		return fmt.Errorf("%w: ngram_min must be at least 1", ErrInvalidConfig)
	case c.Vectorizer.NgramMax < c.Vectorizer.NgramMin:
		return fmt.Errorf("%w: ngram_max must be at least ngram_min", ErrInvalidConfig)
	case c.SequenceLength < 1:
		return fmt.Errorf("%w: sequence_length must be positive", ErrInvalidConfig)
	case c.Training.Epochs < 1:
		return fmt.Errorf("%w: epochs must be positive", ErrInvalidConfig)
	case c.Training.LearningRate <= 0:
		return fmt.Errorf("%w: learning_rate must be positive", ErrInvalidConfig)
	case c.Training.ValidationSplit < 0 || c.Training.ValidationSplit >= 1:
		return fmt.Errorf("%w: validation_split must be in [0, 1)", ErrInvalidConfig)
	}
	return nil
}

// TrainingConfig converts the training section into a TrainingConfig.
func (c Config) TrainingConfig() TrainingConfig {
	t := DefaultTrainingConfig()
	t.Epochs = c.Training.Epochs
	t.LearningRate = c.Training.LearningRate
	t.BatchSize = c.Training.BatchSize
	t.ValidationSplit = c.Training.ValidationSplit
	t.EarlyStopping = c.Training.EarlyStopping
	t.Patience = c.Training.Patience
	t.Seed = c.Training.Seed
	return t
}
