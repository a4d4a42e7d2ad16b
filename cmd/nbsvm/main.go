package main

import (
	"context"
	"flag"
	"log"
	"os"

	nbsvm "github.com/slz4025/10-315-kaggle-sentiment"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config file")
		trainDir   = flag.String("train", "", "training corpus directory (overrides config)")
		testDir    = flag.String("test", "", "test corpus directory (overrides config)")
		epochs     = flag.Int("epochs", 0, "number of training epochs (overrides config)")
		saveDir    = flag.String("save", "", "directory to write the trained model to")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "nbsvm ", log.LstdFlags)

	config := nbsvm.DefaultConfig()
	if *configPath != "" {
		var err error
		config, err = nbsvm.LoadConfig(*configPath)
		if err != nil {
			logger.Fatalf("[ERROR] %v", err)
		}
	}
	if *trainDir != "" {
		config.Data.TrainDir = *trainDir
	}
	if *testDir != "" {
		config.Data.TestDir = *testDir
	}
	if *epochs > 0 {
		config.Training.Epochs = *epochs
	}
	if config.Data.TrainDir == "" || config.Data.TestDir == "" {
		logger.Fatalf("[ERROR] train and test corpus directories are required (use -train/-test or a config file)")
	}

	experiment := nbsvm.NewExperiment(config)
	experiment.ProgressCallback = func(epoch int, loss, accuracy float64) {
		logger.Printf("[INFO] run %s epoch %d: loss=%.4f accuracy=%.4f", experiment.RunID, epoch+1, loss, accuracy)
	}

	logger.Printf("[INFO] starting run %s", experiment.RunID)
	result, err := experiment.Run(context.Background())
	if err != nil {
		logger.Fatalf("[ERROR] %v", err)
	}

	logger.Printf("[INFO] train corpus: %d documents (%d pos / %d neg), %d tokens, %d sentences",
		result.TrainStats.Documents, result.TrainStats.Positive, result.TrainStats.Negative,
		result.TrainStats.Tokens, result.TrainStats.Sentences)
	logger.Printf("[INFO] test corpus: %d documents (%d pos / %d neg)",
		result.TestStats.Documents, result.TestStats.Positive, result.TestStats.Negative)
	logger.Printf("[INFO] vocabulary: %d terms", result.VocabSize)
	logger.Printf("[INFO] training finished in %s after %d epochs",
		result.Metrics.TrainingTime, result.Metrics.EpochsCompleted)
	logger.Printf("[INFO] test accuracy=%.4f loss=%.4f precision=%.4f recall=%.4f f1=%.4f",
		result.Test.Accuracy, result.Test.Loss, result.Test.Precision, result.Test.Recall, result.Test.F1Score)

	if *saveDir != "" {
		if err := result.Model.Write(*saveDir); err != nil {
			logger.Fatalf("[ERROR] save model: %v", err)
		}
		logger.Printf("[INFO] model written to %s", *saveDir)
	}
}
