package nbsvm

import (
	"errors"
	"testing"
	"testing/fstest"
)

func reviewFS() fstest.MapFS {
	return fstest.MapFS{
		"train/pos/0.txt": {Data: []byte("a wonderful film")},
		"train/pos/1.txt": {Data: []byte("truly great acting")},
		"train/neg/0.txt": {Data: []byte("a terrible film")},
		"test/pos/0.txt":  {Data: []byte("loved it")},
		"test/neg/0.txt":  {Data: []byte("hated it")},
		"test/neg/1.txt":  {Data: []byte("dull and slow")},
	}
}

func TestLoadCorpusFS(t *testing.T) {
	docs, err := LoadCorpusFS(reviewFS(), "train")
	if err != nil {
		t.Fatalf("LoadCorpusFS failed: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("loaded %d documents, want 3", len(docs))
	}

	// Negative class is read first, files in name order.
	if docs[0].Label != NegativeLabel || docs[0].Text != "a terrible film" {
		t.Errorf("unexpected first document: %+v", docs[0])
	}
	if docs[1].Label != PositiveLabel || docs[1].Text != "a wonderful film" {
		t.Errorf("unexpected second document: %+v", docs[1])
	}
}

func TestLoadSplitFS(t *testing.T) {
	train, test, err := LoadSplitFS(reviewFS(), ".")
	if err != nil {
		t.Fatalf("LoadSplitFS failed: %v", err)
	}
	if len(train) != 3 || len(test) != 3 {
		t.Errorf("got %d train / %d test documents, want 3 / 3", len(train), len(test))
	}
}

func TestLoadCorpusMissingClassDir(t *testing.T) {
	fsys := fstest.MapFS{
		"data/pos/0.txt": {Data: []byte("positive only")},
	}
	if _, err := LoadCorpusFS(fsys, "data"); err == nil {
		t.Error("expected error when a class directory is missing")
	}
}

func TestSummarizeCorpus(t *testing.T) {
	docs := []Document{
		{Text: "A fine film. Truly fine.", Label: PositiveLabel},
		{Text: "Dreadful.", Label: NegativeLabel},
	}

	stats, err := SummarizeCorpus(docs, NewWordTokenizer())
	if err != nil {
		t.Fatalf("SummarizeCorpus failed: %v", err)
	}

	if stats.Documents != 2 || stats.Positive != 1 || stats.Negative != 1 {
		t.Errorf("unexpected class counts: %+v", stats)
	}
	if stats.Tokens != 6 {
		t.Errorf("Tokens = %d, want 6", stats.Tokens)
	}
	if stats.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", stats.Sentences)
	}
}

func TestSummarizeCorpusBadLabel(t *testing.T) {
	docs := []Document{{Text: "whatever", Label: 7}}
	if _, err := SummarizeCorpus(docs, NewWordTokenizer()); !errors.Is(err, ErrBadLabel) {
		t.Errorf("expected ErrBadLabel, got %v", err)
	}
}
