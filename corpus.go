package nbsvm

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"gopkg.in/neurosnap/sentences.v1/english"
)

// Class subdirectory names expected under each split directory.
const (
	posDirName = "pos"
	negDirName = "neg"
)

// LoadCorpusFS reads a labeled corpus from root within fsys. The directory
// must contain "pos" and "neg" subdirectories with one text file per
// document. Negative documents come first in the returned slice; callers
// that care about order should shuffle.
func LoadCorpusFS(fsys fs.FS, root string) ([]Document, error) {
	var docs []Document

	for _, class := range []struct {
		dir   string
		label int
	}{
		{negDirName, NegativeLabel},
		{posDirName, PositiveLabel},
	} {
		dir := path.Join(root, class.dir)
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("read class directory %q: %w", dir, err)
		}

		// ReadDir sorts by filename, but sort defensively so corpus order
		// is stable across fs.FS implementations.
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Name() < entries[j].Name()
		})

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := path.Join(dir, entry.Name())
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("read document %q: %w", name, err)
			}
			docs = append(docs, Document{Text: string(data), Label: class.label})
		}
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents under %q: %w", root, ErrEmptyCorpus)
	}
	return docs, nil
}

// LoadCorpus reads a labeled corpus from a directory on disk.
func LoadCorpus(dir string) ([]Document, error) {
	return LoadCorpusFS(os.DirFS(dir), ".")
}

// LoadSplitFS reads "train" and "test" corpora laid out under root.
func LoadSplitFS(fsys fs.FS, root string) (train, test []Document, err error) {
	train, err = LoadCorpusFS(fsys, path.Join(root, "train"))
	if err != nil {
		return nil, nil, fmt.Errorf("load train split: %w", err)
	}
	test, err = LoadCorpusFS(fsys, path.Join(root, "test"))
	if err != nil {
		return nil, nil, fmt.Errorf("load test split: %w", err)
	}
	return train, test, nil
}

// LoadSplit reads train and test corpora from a directory on disk.
func LoadSplit(dir string) (train, test []Document, err error) {
	return LoadSplitFS(os.DirFS(dir), ".")
}

// SummarizeCorpus computes per-class document counts along with token and
// sentence totals. Sentence boundaries come from the punkt English model.
func SummarizeCorpus(docs []Document, tokenizer Tokenizer) (CorpusStats, error) {
	stats := CorpusStats{Documents: len(docs)}

	segmenter, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return stats, fmt.Errorf("load sentence tokenizer: %w", err)
	}

	for _, doc := range docs {
		switch doc.Label {
		case PositiveLabel:
			stats.Positive++
		case NegativeLabel:
			stats.Negative++
		default:
			return stats, fmt.Errorf("document label %d: %w", doc.Label, ErrBadLabel)
		}
		stats.Tokens += len(tokenizer.Tokenize(doc.Text))
		stats.Sentences += len(segmenter.Tokenize(doc.Text))
	}

	return stats, nil
}
