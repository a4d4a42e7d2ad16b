package nbsvm

import (
	"strings"
	"unicode"

	"github.com/bbalet/stopwords"
	"github.com/tebeka/snowball"
)

// A Tokenizer splits raw text into lowercase word tokens.
type Tokenizer interface {
	Tokenize(string) []string
}

// wordTokenizer splits text into lowercase alphanumeric words.
type wordTokenizer struct {
	sanitizer    *strings.Replacer
	stopwordLang string
	stemmer      *snowball.Stemmer
}

type TokenizerOptFunc func(*wordTokenizer)

// UsingSanitizer replaces the default character sanitizer.
func UsingSanitizer(x *strings.Replacer) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.sanitizer = x
	}
}

// UsingStopwords drops stop words for the given ISO 639-1 language code.
func UsingStopwords(lang string) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.stopwordLang = lang
	}
}

// UsingStemmer stems each token with the provided snowball stemmer.
func UsingStemmer(x *snowball.Stemmer) TokenizerOptFunc {
	return func(tokenizer *wordTokenizer) {
		tokenizer.stemmer = x
	}
}

// Constructor for the default wordTokenizer
func NewWordTokenizer(opts ...TokenizerOptFunc) *wordTokenizer {
	tok := new(wordTokenizer)
	tok.sanitizer = defaultSanitizer

	for _, applyOpt := range opts {
		applyOpt(tok)
	}

	return tok
}

// Tokenize splits text into lowercase word tokens. Punctuation is treated as
// a separator; intra-word apostrophes are kept so contractions survive as a
// single token ("don't").
func (t *wordTokenizer) Tokenize(text string) []string {
	clean := strings.ToLower(t.sanitizer.Replace(text))

	var tokens []string
	var word []rune
	runes := []rune(clean)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word = append(word, r)
		case r == '\'' && len(word) > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			word = append(word, r)
		default:
			tokens = t.appendToken(string(word), tokens)
			word = word[:0]
		}
	}
	tokens = t.appendToken(string(word), tokens)

	return tokens
}

func (t *wordTokenizer) appendToken(s string, toks []string) []string {
	if s == "" {
		return toks
	}
	if t.stopwordLang != "" {
		// CleanString returns an empty string when every word in the input
		// is a stop word.
		if strings.TrimSpace(stopwords.CleanString(s, t.stopwordLang, false)) == "" {
			return toks
		}
	}
	if t.stemmer != nil {
		s = t.stemmer.Stem(s)
	}
	return append(toks, s)
}

// Ngrams expands a token slice into all contiguous n-grams with n in
// [minN, maxN], joined by single spaces. Order follows n-gram size first,
// then position.
func Ngrams(tokens []string, minN, maxN int) []string {
	if minN < 1 {
		minN = 1
	}
	if maxN < minN {
		maxN = minN
	}

	var grams []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}
	return grams
}

var defaultSanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'",
	"<br />", " ",
	"<br/>", " ",
	"<br>", " ")
