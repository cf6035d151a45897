package classify

import (
	"math"
	"regexp"
	"sort"
)

// tokenPattern matches runs of two or more word characters
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize splits normalized text into terms
func Tokenize(normalized string) []string {
	return tokenPattern.FindAllString(normalized, -1)
}

// Vectorizer projects text into a fixed TF-IDF space built from a corpus
type Vectorizer struct {
	index map[string]int
	terms []string
	idf   []float64
}

// FitVectorizer builds the vocabulary and smoothed IDF weights.
// idf(t) = ln((1+n) / (1+df(t))) + 1
func FitVectorizer(docs []string) *Vectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v := &Vectorizer{
		index: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
	}
	for i, t := range terms {
		v.index[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return v
}

// Size returns the vocabulary size
func (v *Vectorizer) Size() int {
	return len(v.terms)
}

// Terms returns the vocabulary in index order
func (v *Vectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Transform returns the L2-normalized TF-IDF vector of normalized text and
// the number of in-vocabulary tokens seen. Out-of-vocabulary terms are dropped.
func (v *Vectorizer) Transform(normalized string) ([]float64, int) {
	vec := make([]float64, len(v.terms))
	known := 0
	for _, tok := range Tokenize(normalized) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
			known++
		}
	}
	if known == 0 {
		return vec, 0
	}

	var norm float64
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec, known
}
