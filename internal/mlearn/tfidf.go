// Package mlearn provides the text-vectorization and classification
// capabilities behind the training pipeline: a TF-IDF vectorizer with a
// bounded vocabulary and a multinomial naive Bayes classifier. Both are
// plain serializable structs so a fitted pair can be persisted and
// reloaded as a matched unit.
package mlearn

import (
	"math"
	"sort"
)

// Vectorizer is a fitted transform from raw text to fixed-length numeric
// feature vectors.
type Vectorizer interface {
	Fit(docs []string)
	Transform(doc string) []float64
	Dim() int
}

// TFIDF is a term-frequency/inverse-document-frequency vectorizer capped
// at MaxFeatures vocabulary terms (the top terms by document frequency).
type TFIDF struct {
	MaxFeatures int            `json:"max_features"`
	Vocab       map[string]int `json:"vocab"`
	IDF         []float64      `json:"idf"`
}

// NewTFIDF returns an unfitted vectorizer with the given vocabulary cap.
func NewTFIDF(maxFeatures int) *TFIDF {
	return &TFIDF{MaxFeatures: maxFeatures}
}

// Fit builds the vocabulary and IDF weights from the training documents.
// Term selection is deterministic: ties in document frequency break
// alphabetically.
func (v *TFIDF) Fit(docs []string) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
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
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		terms = terms[:v.MaxFeatures]
	}

	n := float64(len(docs))
	v.Vocab = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, t := range terms {
		v.Vocab[t] = i
		// Smoothed IDF; never zero, so every vocabulary term contributes.
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
}

// Transform maps a document onto the fitted vocabulary. Terms outside
// the vocabulary are ignored; the result is L2-normalized.
func (v *TFIDF) Transform(doc string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, tok := range tokenize(doc) {
		if i, ok := v.Vocab[tok]; ok {
			vec[i]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= v.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Dim returns the fitted vector length.
func (v *TFIDF) Dim() int { return len(v.IDF) }
