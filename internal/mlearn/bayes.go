package mlearn

import (
	"math"
	"sort"
)

// Classifier is a fitted multi-class model over feature vectors.
type Classifier interface {
	Fit(vectors [][]float64, classes []string)
	Predict(vector []float64) string
}

// Multinomial is a multinomial naive Bayes classifier with add-one
// smoothing. Class order is sorted so fitting is deterministic and ties
// at prediction time always resolve the same way.
type Multinomial struct {
	Classes  []string    `json:"classes"`
	LogPrior []float64   `json:"log_prior"`
	LogProb  [][]float64 `json:"log_prob"`
}

// NewMultinomial returns an unfitted classifier.
func NewMultinomial() *Multinomial {
	return &Multinomial{}
}

// Fit estimates per-class priors and feature log-probabilities.
// vectors and classes are parallel; vectors must share one length.
func (m *Multinomial) Fit(vectors [][]float64, classes []string) {
	classSet := make(map[string]bool)
	for _, c := range classes {
		classSet[c] = true
	}
	m.Classes = make([]string, 0, len(classSet))
	for c := range classSet {
		m.Classes = append(m.Classes, c)
	}
	sort.Strings(m.Classes)

	idx := make(map[string]int, len(m.Classes))
	for i, c := range m.Classes {
		idx[c] = i
	}

	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}

	counts := make([]float64, len(m.Classes))
	featSums := make([][]float64, len(m.Classes))
	for i := range featSums {
		featSums[i] = make([]float64, dim)
	}
	for i, vec := range vectors {
		c := idx[classes[i]]
		counts[c]++
		for j, x := range vec {
			featSums[c][j] += x
		}
	}

	total := float64(len(vectors))
	m.LogPrior = make([]float64, len(m.Classes))
	m.LogProb = make([][]float64, len(m.Classes))
	for c := range m.Classes {
		m.LogPrior[c] = math.Log(counts[c] / total)
		m.LogProb[c] = make([]float64, dim)
		var sum float64
		for j := range featSums[c] {
			sum += featSums[c][j] + 1
		}
		for j := range featSums[c] {
			m.LogProb[c][j] = math.Log((featSums[c][j] + 1) / sum)
		}
	}
}

// Predict returns the most probable class for a vector. The vector must
// come from the vectorizer this classifier was fitted with; dimension
// mismatches are a pairing bug upstream.
func (m *Multinomial) Predict(vector []float64) string {
	best := 0
	bestScore := math.Inf(-1)
	for c := range m.Classes {
		score := m.LogPrior[c]
		for j, x := range vector {
			if x != 0 {
				score += x * m.LogProb[c][j]
			}
		}
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if len(m.Classes) == 0 {
		return ""
	}
	return m.Classes[best]
}
