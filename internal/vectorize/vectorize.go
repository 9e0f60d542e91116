// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vectorize builds a TF-IDF vector space over one job description
// and its candidate resumes.
//
// The space is rebuilt from scratch on every call to Fit: vocabulary, document
// frequencies, and vectors belong to a single scoring run and are never
// shared. Weighting matches the common smoothed TF-IDF scheme:
//
//	tf(t, d)  = count of t in d
//	idf(t)    = ln((1 + n) / (1 + df(t))) + 1
//	w(t, d)   = tf(t, d) * idf(t), then L2-normalized per document
//
// where n counts the query plus all documents.
package vectorize

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrEmptyCorpus is returned when the query and every document together
// contain no usable term.
var ErrEmptyCorpus = errors.New("empty corpus: no terms left after normalization")

// MinTermLength is the shortest token, in runes, admitted to the vocabulary.
const MinTermLength = 2

// Vector is a sparse, L2-normalized weight vector over a Space's vocabulary.
// Indices are strictly increasing.
type Vector struct {
	Indices []int
	Weights []float64
}

// Len returns the number of non-zero entries.
func (v Vector) Len() int { return len(v.Indices) }

// IsZero reports whether the vector has no non-zero weight.
func (v Vector) IsZero() bool { return len(v.Indices) == 0 }

// Weight returns the weight at vocabulary index i, or 0.
func (v Vector) Weight(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Weights[k]
	}
	return 0
}

// Dot returns the inner product of two vectors over the same vocabulary.
// For L2-normalized vectors this is their cosine similarity.
func (v Vector) Dot(o Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Weights[i] * o.Weights[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, w := range v.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Space is the shared vector space of one scoring run.
type Space struct {
	// Vocabulary lists every term in the run, sorted. A vector index i refers
	// to Vocabulary[i].
	Vocabulary []string

	// IDF holds the inverse document frequency of each vocabulary term.
	IDF []float64

	// Query is the job description's vector.
	Query Vector

	// Docs holds one vector per input document, in input order.
	Docs []Vector
}

// Term returns the vocabulary term at index i.
func (s *Space) Term(i int) string { return s.Vocabulary[i] }

// Fit builds the vector space for a normalized query and normalized
// documents. Documents keep their input order in Space.Docs.
func Fit(query string, docs []string) (*Space, error) {
	counts := make([]map[string]int, 0, len(docs)+1)
	counts = append(counts, termCounts(query))
	for _, d := range docs {
		counts = append(counts, termCounts(d))
	}

	df := make(map[string]int)
	for _, c := range counts {
		for t := range c {
			df[t]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyCorpus
	}

	vocab := make([]string, 0, len(df))
	for t := range df {
		vocab = append(vocab, t)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(counts))
	for i, t := range vocab {
		index[t] = i
		idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]Vector, len(counts))
	for i, c := range counts {
		vectors[i] = weigh(c, vocab, index, idf)
	}

	return &Space{
		Vocabulary: vocab,
		IDF:        idf,
		Query:      vectors[0],
		Docs:       vectors[1:],
	}, nil
}

// termCounts splits normalized text on whitespace and counts terms of at
// least MinTermLength runes.
func termCounts(text string) map[string]int {
	c := make(map[string]int)
	for _, t := range strings.Fields(text) {
		if utf8.RuneCountInString(t) >= MinTermLength {
			c[t]++
		}
	}
	return c
}

// weigh turns raw term counts into an L2-normalized TF-IDF vector.
func weigh(counts map[string]int, vocab []string, index map[string]int, idf []float64) Vector {
	if len(counts) == 0 {
		return Vector{}
	}
	idx := make([]int, 0, len(counts))
	for t := range counts {
		idx = append(idx, index[t])
	}
	sort.Ints(idx)

	v := Vector{Indices: idx, Weights: make([]float64, len(idx))}
	for k, i := range idx {
		v.Weights[k] = float64(counts[vocab[i]]) * idf[i]
	}

	if norm := v.Norm(); norm > 0 {
		for k := range v.Weights {
			v.Weights[k] /= norm
		}
	}
	return v
}
