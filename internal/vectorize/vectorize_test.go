// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vectorize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitEmptyCorpus(t *testing.T) {
	tests := []struct {
		name  string
		query string
		docs  []string
	}{
		{"all empty", "", []string{"", ""}},
		{"no documents and empty query", "", nil},
		{"single-rune tokens only", "a b", []string{"c", "x y z"}},
		{"whitespace only", "   ", []string{"\n\t"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			space, err := Fit(tt.query, tt.docs)
			assert.ErrorIs(t, err, ErrEmptyCorpus)
			assert.Nil(t, space)
		})
	}
}

func TestFitVocabulary(t *testing.T) {
	space, err := Fit("python django", []string{"django flask", "go python x"})
	require.NoError(t, err)

	assert.Equal(t, []string{"django", "flask", "go", "python"}, space.Vocabulary)
	assert.Len(t, space.Docs, 2)
	assert.Len(t, space.IDF, 4)
	assert.Equal(t, "go", space.Term(2))
}

func TestFitIDF(t *testing.T) {
	// n = 3 (query + two documents).
	space, err := Fit("shared only", []string{"shared", "shared"})
	require.NoError(t, err)

	idf := map[string]float64{}
	for i, term := range space.Vocabulary {
		idf[term] = space.IDF[i]
	}
	assert.InDelta(t, 1.0, idf["shared"], 1e-12)
	assert.InDelta(t, math.Log(4.0/2.0)+1, idf["only"], 1e-12)
}

func TestFitNormalizedVectors(t *testing.T) {
	space, err := Fit("python python developer", []string{
		"python developer django",
		"marketing specialist social media",
		"",
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, space.Query.Norm(), 1e-9)
	assert.InDelta(t, 1.0, space.Docs[0].Norm(), 1e-9)
	assert.InDelta(t, 1.0, space.Docs[1].Norm(), 1e-9)
	assert.True(t, space.Docs[2].IsZero())
	assert.Zero(t, space.Query.Dot(space.Docs[2]))
}

func TestFitTermFrequencyWeighting(t *testing.T) {
	space, err := Fit("python python developer", []string{"python developer"})
	require.NoError(t, err)

	// Both terms appear in both texts, so idf is 1 and weights follow counts.
	py := space.Query.Weight(indexOf(t, space, "python"))
	dev := space.Query.Weight(indexOf(t, space, "developer"))
	assert.InDelta(t, 2*dev, py, 1e-12)
}

func TestSelfSimilarity(t *testing.T) {
	q := "senior golang engineer kubernetes terraform"
	space, err := Fit(q, []string{q, "golang"})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, space.Query.Dot(space.Docs[0]), 1e-9)
	assert.Less(t, space.Query.Dot(space.Docs[1]), 1.0)
}

func TestFitOrderIndependent(t *testing.T) {
	q := "python developer django experience"
	a := "python developer years django flask"
	b := "marketing specialist social media"
	c := "django rest api developer"

	s1, err := Fit(q, []string{a, b, c})
	require.NoError(t, err)
	s2, err := Fit(q, []string{c, a, b})
	require.NoError(t, err)

	assert.InDelta(t, s1.Query.Dot(s1.Docs[0]), s2.Query.Dot(s2.Docs[1]), 1e-12)
	assert.InDelta(t, s1.Query.Dot(s1.Docs[1]), s2.Query.Dot(s2.Docs[2]), 1e-12)
	assert.InDelta(t, s1.Query.Dot(s1.Docs[2]), s2.Query.Dot(s2.Docs[0]), 1e-12)
}

func TestVectorDotAndWeight(t *testing.T) {
	v := Vector{Indices: []int{0, 2, 5}, Weights: []float64{0.5, 0.25, 1}}
	o := Vector{Indices: []int{1, 2, 5, 7}, Weights: []float64{9, 2, 3, 9}}

	assert.InDelta(t, 0.25*2+1*3, v.Dot(o), 1e-12)
	assert.InDelta(t, v.Dot(o), o.Dot(v), 1e-12)
	assert.Equal(t, 0.25, v.Weight(2))
	assert.Zero(t, v.Weight(3))
	assert.Zero(t, v.Weight(99))
	assert.Equal(t, 3, v.Len())
	assert.Zero(t, Vector{}.Dot(v))
}

func indexOf(t *testing.T, s *Space, term string) int {
	t.Helper()
	for i, v := range s.Vocabulary {
		if v == term {
			return i
		}
	}
	t.Fatalf("term %q not in vocabulary", term)
	return -1
}
