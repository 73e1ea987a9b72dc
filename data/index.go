package data

import (
	"math"
	"sort"
	"strings"

	"github.com/giygas/magistral-api/entities"
	"github.com/giygas/magistral-api/textnorm"
)

type posting struct {
	doc    int
	weight float64
}

// lexicalIndex is an immutable TF-IDF index over a chunk slice. Document
// vectors are L2-normalised at build time so scoring is a sparse dot product.
type lexicalIndex struct {
	idf      map[string]float64
	postings map[string][]posting
	docs     int
}

func chunkText(c entities.MonographChunk) string {
	parts := []string{c.Name, c.TherapeuticClass}
	parts = append(parts, c.Indications...)
	parts = append(parts, c.Content)
	return strings.Join(parts, " ")
}

func termFrequencies(tokens []string) map[string]float64 {
	counts := make(map[string]int, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	tf := make(map[string]float64, len(counts))
	for t, n := range counts {
		tf[t] = 1 + math.Log(float64(n))
	}
	return tf
}

func buildLexicalIndex(chunks []entities.MonographChunk) *lexicalIndex {
	docTF := make([]map[string]float64, len(chunks))
	df := make(map[string]int)
	for i, c := range chunks {
		docTF[i] = termFrequencies(textnorm.Tokenize(chunkText(c)))
		for term := range docTF[i] {
			df[term]++
		}
	}

	idx := &lexicalIndex{
		idf:      make(map[string]float64, len(df)),
		postings: make(map[string][]posting, len(df)),
		docs:     len(chunks),
	}
	n := float64(len(chunks))
	for term, d := range df {
		// Smoothed so terms present in every document still count
		idx.idf[term] = math.Log(1 + n/float64(d))
	}

	for i, tf := range docTF {
		var norm float64
		for term, f := range tf {
			w := f * idx.idf[term]
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for term, f := range tf {
			idx.postings[term] = append(idx.postings[term], posting{doc: i, weight: f * idx.idf[term] / norm})
		}
	}

	return idx
}

type hit struct {
	doc        int
	similarity float64
}

// search returns up to k documents with non-zero cosine similarity to query,
// best first, ties in document order.
func (idx *lexicalIndex) search(query string, k int) []hit {
	if idx == nil || idx.docs == 0 || k <= 0 {
		return nil
	}

	qtf := termFrequencies(textnorm.Tokenize(query))
	qweights := make(map[string]float64, len(qtf))
	var qnorm float64
	for term, f := range qtf {
		idf, ok := idx.idf[term]
		if !ok {
			continue
		}
		w := f * idf
		qweights[term] = w
		qnorm += w * w
	}
	if qnorm == 0 {
		return nil
	}
	qnorm = math.Sqrt(qnorm)

	scores := make(map[int]float64)
	for term, w := range qweights {
		for _, p := range idx.postings[term] {
			scores[p.doc] += w / qnorm * p.weight
		}
	}

	hits := make([]hit, 0, len(scores))
	for doc, s := range scores {
		if s > 0 {
			hits = append(hits, hit{doc: doc, similarity: math.Min(s, 1)})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].similarity != hits[j].similarity {
			return hits[i].similarity > hits[j].similarity
		}
		return hits[i].doc < hits[j].doc
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
