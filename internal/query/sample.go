package query

import "math/rand"

// SamplePositions draws min(k, n) distinct positions from [0, n) uniformly
// at random using a partial Fisher-Yates shuffle. intN must return a uniform
// integer in [0, m); nil uses math/rand.
func SamplePositions(n, k int, intN func(int) int) []int {
	if intN == nil {
		intN = rand.Intn
	}
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + intN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Sample picks min(k, len(docs)) records from one materialized result set.
func Sample(docs []Document, k int, intN func(int) int) []Document {
	positions := SamplePositions(len(docs), k, intN)
	out := make([]Document, len(positions))
	for i, p := range positions {
		out[i] = docs[p]
	}
	return out
}
