package service

import (
	"math/rand"

	"microservice-loadtest/internal/models"
)

// NewPayload draws n in [0, maxRandomNumber) and attaches the first n+1
// Fibonacci numbers.
func NewPayload(rng *rand.Rand, maxRandomNumber int) *models.Payload {
	n := rng.Intn(maxRandomNumber)
	return &models.Payload{
		RandNum: n,
		FibSeq:  Fibonacci(n),
	}
}

func Fibonacci(n int) []int {
	if n < 0 {
		return []int{}
	}
	seq := make([]int, n+2)
	seq[0], seq[1] = 0, 1
	for i := 2; i <= n; i++ {
		seq[i] = seq[i-1] + seq[i-2]
	}
	return seq[:n+1]
}
