package cryptox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPepperConcurrent(t *testing.T) {
	const goroutines = 8

	peppers := make([]string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			peppers[i] = GetPepper()
		}(i)
	}
	wg.Wait()

	// Every caller observes the same fully-initialized pepper.
	require.NotEmpty(t, peppers[0])
	for _, p := range peppers {
		require.Equal(t, peppers[0], p)
	}
}
