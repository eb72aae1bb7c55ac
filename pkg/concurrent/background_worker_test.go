package concurrent

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackgroundWorker(t *testing.T) {
	t.Run("processes every job", func(t *testing.T) {
		var mu sync.Mutex
		sum := 0
		bw := NewBackgroundWorker[[]int](4, 8, func(batch []int) error {
			mu.Lock()
			defer mu.Unlock()
			for _, v := range batch {
				sum += v
			}
			return nil
		})
		bw.Start()
		for i := 0; i < 100; i++ {
			bw.TriggerProcessing([]int{i, 1})
		}
		assert.NoError(t, bw.Close())
		assert.Equal(t, 4950+100, sum)
	})

	t.Run("collects errors", func(t *testing.T) {
		errOdd := errors.New("odd job")
		bw := NewBackgroundWorker[int](2, 0, func(job int) error {
			if job%2 == 1 {
				return errOdd
			}
			return nil
		})
		bw.Start()
		for i := 0; i < 6; i++ {
			bw.TriggerProcessing(i)
		}
		err := bw.Close()
		assert.ErrorIs(t, err, errOdd)
	})
}
