package drum

import "sync"

// task fans per-item work out across workers. Each worker owns a disjoint
// index range, so fn must only touch state belonging to its item. The index is
// passed through so callers can write results into per-item slots.
// A single worker runs inline, without goroutines.
func task[T any](workersCount int, data []T, fn func(i int, data T)) {
	if workersCount <= 1 {
		for i, d := range data {
			fn(i, d)
		}
		return
	}

	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
