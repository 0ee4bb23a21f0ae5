package wire

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// parallelChunkSize is the number of frames each worker decodes
// sequentially before the next chunk is scheduled.
const parallelChunkSize = 512

// ParallelDeserialize decodes a sequence of independently-framed
// single-record envelopes (each produced by Serialize) using a fork-join
// map over fixed-size contiguous chunks. Result order equals input order.
//
// The operation is fail-fast: the first malformed frame aborts the whole
// batch and its error, annotated with the frame index, is returned; no
// partial results are surfaced. Workers hold no shared mutable state
// beyond their own output region, so no locking guards the results.
func ParallelDeserialize[T any, P DecodablePtr[T]](frames [][]byte, order binary.ByteOrder) ([]T, error) {
	results := make([]T, len(frames))
	if len(frames) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(runtime.GOMAXPROCS(0))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
		failed   atomic.Bool
	)
	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
		failed.Store(true)
	}

	for start := 0; start < len(frames); start += parallelChunkSize {
		end := min(start+parallelChunkSize, len(frames))
		chunkStart, chunkEnd := start, end
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			for i := chunkStart; i < chunkEnd; i++ {
				if failed.Load() {
					return
				}
				var v T
				if err := Deserialize(frames[i], order, P(&v)); err != nil {
					fail(fmt.Errorf("frame %d: %w", i, err))
					return
				}
				results[i] = v
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
