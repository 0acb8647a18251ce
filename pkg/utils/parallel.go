package utils

import "sync"

// ParallelMap 以最多 concurrency 个 goroutine 并发执行 fn，结果顺序与输入一致。
// 空输入返回空 slice，单元素直接同步执行。
func ParallelMap[T, R any](input []T, concurrency int, fn func(T) R) []R {
	if len(input) == 0 {
		return nil
	}
	if len(input) == 1 || concurrency <= 1 {
		out := make([]R, 0, len(input))
		for _, item := range input {
			out = append(out, fn(item))
		}
		return out
	}

	out := make([]R, len(input))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, item := range input {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, item T) {
			defer func() {
				<-sem
				wg.Done()
			}()
			out[i] = fn(item)
		}(i, item)
	}
	wg.Wait()
	return out
}
