package asif

import "sync"

// forEachChannel calls fn once per channel index. With parallel set and more
// than one channel, the calls run concurrently and forEachChannel waits for all
// of them. fn must only touch state owned by its channel.
func forEachChannel(channels int, parallel bool, fn func(ch int)) {
	if !parallel || channels <= monoChannels {
		for ch := range channels {
			fn(ch)
		}
		return
	}

	var wg sync.WaitGroup
	for ch := range channels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()
			fn(channel)
		}(ch)
	}
	wg.Wait()
}
