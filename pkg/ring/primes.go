package ring

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// primeCache memoizes nextPrimeAtLeast results process-wide: several
// Maglev rings built concurrently with the same capacity hint (a
// realistic pattern for a benchmark driver constructing one ring per
// worker) share a single sieve instead of repeating it.
var (
	primeCacheMu sync.Mutex
	primeCache   = make(map[int]uint64)
	primeGroup   singleflight.Group
)

// nextPrimeAtLeast returns the smallest prime >= hint. hint must be
// at least 1. By Bertrand's postulate a prime always exists in
// [hint, 2*hint], so a sieve up to 2*hint always terminates with an
// answer.
func nextPrimeAtLeast(hint int) (uint64, error) {
	if hint < 1 {
		return 0, ErrInvalidConfig
	}

	primeCacheMu.Lock()
	if p, ok := primeCache[hint]; ok {
		primeCacheMu.Unlock()
		return p, nil
	}
	primeCacheMu.Unlock()

	v, err, _ := primeGroup.Do(strconv.Itoa(hint), func() (interface{}, error) {
		p := sievePrimeAtLeast(hint)
		primeCacheMu.Lock()
		primeCache[hint] = p
		primeCacheMu.Unlock()
		return p, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

// sievePrimeAtLeast runs a sieve of Eratosthenes up to 2*hint and
// returns the smallest prime >= hint.
func sievePrimeAtLeast(hint int) uint64 {
	limit := hint * 2
	if limit < 2 {
		limit = 2
	}

	composite := make([]bool, limit+1)
	for i := 2; i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}

	for i := hint; i <= limit; i++ {
		if i >= 2 && !composite[i] {
			return uint64(i)
		}
	}
	// Unreachable for hint >= 1 by Bertrand's postulate.
	return uint64(limit)
}
