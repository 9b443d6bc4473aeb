// Package cmap provides a sharded map safe for concurrent use.
//
// Each shard owns an RWMutex, so requests keyed by different clients
// rarely contend. The HTTP rate limiter keeps one token bucket per
// client IP here.
//
//	m := cmap.New[string, *rate.Limiter]()
//	l, _ := m.GetOrCompute(ip, newLimiter)
//	m.DeleteFunc(isIdle)
package cmap
