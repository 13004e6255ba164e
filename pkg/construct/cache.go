package construct

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/joeydtaylor/steeze-runtime/pkg/catalog"
	"golang.org/x/sync/singleflight"
)

// handleKey identifies one resolution: the strategy instance owning the cache
// fixes the strategy, so only target and argument types remain. Types are
// keyed by identity; distinct types may share a printed name.
type handleKey struct {
	target *catalog.TypeDescriptor
	types  string
}

func keyFor(target *catalog.TypeDescriptor, args []any) handleKey {
	var b strings.Builder
	for _, a := range args {
		if a == nil {
			b.WriteString("nil;")
			continue
		}
		fmt.Fprintf(&b, "%p;", reflect.TypeOf(a))
	}
	return handleKey{target: target, types: b.String()}
}

func (k handleKey) String() string { return fmt.Sprintf("%p|%s", k.target, k.types) }

// handleCache memoizes resolved handles. Concurrent first use of a key
// resolves at most once; failures are not cached.
type handleCache[H any] struct {
	mu          sync.RWMutex
	m           map[handleKey]H
	sf          singleflight.Group
	resolutions atomic.Int64
}

func newHandleCache[H any]() *handleCache[H] {
	return &handleCache[H]{m: make(map[handleKey]H)}
}

func (c *handleCache[H]) lookup(k handleKey) (H, bool) {
	c.mu.RLock()
	h, ok := c.m[k]
	c.mu.RUnlock()
	return h, ok
}

func (c *handleCache[H]) get(k handleKey, resolve func() (H, error)) (H, error) {
	if h, ok := c.lookup(k); ok {
		return h, nil
	}
	v, err, _ := c.sf.Do(k.String(), func() (any, error) {
		// a flight for k may have finished between lookup and Do
		if h, ok := c.lookup(k); ok {
			return h, nil
		}
		h, err := resolve()
		if err != nil {
			return nil, err
		}
		c.resolutions.Add(1)
		c.mu.Lock()
		c.m[k] = h
		c.mu.Unlock()
		return h, nil
	})
	if err != nil {
		var zero H
		return zero, err
	}
	return v.(H), nil
}

// Cached is implemented by strategies with a one-time resolution step.
type Cached interface {
	// Resolutions counts handle resolutions performed so far.
	Resolutions() int64
}
