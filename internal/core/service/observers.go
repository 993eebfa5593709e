package service

import "sync"

// observers is a small subscription list. Callbacks run outside the lock in
// registration order.
type observers[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
	ids  []int
}

func (o *observers[T]) add(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]func(T))
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	o.ids = append(o.ids, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			delete(o.fns, id)
			for i, v := range o.ids {
				if v == id {
					o.ids = append(o.ids[:i], o.ids[i+1:]...)
					break
				}
			}
		})
	}
}

func (o *observers[T]) notify(v T) {
	o.mu.Lock()
	fns := make([]func(T), 0, len(o.ids))
	for _, id := range o.ids {
		fns = append(fns, o.fns[id])
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
