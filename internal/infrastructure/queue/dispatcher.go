package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/meetdesk/dashboard/internal/api/metrics"
	"github.com/meetdesk/dashboard/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Deliverer hands a notification to the open clients of a user.
type Deliverer interface {
	Deliver(userID int64, in domain.NotificationInput) int
}

type job struct {
	userID int64
	input  domain.NotificationInput
}

// Dispatcher routes notifications to a fixed set of workers using consistent
// hashing on the user id, guaranteeing per-user delivery order.
type Dispatcher struct {
	workers []chan job
	target  Deliverer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// log is used as given; callers tag it with a component.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, target Deliverer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan job, numWorkers),
		target:  target,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan job, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish queues a notification for the worker responsible for userID.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Publish(userID int64, in domain.NotificationInput) {
	idx := d.shardIndex(userID)
	d.workers[idx] <- job{userID: userID, input: in}
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan job) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			n := d.target.Deliver(j.userID, j.input)
			d.log.Debug().
				Int64("user_id", j.userID).
				Str("type", string(j.input.Type)).
				Int("clients", n).
				Int("worker_id", id).
				Msg("notification delivered")
		}
	}
}
