package vm

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/sputnick1124/uiua/internal/errorsx"
)

// Task is the handle a Spawn returns: eventually yields output Values or
// an error. One goroutine per spawned task.
type Task struct {
	id      int
	done    chan struct{}
	outputs []StackValue
	err     error
}

// Channel is a per-task-id FIFO of messages.
type Channel struct {
	mu   sync.Mutex
	cond *sync.Cond
	buf  []StackValue
}

func newChannel() *Channel {
	c := &Channel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

func (c *Channel) send(v StackValue) {
	c.mu.Lock()
	c.buf = append(c.buf, v)
	c.cond.Signal()
	c.mu.Unlock()
}

func (c *Channel) recv() StackValue {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.buf) == 0 {
		c.cond.Wait()
	}
	v := c.buf[0]
	c.buf = c.buf[1:]
	return v
}

func (c *Channel) tryRecv() (StackValue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.buf) == 0 {
		return nil, false
	}
	v := c.buf[0]
	c.buf = c.buf[1:]
	return v, true
}

// taskWorld is the state shared by a Runtime and every task it spawns
// (and their descendants): the task/channel registries and the id
// counter. Held behind a pointer so every clone in the tree mutates the
// same maps under the same lock, unlike the per-task stack/frames/memo
// state which each clone owns independently.
type taskWorld struct {
	mu       sync.Mutex
	tasks    map[int]*Task
	channels map[int]*Channel
	nextID   int32
	group    errgroup.Group
}

func newTaskWorld() *taskWorld {
	return &taskWorld{
		tasks:    make(map[int]*Task),
		channels: make(map[int]*Channel),
	}
}

// clone produces a task-local Runtime sharing this Runtime's taskWorld,
// backend, chunk, and dispatcher, with its own stack/frames/fill/memo —
// "a shallow clone of the parent's stack-top for its argument count plus
// the current fill and memo contexts".
func (rt *Runtime) clone(args []StackValue) *Runtime {
	child := &Runtime{
		cfg:        rt.cfg,
		dispatcher: rt.dispatcher,
		backend:    rt.backend,
		stack:      append([]StackValue(nil), args...),
		antistack:  make([]StackValue, 0, 64),
		frames:     make([]Frame, 0, rt.cfg.MaxFrames),
		fill:       cloneFillMap(rt.fill),
		hasFill:    cloneFlagMap(rt.hasFill),
		memo:       cloneMemo(rt.memo),
		world:      rt.world,
		chunk:      rt.chunk,
		parent:     rt,
	}
	return child
}

// Spawn forks a new task running fn with args taken from the parent's
// stack top, sharing fill/memo context by clone.
func (rt *Runtime) Spawn(fn *Function, args []StackValue) int {
	id := int(atomic.AddInt32(&rt.world.nextID, 1) - 1)
	task := &Task{id: id, done: make(chan struct{})}

	rt.world.mu.Lock()
	rt.world.tasks[id] = task
	rt.world.channels[id] = newChannel()
	rt.world.mu.Unlock()

	child := rt.clone(args)
	rt.world.group.Go(func() error {
		defer close(task.done)
		if err := child.Call(fn); err != nil {
			task.err = err
			return err
		}
		task.outputs = append([]StackValue(nil), child.stack...)
		return nil
	})
	return id
}

// Wait blocks the calling task until the target task completes, returning
// its outputs in stack-top order.
func (rt *Runtime) Wait(id int) ([]StackValue, error) {
	rt.world.mu.Lock()
	task, ok := rt.world.tasks[id]
	rt.world.mu.Unlock()
	if !ok {
		return nil, errorsx.New(errorsx.OutOfBounds, "no such task", rt.Span())
	}
	<-task.done
	if task.err != nil {
		return nil, task.err
	}
	return task.outputs, nil
}

// Send appends v to task id's channel; FIFO per (sender, receiver).
func (rt *Runtime) Send(id int, v StackValue) error {
	rt.world.mu.Lock()
	ch, ok := rt.world.channels[id]
	rt.world.mu.Unlock()
	if !ok {
		return errorsx.New(errorsx.OutOfBounds, "no such channel", rt.Span())
	}
	ch.send(v)
	return nil
}

// Recv blocks until a message is available on task id's channel.
func (rt *Runtime) Recv(id int) (StackValue, error) {
	rt.world.mu.Lock()
	ch, ok := rt.world.channels[id]
	rt.world.mu.Unlock()
	if !ok {
		return nil, errorsx.New(errorsx.OutOfBounds, "no such channel", rt.Span())
	}
	return ch.recv(), nil
}

// TryRecv is Recv's non-blocking variant: fails, rather than blocks, if
// the channel is empty.
func (rt *Runtime) TryRecv(id int) (StackValue, error) {
	rt.world.mu.Lock()
	ch, ok := rt.world.channels[id]
	rt.world.mu.Unlock()
	if !ok {
		return nil, errorsx.New(errorsx.OutOfBounds, "no such channel", rt.Span())
	}
	v, ok := ch.tryRecv()
	if !ok {
		return nil, errorsx.New(errorsx.StackUnderflow, "channel empty", rt.Span())
	}
	return v, nil
}
