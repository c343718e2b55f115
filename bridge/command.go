package bridge

import (
	"context"

	"github.com/google/uuid"
)

// Operation identifies one kind of work the worker runtime can execute.
type Operation string

// HandlerFunc executes one operation against the resource pool on the worker
// runtime. The payload and the returned value are opaque JSON documents.
type HandlerFunc func(ctx context.Context, payload []byte) ([]byte, error)

// HandlerTable maps each operation to its handler. It is produced once by the
// StartupFunc and owned by the worker goroutine afterwards.
type HandlerTable map[Operation]HandlerFunc

// StartupFunc runs exactly once on the worker goroutine before any command is
// consumed. It constructs the resource pool and returns the handler table
// bound to it. A non-nil error marks the Bridge as permanently failed.
type StartupFunc func(ctx context.Context) (HandlerTable, error)

// result is what a worker task writes into a command's reply slot:
// either a payload or an application error, never both.
type result struct {
	payload []byte
	err     error
}

// command is one unit of work travelling from a caller to the worker runtime.
// Ownership transfers to the worker on send; the reply channel has capacity
// one and sees exactly one send, or a close without a send when the task
// aborted before producing a result.
type command struct {
	id      uuid.UUID
	op      Operation
	payload []byte
	reply   chan result
}

func newCommand(op Operation, payload []byte) command {
	return command{
		id:      uuid.New(),
		op:      op,
		payload: payload,
		reply:   make(chan result, 1),
	}
}
