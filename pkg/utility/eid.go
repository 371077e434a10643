package utility

import (
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExecutionID identifies one process run. Logs and stored bars of the same run share it.
type ExecutionID = uuid.UUID

var executionID atomic.Pointer[ExecutionID]

func GetExecutionID() ExecutionID {
	if id := executionID.Load(); id != nil {
		return *id
	}
	id := uuid.Must(uuid.NewV7())
	if executionID.CompareAndSwap(nil, &id) {
		return id
	}
	return *executionID.Load()
}

func ResetExecutionID() ExecutionID {
	id := uuid.Must(uuid.NewV7())
	executionID.Store(&id)
	return id
}

func ExecutionField() zap.Field {
	return zap.Stringer("execution_id", GetExecutionID())
}
