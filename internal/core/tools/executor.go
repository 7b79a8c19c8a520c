package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/melih/docker-agent/internal/core/ports"
	"github.com/melih/docker-agent/internal/observability"
)

// FunctionNotFound is the result of calling a name with no implementation.
const FunctionNotFound = "Function not found"

// Executor runs operations against the container runtime and file store.
type Executor struct {
	containers ports.ContainerService
	files      ports.FileStore
	logger     *slog.Logger
	metrics    *observability.Metrics
}

func NewExecutor(containers ports.ContainerService, files ports.FileStore, logger *slog.Logger, metrics *observability.Metrics) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		containers: containers,
		files:      files,
		logger:     logger.With("component", "tools"),
		metrics:    metrics,
	}
}

// Execute runs op and returns its result for the model. Start and stop never
// fail: runtime errors come back as an "Error: ..." string. Listing errors
// are returned to the caller.
func (e *Executor) Execute(ctx context.Context, op Operation) (any, error) {
	log := observability.WithTrace(ctx, e.logger).With("function", op.Function())

	var (
		result  any
		err     error
		outcome = observability.OutcomeOK
	)
	switch o := op.(type) {
	case ListContainers:
		result, err = e.containers.ListContainers(ctx)
	case StartContainer:
		result, outcome = e.mutate(ctx, o.ContainerName, "started", e.containers.StartContainer)
	case StopContainer:
		result, outcome = e.mutate(ctx, o.ContainerName, "stopped", e.containers.StopContainer)
	case ListSharedFiles:
		result, err = e.files.Names(ctx)
	case UnknownOperation:
		result, outcome = FunctionNotFound, observability.OutcomeError
	default:
		err = fmt.Errorf("unsupported operation %T", op)
	}

	if err != nil {
		e.metrics.ObserveToolCall(op.Function(), observability.OutcomeError)
		log.Error("tool call failed", "err", err)
		return nil, fmt.Errorf("%s: %w", op.Function(), err)
	}
	e.metrics.ObserveToolCall(op.Function(), outcome)
	log.Info("tool call executed", "outcome", outcome)
	return result, nil
}

func (e *Executor) mutate(ctx context.Context, name, verb string, fn func(context.Context, string) error) (string, string) {
	if err := fn(ctx, name); err != nil {
		return "Error: " + err.Error(), observability.OutcomeError
	}
	return fmt.Sprintf("Container %s %s", name, verb), observability.OutcomeOK
}
