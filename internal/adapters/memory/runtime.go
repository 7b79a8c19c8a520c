// Package memory provides an in-process container runtime. It backs local
// runs without a Docker daemon and tests that need real state transitions.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/melih/docker-agent/internal/core/domain"
)

const (
	StatusRunning = "running"
	StatusExited  = "exited"
)

// Runtime implements ports.ContainerService over a fixed set of containers.
type Runtime struct {
	mu         sync.Mutex
	containers []domain.Container
}

// NewRuntime returns a runtime seeded with the given containers, kept in order.
func NewRuntime(seed ...domain.Container) *Runtime {
	r := &Runtime{containers: make([]domain.Container, 0, len(seed))}
	for _, c := range seed {
		if c.Image == "" {
			c.Image = domain.UnknownImage
		}
		r.containers = append(r.containers, c)
	}
	return r
}

func (r *Runtime) ListContainers(ctx context.Context) ([]domain.Container, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Container, len(r.containers))
	copy(out, r.containers)
	return out, nil
}

func (r *Runtime) StartContainer(ctx context.Context, name string) error {
	return r.setStatus(name, StatusRunning)
}

func (r *Runtime) StopContainer(ctx context.Context, name string) error {
	return r.setStatus(name, StatusExited)
}

func (r *Runtime) setStatus(name, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.containers {
		if r.containers[i].Name == name {
			r.containers[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("%s: %w", name, domain.ErrContainerNotFound)
}
