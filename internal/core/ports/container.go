package ports

import (
	"context"

	"github.com/melih/docker-agent/internal/core/domain"
)

// ContainerService defines the container operations the agent may perform.
// Containers are addressed by name. This interface allows us to switch
// between Docker and an in-memory runtime without changing the chat logic.
type ContainerService interface {
	// ListContainers returns running and stopped containers.
	ListContainers(ctx context.Context) ([]domain.Container, error)
	// StartContainer starts the named container. Unknown names yield an
	// error wrapping domain.ErrContainerNotFound.
	StartContainer(ctx context.Context, name string) error
	// StopContainer stops the named container.
	StopContainer(ctx context.Context, name string) error
}
