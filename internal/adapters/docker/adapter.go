package docker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"github.com/melih/docker-agent/internal/core/domain"
)

// stopTimeout is how long the engine waits for a graceful stop before SIGKILL.
const stopTimeout = 10 * time.Second

// engine is the subset of the Docker client the adapter needs.
type engine interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	ContainerInspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	ImageInspectWithRaw(ctx context.Context, imageID string) (types.ImageInspect, []byte, error)
	Close() error
}

// Adapter implements ports.ContainerService using Docker SDK
type Adapter struct {
	cli    engine
	logger *slog.Logger
}

// NewAdapter creates a new Docker adapter instance.
// Uses the DOCKER_HOST env var or the default socket path.
func NewAdapter(logger *slog.Logger) (*Adapter, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return newAdapter(cli, logger), nil
}

func newAdapter(cli engine, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{cli: cli, logger: logger.With("component", "docker")}
}

// Close releases the underlying client connection.
func (a *Adapter) Close() error {
	return a.cli.Close()
}

// ListContainers returns every container, stopped ones included.
func (a *Adapter) ListContainers(ctx context.Context) ([]domain.Container, error) {
	containers, err := a.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	tags := make(map[string]string)
	result := make([]domain.Container, 0, len(containers))
	for _, c := range containers {
		tag, ok := tags[c.ImageID]
		if !ok {
			tag = a.primaryTag(ctx, c.ImageID)
			tags[c.ImageID] = tag
		}
		result = append(result, domain.Container{
			Name:   containerName(c.Names),
			Status: c.State,
			ID:     shortID(c.ID),
			Image:  tag,
		})
	}
	return result, nil
}

// StartContainer starts the container with the given name.
func (a *Adapter) StartContainer(ctx context.Context, name string) error {
	id, err := a.lookup(ctx, name)
	if err != nil {
		return err
	}
	if err := a.cli.ContainerStart(ctx, id, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container %s: %w", name, err)
	}
	return nil
}

// StopContainer gracefully stops the container with the given name.
func (a *Adapter) StopContainer(ctx context.Context, name string) error {
	id, err := a.lookup(ctx, name)
	if err != nil {
		return err
	}
	timeout := int(stopTimeout.Seconds())
	if err := a.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", name, err)
	}
	return nil
}

func (a *Adapter) lookup(ctx context.Context, name string) (string, error) {
	inspect, err := a.cli.ContainerInspect(ctx, name)
	if err != nil {
		if client.IsErrNotFound(err) {
			return "", fmt.Errorf("%s: %w", name, domain.ErrContainerNotFound)
		}
		return "", fmt.Errorf("failed to inspect container %s: %w", name, err)
	}
	return inspect.ID, nil
}

// primaryTag returns the first repo tag of the image, or domain.UnknownImage.
func (a *Adapter) primaryTag(ctx context.Context, imageID string) string {
	if imageID == "" {
		return domain.UnknownImage
	}
	img, _, err := a.cli.ImageInspectWithRaw(ctx, imageID)
	if err != nil {
		a.logger.Debug("image inspect failed", "image_id", imageID, "err", err)
		return domain.UnknownImage
	}
	return firstTag(img.RepoTags)
}

func firstTag(tags []string) string {
	for _, t := range tags {
		if t != "" && t != "<none>:<none>" {
			return t
		}
	}
	return domain.UnknownImage
}

// containerName uses the first name if available, without the leading slash.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
