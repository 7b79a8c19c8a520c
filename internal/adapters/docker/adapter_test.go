package docker

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih/docker-agent/internal/core/domain"
)

// fakeEngine keeps container state in maps keyed by ID.
type fakeEngine struct {
	containers []types.Container
	images     map[string][]string
	started    []string
	stopped    []string
	stopWait   *int
	imageCalls int
	listErr    error
	startErr   error
}

func (f *fakeEngine) ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error) {
	if !options.All {
		return nil, errors.New("expected All=true")
	}
	return f.containers, f.listErr
}

func (f *fakeEngine) ContainerInspect(ctx context.Context, name string) (types.ContainerJSON, error) {
	for _, c := range f.containers {
		if containerName(c.Names) == name || c.ID == name {
			return types.ContainerJSON{ContainerJSONBase: &types.ContainerJSONBase{ID: c.ID}}, nil
		}
	}
	return types.ContainerJSON{}, errdefs.NotFound(errors.New("No such container: " + name))
}

func (f *fakeEngine) ContainerStart(ctx context.Context, id string, options container.StartOptions) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, id)
	return nil
}

func (f *fakeEngine) ContainerStop(ctx context.Context, id string, options container.StopOptions) error {
	f.stopped = append(f.stopped, id)
	f.stopWait = options.Timeout
	return nil
}

func (f *fakeEngine) ImageInspectWithRaw(ctx context.Context, id string) (types.ImageInspect, []byte, error) {
	f.imageCalls++
	tags, ok := f.images[id]
	if !ok {
		return types.ImageInspect{}, nil, errdefs.NotFound(errors.New("No such image: " + id))
	}
	return types.ImageInspect{ID: id, RepoTags: tags}, nil, nil
}

func (f *fakeEngine) Close() error { return nil }

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		containers: []types.Container{
			{ID: "0123456789abcdef0123", Names: []string{"/web"}, ImageID: "sha256:nginx", State: "running"},
			{ID: "fedcba9876543210fedc", Names: []string{"/worker"}, ImageID: "sha256:nginx", State: "exited"},
			{ID: "abc", Names: []string{"/scratch"}, ImageID: "sha256:dangling", State: "created"},
			{ID: "deadbeefdeadbeef", Names: []string{"/ghost"}, ImageID: "sha256:gone", State: "exited"},
		},
		images: map[string][]string{
			"sha256:nginx":    {"nginx:1.27", "nginx:latest"},
			"sha256:dangling": {"<none>:<none>"},
		},
	}
}

func TestListContainers(t *testing.T) {
	eng := newFakeEngine()
	a := newAdapter(eng, nil)

	got, err := a.ListContainers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Container{
		{Name: "web", Status: "running", ID: "0123456789ab", Image: "nginx:1.27"},
		{Name: "worker", Status: "exited", ID: "fedcba987654", Image: "nginx:1.27"},
		{Name: "scratch", Status: "created", ID: "abc", Image: domain.UnknownImage},
		{Name: "ghost", Status: "exited", ID: "deadbeefdead", Image: domain.UnknownImage},
	}, got)
	assert.Equal(t, 3, eng.imageCalls, "each distinct image is inspected once")
}

func TestListContainersError(t *testing.T) {
	eng := newFakeEngine()
	eng.listErr = errors.New("daemon unreachable")

	_, err := newAdapter(eng, nil).ListContainers(context.Background())
	assert.ErrorContains(t, err, "daemon unreachable")
}

func TestStartStopByName(t *testing.T) {
	eng := newFakeEngine()
	a := newAdapter(eng, nil)
	ctx := context.Background()

	require.NoError(t, a.StartContainer(ctx, "worker"))
	require.NoError(t, a.StopContainer(ctx, "web"))

	assert.Equal(t, []string{"fedcba9876543210fedc"}, eng.started)
	assert.Equal(t, []string{"0123456789abcdef0123"}, eng.stopped)
	require.NotNil(t, eng.stopWait)
	assert.Equal(t, 10, *eng.stopWait)
}

func TestUnknownContainer(t *testing.T) {
	a := newAdapter(newFakeEngine(), nil)
	ctx := context.Background()

	assert.ErrorIs(t, a.StartContainer(ctx, "nope"), domain.ErrContainerNotFound)
	assert.ErrorIs(t, a.StopContainer(ctx, "nope"), domain.ErrContainerNotFound)
}

func TestStartFailureWrapped(t *testing.T) {
	eng := newFakeEngine()
	eng.startErr = errors.New("port is already allocated")

	err := newAdapter(eng, nil).StartContainer(context.Background(), "worker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "worker")
	assert.Contains(t, err.Error(), "port is already allocated")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "", containerName(nil))
	assert.Equal(t, "db", containerName([]string{"/db", "/alias"}))
	assert.Equal(t, "short", shortID("short"))
	assert.Equal(t, domain.UnknownImage, firstTag(nil))
	assert.Equal(t, "redis:7", firstTag([]string{"", "redis:7"}))
}
