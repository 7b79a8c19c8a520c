package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melih/docker-agent/internal/core/domain"
)

func statusOf(t *testing.T, r *Runtime, name string) string {
	t.Helper()
	list, err := r.ListContainers(context.Background())
	require.NoError(t, err)
	for _, c := range list {
		if c.Name == name {
			return c.Status
		}
	}
	t.Fatalf("container %q not listed", name)
	return ""
}

func TestStartThenListShowsRunning(t *testing.T) {
	r := NewRuntime(
		domain.Container{Name: "web", Status: StatusExited, ID: "aaa"},
		domain.Container{Name: "db", Status: StatusExited, ID: "bbb", Image: "postgres:16"},
	)
	ctx := context.Background()

	for _, name := range []string{"web", "db"} {
		require.NoError(t, r.StartContainer(ctx, name))
		assert.Equal(t, StatusRunning, statusOf(t, r, name))
	}

	require.NoError(t, r.StopContainer(ctx, "web"))
	assert.Equal(t, StatusExited, statusOf(t, r, "web"))
	assert.Equal(t, StatusRunning, statusOf(t, r, "db"))
}

func TestUnknownName(t *testing.T) {
	r := NewRuntime()
	ctx := context.Background()

	assert.ErrorIs(t, r.StartContainer(ctx, "web"), domain.ErrContainerNotFound)
	assert.ErrorIs(t, r.StopContainer(ctx, "web"), domain.ErrContainerNotFound)
}

func TestListReturnsCopy(t *testing.T) {
	r := NewRuntime(domain.Container{Name: "web", Status: StatusRunning})
	list, err := r.ListContainers(context.Background())
	require.NoError(t, err)

	list[0].Status = "mutated"

	assert.Equal(t, StatusRunning, statusOf(t, r, "web"))
	assert.Equal(t, domain.UnknownImage, list[0].Image)
}
