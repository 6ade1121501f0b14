package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/cms-uploads-go/internal/logger"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const probeTimeout = 2 * time.Second

// service describes a throwaway container: what to run, which port to
// publish and how to tell that it accepts connections.
type service struct {
	name  string
	opts  dockertest.RunOptions
	port  string
	ready func(ctx context.Context, hostPort string) error
}

// start runs svc, waits until ready succeeds and returns the published
// host:port plus a purge func. The container is purged if it never gets ready.
func start(svc service) (string, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return "", nil, fmt.Errorf("could not connect to docker: %w", err)
	}
	pool.MaxWait = 90 * time.Second

	resource, err := pool.RunWithOptions(&svc.opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return "", nil, fmt.Errorf("could not start %s container: %w", svc.name, err)
	}

	hostPort := "localhost:" + resource.GetPort(svc.port)
	if err := pool.Retry(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		return svc.ready(ctx, hostPort)
	}); err != nil {
		_ = pool.Purge(resource)
		return "", nil, fmt.Errorf("%s did not become ready: %w", svc.name, err)
	}

	purge := func() {
		if err := pool.Purge(resource); err != nil {
			logger.Warnf(context.Background(), "⚠️  could not purge %s container: %v", svc.name, err)
		}
	}
	return hostPort, purge, nil
}
