// Package pgtest boots a throwaway PostgreSQL for integration tests
package pgtest

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	Image        = "postgres:15-alpine"
	Database     = "quizduel_test"
	User         = "quizduel"
	Password     = "quizduel"
	StartTimeout = 30 * time.Second

	// EnvConnString points the suites at an existing database instead of a container
	EnvConnString = "QUIZDUEL_TEST_DATABASE_URL"
)

// Container is a running database, or nothing when Docker was unavailable
type Container struct {
	ConnString string
	terminate  func(context.Context) error
}

// Start returns an empty Container in short mode or when no database could be
// started; the reason is printed so CI logs show why suites skipped.
func Start(ctx context.Context) *Container {
	if testing.Short() {
		return &Container{}
	}
	if conn := os.Getenv(EnvConnString); conn != "" {
		return &Container{ConnString: conn}
	}

	c, err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pgtest: postgres unavailable: %v\n", err)
		return &Container{}
	}
	return c
}

func run(ctx context.Context) (c *Container, err error) {
	// testcontainers panics when no Docker host can be found
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker: %v", r)
		}
	}()

	pg, err := postgres.Run(ctx, Image,
		postgres.WithDatabase(Database),
		postgres.WithUsername(User),
		postgres.WithPassword(Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(StartTimeout)),
	)
	if err != nil {
		return nil, err
	}

	conn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, err
	}
	return &Container{
		ConnString: conn,
		terminate:  func(ctx context.Context) error { return pg.Terminate(ctx) },
	}, nil
}

// Available reports whether a database is reachable
func (c *Container) Available() bool {
	return c.ConnString != ""
}

// Skip skips t when no database is available
func (c *Container) Skip(t testing.TB) {
	t.Helper()
	if !c.Available() {
		t.Skip("integration test: no postgres available")
	}
}

// Stop removes the container, if this package started one
func (c *Container) Stop(ctx context.Context) {
	if c.terminate == nil {
		return
	}
	if err := c.terminate(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pgtest: terminate: %v\n", err)
	}
}
