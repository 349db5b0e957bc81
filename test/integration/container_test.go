//go:build integration

package integration

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const postgresImage = "postgres:16-alpine"

// scratchPostgres is a Postgres server in a docker container that lives for
// one test run. Docker picks the host port and the password is random.
type scratchPostgres struct {
	id  string
	dsn string
}

func runScratchPostgres(ctx context.Context) (*scratchPostgres, error) {
	password := strings.ReplaceAll(uuid.NewString(), "-", "")
	out, err := docker(ctx, "run", "-d", "--rm",
		"--label", "cabinet.integration=1",
		"-p", "127.0.0.1::5432",
		"-e", "POSTGRES_USER=cabinet",
		"-e", "POSTGRES_PASSWORD="+password,
		"-e", "POSTGRES_DB=cabinet",
		postgresImage,
	)
	if err != nil {
		return nil, err
	}
	pg := &scratchPostgres{id: out}

	mapped, err := docker(ctx, "port", pg.id, "5432/tcp")
	if err != nil {
		pg.Stop()
		return nil, err
	}
	// "docker port" may list one mapping per address family.
	_, port, err := net.SplitHostPort(strings.SplitN(mapped, "\n", 2)[0])
	if err != nil {
		pg.Stop()
		return nil, fmt.Errorf("parse mapped port %q: %w", mapped, err)
	}

	pg.dsn = fmt.Sprintf("postgres://cabinet:%s@127.0.0.1:%s/cabinet?sslmode=disable", password, port)
	if err := pg.awaitReady(ctx, 45*time.Second); err != nil {
		pg.Stop()
		return nil, err
	}
	return pg, nil
}

// DSN is the connection string of the scratch database.
func (pg *scratchPostgres) DSN() string { return pg.dsn }

// Stop removes the container. The container runs with --rm, so stopping it
// also discards its volume.
func (pg *scratchPostgres) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	docker(ctx, "stop", "-t", "2", pg.id)
}

// awaitReady polls until a query round-trips. The entrypoint restarts the
// server once after init, so a single successful dial is not enough.
func (pg *scratchPostgres) awaitReady(ctx context.Context, within time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, within)
	defer cancel()

	tick := time.NewTicker(300 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	streak := 0
	for {
		if lastErr = pg.ping(ctx); lastErr == nil {
			streak++
			if streak == 2 {
				return nil
			}
		} else {
			streak = 0
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres in %s not ready after %v: %w", pg.id[:12], within, lastErr)
		case <-tick.C:
		}
	}
}

func (pg *scratchPostgres) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := pgx.Connect(ctx, pg.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	var one int
	return conn.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func docker(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "docker", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("docker %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}
