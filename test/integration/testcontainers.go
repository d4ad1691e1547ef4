package integration

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	migrationsdb "github.com/trustseal/trustseal-go/db"
	"github.com/trustseal/trustseal-go/pkg/config"
	"github.com/trustseal/trustseal-go/pkg/server"
	"github.com/trustseal/trustseal-go/pkg/server/endpoints"
	"github.com/trustseal/trustseal-go/pkg/worker"
)

var testJWTSecret = []byte("integration-test-secret")

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	Container   testcontainers.Container
	DatabaseURL string
	Worker      *StubWorker
	Server      *server.Server
	ServerURL   string
	HTTPClient  *http.Client
}

// NewTestContext starts a PostgreSQL testcontainer, runs migrations, starts a
// stub proof worker, and runs the application server in-process.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("trustseal_test"),
		tcpostgres.WithUsername("trustseal"),
		tcpostgres.WithPassword("trustseal"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://trustseal:trustseal@%s:%s/trustseal_test?sslmode=disable", host, port.Port())

	if err := runMigrations(connStr); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	stub := NewStubWorker()

	cfg := &config.TrustSealConfig{
		WorkerURL:             stub.URL(),
		WorkerTimeoutSeconds:  5,
		IssuerTokenTTLSeconds: 3600,
	}

	serverPort, err := freePort()
	if err != nil {
		stub.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	workerClient := worker.NewHTTPClient(cfg.WorkerURL, cfg.WorkerTimeout())
	s := server.NewServer(db, cfg, workerClient, testJWTSecret, "127.0.0.1", fmt.Sprintf("%d", serverPort))
	endpoints.RegisterAll(s)

	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			log.Printf("server exited: %v", err)
		}
	}()

	tc := &TestContext{
		DB:          db,
		Container:   pgContainer,
		DatabaseURL: connStr,
		Worker:      stub,
		Server:      s,
		ServerURL:   fmt.Sprintf("http://127.0.0.1:%d", serverPort),
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
	}

	if err := tc.waitForServer(); err != nil {
		tc.Close(ctx)
		return nil, err
	}

	return tc, nil
}

func runMigrations(dbURL string) error {
	migrationsFS, err := fs.Sub(migrationsdb.Migrations, "migrations")
	if err != nil {
		return err
	}
	d, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", d, dbURL)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer func() { _ = l.Close() }()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func (tc *TestContext) waitForServer() error {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := tc.HTTPClient.Get(tc.ServerURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server at %s did not become ready", tc.ServerURL)
}

// Close tears down the server, stub worker and database container
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Worker != nil {
		tc.Worker.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
