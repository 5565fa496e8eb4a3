// Helpers for running the API against real containers. Used by the devdb
// command for local development and by integration tests. Expects connection
// settings in the environment, usually loaded from a .env file.

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Containers holds the running pieces of a containerized stack: the MySQL
// database and, optionally, the API itself.
type Containers struct {
	Network      *testcontainers.DockerNetwork
	DBContainer  testcontainers.Container
	APIContainer testcontainers.Container
}

// Terminate stops every container and removes the network. Safe to call on a
// partially constructed stack.
func (tc *Containers) Terminate(t *testing.T) {
	ctx := context.Background()
	if tc.APIContainer != nil {
		if err := tc.APIContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate API container: %v", err)
		}
	}
	if tc.DBContainer != nil {
		if err := tc.DBContainer.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database container: %v", err)
		}
	}
	if tc.Network != nil {
		if err := tc.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// CreateStack starts a MySQL container and the API container on a shared
// network. When withAPI is false only the database comes up, which is enough
// for running the server from the host against a real MySQL.
func CreateStack(t *testing.T, withAPI bool) (*Containers, error) {
	ctx := context.Background()
	stack := &Containers{}

	nw, err := network.New(ctx)
	if err != nil {
		exitWithError(t, err, "Failed to create network")
	}
	stack.Network = nw
	networkName := nw.Name

	dbNetworkName := envOr("DB_HOST", "radelement-db")
	tcpDBPort, err := nat.NewPort("tcp", envOr("DB_PORT", "3306"))
	if err != nil {
		stack.Terminate(t)
		exitWithError(t, err, "Failed to create DB port")
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        envOr("DB_IMAGE", "mysql:8"),
			ExposedPorts: []string{string(tcpDBPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": os.Getenv("DB_ROOT_PASSWORD"),
				"MYSQL_DATABASE":      os.Getenv("DB_DATABASE"),
				"MYSQL_USER":          os.Getenv("DB_USER"),
				"MYSQL_PASSWORD":      os.Getenv("DB_PASSWORD"),
			},
			WaitingFor: wait.ForListeningPort(tcpDBPort).WithStartupTimeout(60 * time.Second),
			Networks:   []string{networkName},
			NetworkAliases: map[string][]string{
				networkName: {dbNetworkName},
			},
		},
		Started: true,
	})
	if err != nil {
		stack.Terminate(t)
		exitWithError(t, err, "Failed to start database")
	}
	stack.DBContainer = dbContainer

	dbHost, _ := dbContainer.Host(ctx)
	dbPort, _ := dbContainer.MappedPort(ctx, tcpDBPort)
	if err := initMySQL(dbHost, dbPort); err != nil {
		stack.Terminate(t)
		exitWithError(t, err, "Failed to initialize database")
	}
	logMessage(t, "DB_URL=%s:%s", dbHost, dbPort.Port())

	if !withAPI {
		return stack, nil
	}

	apiPortNumber := envOr("PORT", "3000")
	tcpAPIPort, err := nat.NewPort("tcp", apiPortNumber)
	if err != nil {
		stack.Terminate(t)
		exitWithError(t, err, "Failed to create API port")
	}

	apiRequest := testcontainers.ContainerRequest{
		ExposedPorts: []string{string(tcpAPIPort)},
		Env: map[string]string{
			"DB_TYPE":             "mysql",
			"DB_HOST":             dbNetworkName,
			"DB_PORT":             envOr("DB_PORT", "3306"),
			"DB_DATABASE":         os.Getenv("DB_DATABASE"),
			"DB_USER":             os.Getenv("DB_USER"),
			"DB_PASSWORD":         os.Getenv("DB_PASSWORD"),
			"DB_CONNECTION_LIMIT": envOr("DB_CONNECTION_LIMIT", "10"),
			"JWT_SECRET":          os.Getenv("JWT_SECRET"),
			"JWT_ISSUER":          os.Getenv("JWT_ISSUER"),
			"PORT":                apiPortNumber,
		},
		WaitingFor: wait.ForHTTP("/api/health").WithPort(tcpAPIPort).WithStartupTimeout(30 * time.Second),
		Networks:   []string{networkName},
	}

	imageName := "radelement-api-test:latest"
	exists, err := hasImage(ctx, imageName)
	if err != nil {
		stack.Terminate(t)
		exitWithError(t, err, "Failed to check if image exists")
	}
	if exists {
		logMessage(t, "Image %s exists, reusing...", imageName)
		apiRequest.Image = imageName
	} else {
		logMessage(t, "Image %s does not exist, building...", imageName)
		sessionID := uuid.New().String()
		buildContext := envOr("TESTCONTAINERS_BUILD_CONTEXT", "../..")
		apiRequest.FromDockerfile = testcontainers.FromDockerfile{
			Context:    buildContext,
			Dockerfile: "Dockerfile",
			Repo:       "radelement-api-test",
			Tag:        "latest",
			KeepImage:  true,
			BuildArgs: map[string]*string{
				"RESOURCE_REAPER_SESSION_ID": &sessionID,
			},
			PrintBuildLog: true,
		}
	}

	apiContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: apiRequest,
		Started:          true,
	})
	if err != nil {
		stack.Terminate(t)
		exitWithError(t, err, "Failed to start API")
	}
	stack.APIContainer = apiContainer

	apiHost, _ := apiContainer.Host(ctx)
	apiPort, _ := apiContainer.MappedPort(ctx, tcpAPIPort)
	logMessage(t, "BASE_URL=%s:%s", apiHost, apiPort.Port())

	return stack, nil
}

// initMySQL waits for the server to accept connections and makes sure the
// application database and user exist. Schema comes from auto-migration on
// server start, so no DDL runs here.
func initMySQL(dbHost string, dbPort nat.Port) error {
	dsn := fmt.Sprintf("root:%s@tcp(%s:%s)/", os.Getenv("DB_ROOT_PASSWORD"), dbHost, dbPort.Port())
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("database not ready after 30 seconds: %w", err)
	}

	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", os.Getenv("DB_DATABASE")),
		fmt.Sprintf("CREATE USER IF NOT EXISTS '%s'@'%%' IDENTIFIED BY '%s'", os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD")),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON %s.* TO '%s'@'%%'", os.Getenv("DB_DATABASE"), os.Getenv("DB_USER")),
		"FLUSH PRIVILEGES",
	}
	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("%w : when executing > %s", err, statement)
		}
	}
	return nil
}

func hasImage(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}
	return false, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func exitWithError(t *testing.T, err error, msg string) {
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
