// Package testenv provides utilities for testing the Notion Go client.
//
// Live tests talk to the real API with the integration token found in the
// environment (or a .env file) and are skipped when it is not set. Fake
// tests run against an in-process fakenotion server.
package testenv

import (
	"fmt"
	"os"
	"testing"

	"github.com/joho/godotenv"

	notion "github.com/nyoungstudios/notion.go"
	"github.com/nyoungstudios/notion.go/internal/fakenotion"
	"github.com/nyoungstudios/notion.go/pkg/connection"
)

// EnvVerbose enables request logging of live clients when set to any value.
const EnvVerbose = "NOTION_TEST_VERBOSE"

func init() {
	// Variables from a local .env file fill in what the environment lacks
	_ = godotenv.Load()
}

// New creates a client for the live API configured from the environment.
func New(opts ...notion.Option) (*notion.Client, error) {
	if os.Getenv(EnvVerbose) == "" {
		opts = append([]notion.Option{notion.WithLogger(nil)}, opts...)
	}
	client, err := notion.ClientFromEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Notion client: %w", err)
	}
	return client, nil
}

func MustNew(opts ...notion.Option) *notion.Client {
	client, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// Live returns a client for the live API, skipping t when no integration
// token is configured.
func Live(t testing.TB, opts ...notion.Option) *notion.Client {
	t.Helper()

	if os.Getenv(connection.EnvToken) == "" {
		t.Skipf("%s not set, skipping live test", connection.EnvToken)
	}
	client, err := New(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return client
}

// Env returns the value of key, skipping t when it is not set.
func Env(t testing.TB, key string) string {
	t.Helper()

	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set, skipping", key)
	}
	return value
}

// Fake starts a fake Notion server for the duration of t and returns it
// along with a client pointed at it. Logging is off unless opts turn it on.
func Fake(t testing.TB, opts ...notion.Option) (*fakenotion.Server, *notion.Client) {
	t.Helper()

	server := fakenotion.New()
	baseURL := server.Start()
	t.Cleanup(server.Close)

	opts = append([]notion.Option{notion.WithBaseURL(baseURL), notion.WithLogger(nil)}, opts...)
	client, err := notion.New(fakenotion.DefaultToken, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return server, client
}
