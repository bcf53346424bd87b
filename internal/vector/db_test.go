//go:build integration

// Integration tests against a throwaway SurrealDB container.
package vector

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *Client
var testContainer testcontainers.Container

// TestMain sets up and tears down the SurrealDB container for all tests.
func TestMain(m *testing.M) {
	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	var err error
	testContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0-beta.1",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--log", "info", "--user", "root", "--pass", "root"},
			WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start SurrealDB container: %v", err)
	}

	host, err := testContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	// Workaround: testcontainers may return "null" as host in some environments
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := testContainer.MappedPort(ctx, "8000")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}

	testDB, err = NewClient(ctx, Config{
		URL:       fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port()),
		Namespace: "test",
		Database:  "test",
		Username:  "root",
		Password:  "root",
		AuthLevel: "root",
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := testDB.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	code := m.Run()

	_ = testDB.Close(ctx)
	_ = testContainer.Terminate(ctx)

	os.Exit(code)
}

// dummyEmbedding fills a 384-dim vector with a repeatable pattern, biased
// by seed so different documents stay distinguishable.
func dummyEmbedding(seed float32) []float32 {
	embedding := make([]float32, 384)
	for i := range embedding {
		embedding[i] = (float32(i) + seed) / 384.0
	}
	return embedding
}

func TestUpsertAndCount(t *testing.T) {
	ctx := context.Background()

	if err := testDB.Wipe(ctx); err != nil {
		t.Fatalf("Wipe failed: %v", err)
	}

	docs := []Document{
		{Artnr: "12345", Content: "24V DC converter, DALI dimmable, IP67", Embedding: dummyEmbedding(0)},
		{Artnr: "23456", Content: "350mA converter, mains dimmable", Embedding: dummyEmbedding(50)},
	}
	if err := testDB.UpsertDocuments(ctx, docs); err != nil {
		t.Fatalf("UpsertDocuments failed: %v", err)
	}

	count, err := testDB.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 documents, got %d", count)
	}

	// Upsert of the same article number must replace, not duplicate.
	if err := testDB.UpsertDocument(ctx, docs[0]); err != nil {
		t.Fatalf("re-upsert failed: %v", err)
	}
	count, err = testDB.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 documents after re-upsert, got %d", count)
	}
}

func TestSearchOrdersByScore(t *testing.T) {
	ctx := context.Background()

	if err := testDB.Wipe(ctx); err != nil {
		t.Fatalf("Wipe failed: %v", err)
	}

	docs := []Document{
		{Artnr: "11111", Content: "near", Embedding: dummyEmbedding(0)},
		{Artnr: "22222", Content: "far", Embedding: dummyEmbedding(300)},
	}
	if err := testDB.UpsertDocuments(ctx, docs); err != nil {
		t.Fatalf("UpsertDocuments failed: %v", err)
	}

	hits, err := testDB.Search(ctx, dummyEmbedding(1), 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}
	if hits[0].Artnr != "11111" {
		t.Errorf("expected nearest document first, got %q", hits[0].Artnr)
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits not ordered by score: %v", hits)
		}
	}
}
