package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func writeTempCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog fixture: %v", err)
	}
	return path
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestLoader_JSONL(t *testing.T) {
	catalog := `{"product_id":101,"category":"sunglasses","image_count":2,"image_urls":["https://cdn.example.com/101-a.jpg","https://cdn.example.com/101-b.jpg"]}

{"product_id":102,"category":"eyeglasses","image_count":1,"image_urls":["https://cdn.example.com/102.jpg"]}
`
	path := writeTempCatalog(t, "catalog.jsonl", catalog)

	products, err := NewLoader(path, testLogger()).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].ProductID != 101 || products[0].Category != "sunglasses" {
		t.Errorf("Unexpected first product: %+v", products[0])
	}
	if len(products[0].ImageURLs) != 2 {
		t.Errorf("Expected 2 image URLs, got %d", len(products[0].ImageURLs))
	}
}

func TestLoader_JSONL_MalformedLine(t *testing.T) {
	path := writeTempCatalog(t, "catalog.jsonl", `{"product_id":1}
not json at all
`)

	if _, err := NewLoader(path, testLogger()).Load(); err == nil {
		t.Error("Expected error for malformed catalog line")
	}
}

func TestLoader_CorruptParquet(t *testing.T) {
	// PAR1 magic followed by garbage: opens as a file but is not a
	// readable parquet catalog.
	path := writeTempCatalog(t, "catalog.parquet", "PAR1 not a real parquet footer")

	if _, err := NewLoader(path, testLogger()).Load(); err == nil {
		t.Error("Expected error for corrupt parquet catalog")
	}
}

func TestLoader_UnsupportedFormat(t *testing.T) {
	path := writeTempCatalog(t, "catalog.xlsx", "binary junk")

	if _, err := NewLoader(path, testLogger()).Load(); err == nil {
		t.Error("Expected error for unsupported catalog format")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	if _, err := NewLoader("does-not-exist.jsonl", testLogger()).Load(); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

func TestStore_Lookups(t *testing.T) {
	store := NewStore([]Product{
		{ProductID: 3, Category: "sunglasses"},
		{ProductID: 1, Category: "eyeglasses"},
		{ProductID: 2, Category: "sunglasses"},
	})

	if store.Len() != 3 {
		t.Errorf("Expected 3 products, got %d", store.Len())
	}

	all := store.All()
	for i, want := range []int64{1, 2, 3} {
		if all[i].ProductID != want {
			t.Errorf("All()[%d].ProductID = %d, want %d", i, all[i].ProductID, want)
		}
	}

	p, err := store.Get(2)
	if err != nil {
		t.Fatalf("Get(2) failed: %v", err)
	}
	if p.Category != "sunglasses" {
		t.Errorf("Unexpected product: %+v", p)
	}

	if _, err := store.Get(99); err != ErrProductNotFound {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestStore_RandomSample(t *testing.T) {
	store := NewStore([]Product{
		{ProductID: 1}, {ProductID: 2}, {ProductID: 3},
	})

	sample := store.RandomSample(2)
	if len(sample) != 2 {
		t.Errorf("Expected sample of 2, got %d", len(sample))
	}
	if sample[0].ProductID == sample[1].ProductID {
		t.Error("Expected distinct products in sample")
	}

	// Requesting more than available caps at catalog size.
	if got := len(store.RandomSample(10)); got != 3 {
		t.Errorf("Expected capped sample of 3, got %d", got)
	}

	if store.RandomSample(0) != nil {
		t.Error("Expected nil sample for n=0")
	}
}
