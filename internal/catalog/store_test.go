package catalog

import (
	"sync"
	"testing"
)

func testRecord(artnr int) *ConverterRecord {
	return &ConverterRecord{ArticleNumber: artnr, Lamps: map[string]LampRange{}}
}

func TestStoreReplaceIsAtomic(t *testing.T) {
	store := NewStore(New([]*ConverterRecord{testRecord(1000), testRecord(2000)}))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				snap := store.Snapshot()
				// a snapshot is fully the old or fully the new catalog
				if n := snap.Len(); n != 2 && n != 3 {
					t.Errorf("observed partial catalog of %d records", n)
					return
				}
			}
		}()
	}

	for j := 0; j < 100; j++ {
		store.Replace(New([]*ConverterRecord{testRecord(1000), testRecord(2000), testRecord(3000)}))
		store.Replace(New([]*ConverterRecord{testRecord(1000), testRecord(2000)}))
	}
	wg.Wait()
}

func TestSnapshotStableDuringReplace(t *testing.T) {
	store := NewStore(New([]*ConverterRecord{testRecord(1000)}))
	snap := store.Snapshot()

	store.Replace(New([]*ConverterRecord{testRecord(9999)}))

	// the held snapshot still answers from the old catalog
	if _, ok := snap.ByArtnr("1000"); !ok {
		t.Error("held snapshot lost its record after Replace")
	}
	if _, ok := store.Snapshot().ByArtnr("9999"); !ok {
		t.Error("new snapshot missing replaced record")
	}
}
