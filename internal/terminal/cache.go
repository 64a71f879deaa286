// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package terminal

import (
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
)

// Catalog is the read side of the terminal cache used by the point-of-sale
// front end.
type Catalog interface {
	Snapshot() *Snapshot
}

// Snapshot is an immutable view of the terminal catalog. Readers must not
// modify the maps.
type Snapshot struct {
	Products   map[int64]models.Product
	Services   map[int64]models.Service
	Promotions map[int64]models.Promotion
	Configs    map[string]models.ConfigEntry

	// Watermarks are the cursors the snapshot was built up to.
	Watermarks Watermarks
}

// Size returns the number of cached entities across all types.
func (s *Snapshot) Size() int {
	return len(s.Products) + len(s.Services) + len(s.Promotions) + len(s.Configs)
}

// Product looks up a product by id.
func (s *Snapshot) Product(id int64) (models.Product, bool) {
	p, ok := s.Products[id]
	return p, ok
}

// ActivePromotions returns the promotions that apply at t.
func (s *Snapshot) ActivePromotions(t time.Time) []models.Promotion {
	active := make([]models.Promotion, 0, len(s.Promotions))
	for _, p := range s.Promotions {
		if p.ActiveAt(t) {
			active = append(active, p)
		}
	}
	return active
}

// Config returns the value of a store-wide setting.
func (s *Snapshot) Config(key string) (string, bool) {
	c, ok := s.Configs[key]
	return c.Value, ok
}

// ApplyResult summarises one applied change batch.
type ApplyResult struct {
	Upserted int
	Evicted  int
	Skipped  int
}

// Cache holds the terminal catalog. Batches are applied copy-on-write and
// published with a single pointer swap, so a reader sees either none or all
// of a batch.
type Cache struct {
	current atomic.Pointer[Snapshot]

	// writeMu serialises Apply calls.
	writeMu sync.Mutex
}

// NewCache returns an empty cache with zero watermarks.
func NewCache() *Cache {
	c := &Cache{}
	c.current.Store(&Snapshot{
		Products:   map[int64]models.Product{},
		Services:   map[int64]models.Service{},
		Promotions: map[int64]models.Promotion{},
		Configs:    map[string]models.ConfigEntry{},
		Watermarks: Watermarks{},
	})
	return c
}

// Snapshot implements [Catalog].
func (c *Cache) Snapshot() *Snapshot {
	return c.current.Load()
}

// Watermarks returns the cursors of the current snapshot.
func (c *Cache) Watermarks() Watermarks {
	return c.current.Load().Watermarks
}

// Apply merges batch into a new snapshot and publishes it.
//
// Rows not newer than the type's watermark are skipped, tombstones evict,
// everything else is upserted by id. Each watermark advances to the newest
// LastUpdated present in the batch for its type.
func (c *Cache) Apply(batch models.ChangeBatch) ApplyResult {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	prev := c.current.Load()
	next := &Snapshot{
		Products:   prev.Products,
		Services:   prev.Services,
		Promotions: prev.Promotions,
		Configs:    prev.Configs,
		Watermarks: prev.Watermarks,
	}

	var total ApplyResult
	if len(batch.Products) > 0 {
		next.Products = maps.Clone(prev.Products)
		total.add(applyEntries(next.Products, batch.Products, models.EntityProducts, &next.Watermarks))
	}
	if len(batch.Services) > 0 {
		next.Services = maps.Clone(prev.Services)
		total.add(applyEntries(next.Services, batch.Services, models.EntityServices, &next.Watermarks))
	}
	if len(batch.Promotions) > 0 {
		next.Promotions = maps.Clone(prev.Promotions)
		total.add(applyEntries(next.Promotions, batch.Promotions, models.EntityPromotions, &next.Watermarks))
	}
	if len(batch.Configs) > 0 {
		next.Configs = maps.Clone(prev.Configs)
		total.add(applyEntries(next.Configs, batch.Configs, models.EntityConfigs, &next.Watermarks))
	}

	c.current.Store(next)
	return total
}

func (r *ApplyResult) add(other ApplyResult) {
	r.Upserted += other.Upserted
	r.Evicted += other.Evicted
	r.Skipped += other.Skipped
}

func applyEntries[K comparable, E models.CatalogEntry[K]](dst map[K]E, entries []E, t models.EntityType, watermarks *Watermarks) ApplyResult {
	var res ApplyResult
	floor := watermarks.Get(t)
	newest := floor

	for _, e := range entries {
		updated := e.Updated()
		if !updated.After(floor) {
			res.Skipped++
			continue
		}

		if e.Tombstone() {
			delete(dst, e.EntryKey())
			res.Evicted++
		} else {
			dst[e.EntryKey()] = e
			res.Upserted++
		}

		if updated.After(newest) {
			newest = updated
		}
	}

	*watermarks = watermarks.Advance(t, newest)
	return res
}
