// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EntityType names a catalog collection carried by the change feed.
type EntityType string

const (
	EntityProducts   EntityType = "products"
	EntityServices   EntityType = "services"
	EntityPromotions EntityType = "promotions"
	EntityConfigs    EntityType = "configs"
)

// AllEntityTypes lists every entity type the change feed knows about,
// in the order the server emits them.
var AllEntityTypes = []EntityType{
	EntityProducts,
	EntityServices,
	EntityPromotions,
	EntityConfigs,
}

// Known reports whether t is one of [AllEntityTypes].
func (t EntityType) Known() bool {
	for _, known := range AllEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// CatalogEntry is implemented by every change-feed row. K is the type of the
// row identity used as the cache key.
type CatalogEntry[K comparable] interface {
	EntryKey() K
	Updated() time.Time
	Tombstone() bool
}

// Product is a sellable stock item. Prices are in minor currency units.
type Product struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code,omitempty"`
	Barcode     string    `json:"barcode,omitempty"`
	Name        string    `json:"name,omitempty"`
	Price       int64     `json:"price"`
	Stock       float64   `json:"stock"`
	Deleted     bool      `json:"deleted"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (p Product) EntryKey() int64 {
	return p.ID
}

func (p Product) Updated() time.Time {
	return p.LastUpdated
}

func (p Product) Tombstone() bool {
	return p.Deleted
}

// Service is a non-stock sellable item (repairs, delivery, etc.).
type Service struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code,omitempty"`
	Name        string    `json:"name,omitempty"`
	Price       int64     `json:"price"`
	Deleted     bool      `json:"deleted"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (s Service) EntryKey() int64 {
	return s.ID
}

func (s Service) Updated() time.Time {
	return s.LastUpdated
}

func (s Service) Tombstone() bool {
	return s.Deleted
}

// Promotion is a percentage discount valid within [StartsAt, EndsAt].
type Promotion struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name,omitempty"`
	ProductID       *int64     `json:"productId,omitempty"`
	DiscountPercent float64    `json:"discountPercent"`
	StartsAt        *time.Time `json:"startsAt,omitempty"`
	EndsAt          *time.Time `json:"endsAt,omitempty"`
	Deleted         bool       `json:"deleted"`
	LastUpdated     time.Time  `json:"lastUpdated"`
}

func (p Promotion) EntryKey() int64 {
	return p.ID
}

func (p Promotion) Updated() time.Time {
	return p.LastUpdated
}

func (p Promotion) Tombstone() bool {
	return p.Deleted
}

// ActiveAt reports whether the promotion applies at t.
func (p Promotion) ActiveAt(t time.Time) bool {
	if p.Deleted {
		return false
	}
	if p.StartsAt != nil && t.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && t.After(*p.EndsAt) {
		return false
	}
	return true
}

// ConfigEntry is a store-wide setting distributed to terminals.
type ConfigEntry struct {
	Key         string    `json:"key"`
	Value       string    `json:"value,omitempty"`
	Deleted     bool      `json:"deleted"`
	LastUpdated time.Time `json:"lastUpdated"`
}

func (c ConfigEntry) EntryKey() string {
	return c.Key
}

func (c ConfigEntry) Updated() time.Time {
	return c.LastUpdated
}

func (c ConfigEntry) Tombstone() bool {
	return c.Deleted
}
