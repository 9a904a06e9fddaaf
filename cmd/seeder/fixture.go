package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Fixture is the seed data for a development database
type Fixture struct {
	Accounts []AccountSeed `yaml:"accounts"`
	Products []ProductSeed `yaml:"products"`
}

// AccountSeed opens an account and credits its opening balance
type AccountSeed struct {
	Memo           string    `yaml:"memo"`
	OpeningBalance int64     `yaml:"opening_balance"`
	OwnerID        uuid.UUID `yaml:"owner_id"`
}

// ProductSeed is one catalog entry
type ProductSeed struct {
	Name           string    `yaml:"name"`
	Memo           string    `yaml:"memo"`
	RequiredPoints int64     `yaml:"required_points"`
	Stock          int64     `yaml:"stock"`
	StoreID        uuid.UUID `yaml:"store_id"`
}

// LoadFixture reads and validates a YAML fixture file
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a YAML fixture. Unknown keys are rejected.
func ParseFixture(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every entry against the ledger constraints
func (f *Fixture) Validate() error {
	var errs []error

	seen := make(map[uuid.UUID]bool, len(f.Accounts))
	for i, a := range f.Accounts {
		if a.OwnerID == uuid.Nil {
			errs = append(errs, fmt.Errorf("accounts[%d]: owner_id is required", i))
		}
		if seen[a.OwnerID] {
			errs = append(errs, fmt.Errorf("accounts[%d]: duplicate owner_id %s", i, a.OwnerID))
		}
		seen[a.OwnerID] = true
		if a.OpeningBalance < 0 {
			errs = append(errs, fmt.Errorf("accounts[%d]: opening_balance cannot be negative", i))
		}
	}

	for i, p := range f.Products {
		if p.StoreID == uuid.Nil {
			errs = append(errs, fmt.Errorf("products[%d]: store_id is required", i))
		}
		name := strings.TrimSpace(p.Name)
		if name == "" || len(name) > 200 {
			errs = append(errs, fmt.Errorf("products[%d]: name must be 1-200 characters", i))
		}
		if len(p.Memo) > 300 {
			errs = append(errs, fmt.Errorf("products[%d]: memo cannot exceed 300 characters", i))
		}
		if p.RequiredPoints < 0 || p.Stock < 0 {
			errs = append(errs, fmt.Errorf("products[%d]: required_points and stock cannot be negative", i))
		}
	}

	return errors.Join(errs...)
}
