// Package db provides embedded database schema and seed data.
package db

import _ "embed"

// Schema contains the DDL statements for all application tables.
//
//go:embed migrations/001_schema.sql
var Schema string

// SeedProducts is the bundled catalog used by the seeder when no products
// file is given.
//
//go:embed seed/products.json
var SeedProducts []byte
