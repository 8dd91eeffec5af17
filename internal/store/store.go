package store

import "gorm.io/gorm"

// Store bundles the gorm queries the API handlers share. Handlers declare
// the subset they call as local interfaces, so tests fake only what a
// handler actually touches.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}
