package store

import (
	"context"

	"github.com/jsphweid/diatonicpad/model"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("progression not found")

// Store persists progressions keyed by id.
type Store interface {
	// Save inserts p, or replaces the stored progression with the same id.
	Save(ctx context.Context, p *model.Progression) error
	Load(ctx context.Context, id string) (*model.Progression, error)
	// List returns every progression, oldest first.
	List(ctx context.Context) ([]*model.Progression, error)
}

// Latest returns the most recently created progression in s.
func Latest(ctx context.Context, s Store) (*model.Progression, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNotFound
	}
	return all[len(all)-1], nil
}
