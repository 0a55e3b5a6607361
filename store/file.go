package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jsphweid/diatonicpad/model"
	"github.com/jsphweid/diatonicpad/util"
	"github.com/pkg/errors"
)

// File keeps every progression in a single JSON array on disk.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) read() ([]*model.Progression, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading %v", f.path)
	}
	var res []*model.Progression
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, errors.Wrapf(err, "decoding %v", f.path)
	}
	return res, nil
}

func (f *File) write(all []*model.Progression) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := util.EnsureParentDir(f.path); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(f.path), "."+filepath.Base(f.path)+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %v", tmp)
	}
	return os.Rename(tmp, f.path)
}

func (f *File) Save(_ context.Context, p *model.Progression) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return err
	}
	replaced := false
	for i := range all {
		if all[i].ID == p.ID {
			all[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, p)
	}
	return f.write(all)
}

func (f *File) Load(_ context.Context, id string) (*model.Progression, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all, err := f.read()
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "id %v", id)
}

func (f *File) List(_ context.Context) ([]*model.Progression, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}
