// Package stores provides file-backed implementations of the core store
// interfaces.
package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/colonyops/taskloop/internal/core/task"
)

// TaskStore implements task.Store using a single JSON file.
//
// The file holds a map from user identity (decimal string) to that user's
// ordered task sequence and is rewritten whole on every mutation. An
// RWMutex serializes access so the store is safe across users; per-user
// message ordering is the transport's responsibility.
type TaskStore struct {
	path string
	mu   sync.RWMutex
}

// tasksFile is the on-disk layout.
type tasksFile map[string][]task.Task

// NewTaskStore creates a task store persisting to the given file path.
// The file is created lazily on first mutation.
func NewTaskStore(path string) *TaskStore {
	return &TaskStore{path: path}
}

var _ task.Store = (*TaskStore)(nil)

// List returns all tasks for a user, oldest first.
func (s *TaskStore) List(ctx context.Context, userID int64) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	return append([]task.Task(nil), file[userKey(userID)]...), nil
}

// Append adds a task to the end of the user's sequence and persists.
func (s *TaskStore) Append(ctx context.Context, userID int64, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	key := userKey(userID)
	file[key] = append(file[key], t)

	return s.save(file)
}

// Update replaces the stored task with the same ID.
func (s *TaskStore) Update(ctx context.Context, userID int64, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	key := userKey(userID)
	for i, cur := range file[key] {
		if cur.ID == t.ID {
			file[key][i] = t
			return s.save(file)
		}
	}

	return task.ErrNotFound
}

// Delete removes the task with the given ID, shifting later positions
// down by one.
func (s *TaskStore) Delete(ctx context.Context, userID int64, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	key := userKey(userID)
	for i, cur := range file[key] {
		if cur.ID == id {
			file[key] = append(file[key][:i], file[key][i+1:]...)
			if len(file[key]) == 0 {
				delete(file, key)
			}
			return s.save(file)
		}
	}

	return task.ErrNotFound
}

func (s *TaskStore) load() (tasksFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return tasksFile{}, nil
		}
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var file tasksFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse tasks file: %w", err)
	}
	if file == nil {
		file = tasksFile{}
	}

	return file, nil
}

func (s *TaskStore) save(file tasksFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks file: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}

	return nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
