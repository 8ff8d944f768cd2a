package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"eduboard/internal/models"
)

// AppData — слот прикладных данных: доска заданий и таблица баллов
type AppData struct {
	Tasks  map[models.Weekday][]models.Task `json:"tasks"`
	Scores []models.Score                   `json:"scores"`
}

// Snapshot — полный срез состояния в трех слотах
type Snapshot struct {
	Users      []models.User  `json:"users"`
	Groups     []models.Group `json:"groups"`
	AppData    AppData        `json:"appData"`
	ExportedAt time.Time      `json:"exported_at"`
}

// Store хранит снапшоты на диске
type Store struct {
	basePath    string
	maxFileSize int64
}

// NewStore создает хранилище снапшотов
func NewStore(basePath string, maxFileSize int64) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return &Store{basePath: basePath, maxFileSize: maxFileSize}, nil
}

// Save пишет снапшот в новый файл и возвращает его имя
func (s *Store) Save(sn *Snapshot) (string, error) {
	if sn.ExportedAt.IsZero() {
		sn.ExportedAt = time.Now()
	}

	data, err := json.MarshalIndent(sn, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if s.maxFileSize > 0 && int64(len(data)) > s.maxFileSize {
		return "", fmt.Errorf("snapshot size %d exceeds maximum allowed size", len(data))
	}

	name := uuid.New().String() + ".json"
	if err := os.WriteFile(filepath.Join(s.basePath, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	return name, nil
}

// Load читает снапшот по имени файла
func (s *Store) Load(name string) (*Snapshot, error) {
	// Имя не должно выводить за пределы каталога снапшотов
	if filepath.Base(name) != name {
		return nil, fmt.Errorf("invalid snapshot name")
	}

	path := filepath.Join(s.basePath, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot not found: %w", err)
	}
	if s.maxFileSize > 0 && info.Size() > s.maxFileSize {
		return nil, fmt.Errorf("snapshot size %d exceeds maximum allowed size", info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var sn Snapshot
	if err := json.Unmarshal(data, &sn); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &sn, nil
}

// List возвращает имена сохраненных снапшотов, новые первыми
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	type named struct {
		name    string
		modTime time.Time
	}
	var files []named
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, named{name: e.Name(), modTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].modTime.After(files[j].modTime) })

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.name)
	}
	return names, nil
}
