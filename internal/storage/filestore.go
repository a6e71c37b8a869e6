// Package storage provides primitives for connecting to and interacting with data storage systems.
// It contains two stores: a PostgreSQL-backed account store and a file-backed resource store
// that keeps each operational collection in its own pretty-printed JSON file, mirroring most
// of them into a publicly served directory.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/taetu445/RescueBites/internal/pkg/logger"
)

// Key names one logical resource held by the file store.
type Key string

// The fixed set of file-backed resources.
const (
	KeyToday           Key = "today"
	KeyModelData       Key = "modelData"
	KeyEvents          Key = "events"
	KeyPredicted       Key = "predicted"
	KeyPredictedWeekly Key = "predictedWeekly"
	KeyMetricsWeekly   Key = "metricsWeekly"
	KeyMetricsMonthly  Key = "metricsMonthly"
	KeyFoodItems       Key = "foodItems"
	KeyReserved        Key = "reserved"
	KeyCart            Key = "cart"
	KeyRequests        Key = "requests"
	KeyFeedback        Key = "feedback"
)

// fileNames maps each resource key to its on-disk file name. The same name is
// used in both the private data directory and the public mirror.
var fileNames = map[Key]string{
	KeyToday:           "todaysserving.json",
	KeyModelData:       "dataformodel.json",
	KeyEvents:          "events.json",
	KeyPredicted:       "predicted.json",
	KeyPredictedWeekly: "predicted_weekly.json",
	KeyMetricsWeekly:   "metrics_weekly.json",
	KeyMetricsMonthly:  "metrics_monthly.json",
	KeyFoodItems:       "foodItems.json",
	KeyReserved:        "reserved.json",
	KeyCart:            "cart.json",
	KeyRequests:        "requests.json",
	KeyFeedback:        "feedback.json",
}

// ErrUnknownKey indicates a resource key outside the fixed enumeration.
var ErrUnknownKey = errors.New("storage: unknown resource key")

// FileStore maintains the JSON-file-backed resources. Every read-modify-write
// cycle against a resource must run inside Update, which holds that resource's
// mutex; this serializes concurrent handlers so the last-writer-wins file
// overwrite cannot silently drop an earlier update.
type FileStore struct {
	dataDir   string
	publicDir string
	locks     map[Key]*sync.Mutex
	log       *logger.Logger
}

// NewFileStore creates a FileStore rooted at the given private and public
// directories, creating both if absent.
func NewFileStore(dataDir, publicDir string, l *logger.Logger) (*FileStore, error) {
	for _, dir := range []string{dataDir, publicDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			l.Sugar().Errorf("Failed to create data directory %s: %s", dir, err)
			return nil, err
		}
	}

	locks := make(map[Key]*sync.Mutex, len(fileNames))
	for key := range fileNames {
		locks[key] = &sync.Mutex{}
	}

	return &FileStore{dataDir: dataDir, publicDir: publicDir, locks: locks, log: l}, nil
}

// DataPath returns the private path of the resource file.
func (fs *FileStore) DataPath(key Key) string {
	return filepath.Join(fs.dataDir, fileNames[key])
}

// PublicPath returns the mirrored, statically served path of the resource file.
func (fs *FileStore) PublicPath(key Key) string {
	return filepath.Join(fs.publicDir, fileNames[key])
}

// PublicDir returns the directory served to the frontend as static assets.
func (fs *FileStore) PublicDir() string {
	return fs.publicDir
}

// Update acquires the mutex of every listed key (in a fixed order, so
// multi-resource operations cannot deadlock) and runs fn while holding them.
func (fs *FileStore) Update(fn func() error, keys ...Key) error {
	sorted := make([]Key, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for _, key := range sorted {
		mu, ok := fs.locks[key]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		mu.Lock()
		defer mu.Unlock()
	}

	return fn()
}

// Load reads the resource into v. If the file does not exist it is created
// containing the current contents of v, which therefore acts as the fallback;
// absence is a normal, self-healing condition. An empty file also leaves v
// untouched. Malformed JSON propagates as a parse error.
func (fs *FileStore) Load(key Key, v any) error {
	if _, ok := fileNames[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return readJSON(fs.DataPath(key), v)
}

// Sync overwrites the private copy of the resource with v and, for every
// resource except today's servings, overwrites the public mirror as well.
func (fs *FileStore) Sync(key Key, v any) error {
	if _, ok := fileNames[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := writeJSON(fs.DataPath(key), v); err != nil {
		fs.log.Sugar().Errorf("Failed to write %s: %s", fs.DataPath(key), err)
		return err
	}
	if key != KeyToday {
		if err := writeJSON(fs.PublicPath(key), v); err != nil {
			fs.log.Sugar().Errorf("Failed to mirror %s: %s", fs.PublicPath(key), err)
			return err
		}
	}
	return nil
}

// WritePrivate overwrites only the private copy of the resource.
func (fs *FileStore) WritePrivate(key Key, v any) error {
	if _, ok := fileNames[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return writeJSON(fs.DataPath(key), v)
}

// WritePublic overwrites only the public mirror of the resource. Today's
// servings are mirrored through this path on read, not via Sync.
func (fs *FileStore) WritePublic(key Key, v any) error {
	if _, ok := fileNames[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return writeJSON(fs.PublicPath(key), v)
}

func readJSON(fp string, v any) error {
	raw, err := os.ReadFile(fp)
	if errors.Is(err, os.ErrNotExist) {
		return writeJSON(fp, v)
	}
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func writeJSON(fp string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fp, data, 0o644)
}
