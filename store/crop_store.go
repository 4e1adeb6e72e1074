package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/agroplan/agroplan/models"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "crops.json" // Default filename if only format implies extension
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// FileCropStore implements the CropStore interface using a file backend.
// It supports JSON, YAML, and TOML formats and uses file-level locking.
// The in-memory sequence is the authoritative state; every mutation rewrites
// the whole snapshot, and every operation reloads from disk first so that
// the file stays the single source of truth across processes.
type FileCropStore struct {
	filePath string
	crops    []models.Crop
	flk      *flock.Flock
	format   string // "json", "yaml", or "toml"
}

// NewFileCropStore creates a new instance of FileCropStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileCropStore() *FileCropStore {
	return &FileCropStore{crops: []models.Crop{}}
}

// Initialize configures the FileCropStore.
// It expects a 'dataFile' key in the config map specifying the path to the
// data file, defaulting to 'crops.json' in the current working directory.
// A missing, unreadable, or corrupt snapshot initializes an empty store;
// startup never fails because of snapshot contents.
func (s *FileCropStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	// If filePath was the default and format is not JSON, adjust the extension.
	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	// Ensure the directory for the file path exists
	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)

	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	if !locked {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking initial lock for %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	s.loadCropsFromFileInternal()
	return nil
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadCropsFromFileInternal reads the snapshot, verifies its checksum, and
// unmarshals it. It assumes the file lock is held. It never fails: a
// missing, unreadable, checksum-mismatched, or unparseable snapshot is
// treated identically to "no data" and yields an empty sequence.
func (s *FileCropStore) loadCropsFromFileInternal() {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create an empty data file and matching checksum.
			_ = os.Remove(checksumFilePath)
			if f, createErr := os.OpenFile(s.filePath, os.O_CREATE|os.O_RDWR, 0o644); createErr == nil {
				_ = f.Close()
				_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644)
			}
		}
		s.crops = []models.Crop{}
		return
	}

	if len(data) == 0 {
		_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644)
		s.crops = []models.Crop{}
		return
	}

	// A checksum mismatch marks the snapshot as corrupt; per the recovery
	// contract that is equivalent to no data at all.
	if expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath); readErr == nil {
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		if calculateChecksum(data) != expectedChecksum {
			s.crops = []models.Crop{}
			return
		}
	}

	var cropList models.CropList
	var unmarshalErr error
	switch s.format {
	case formatJSON:
		unmarshalErr = json.Unmarshal(data, &cropList)
	case formatYAML:
		unmarshalErr = yaml.Unmarshal(data, &cropList)
	case formatTOML:
		unmarshalErr = toml.Unmarshal(data, &cropList)
	default:
		unmarshalErr = fmt.Errorf("unsupported data format for loading: %s", s.format)
	}
	if unmarshalErr != nil {
		s.crops = []models.Crop{}
		return
	}

	s.crops = cropList.Crops
	if s.crops == nil {
		s.crops = []models.Crop{}
	}
}

// saveCropsToFileInternal writes the full snapshot to file, then writes its checksum.
func (s *FileCropStore) saveCropsToFileInternal() error {
	cropList := models.CropList{
		Crops:      s.crops,
		TotalCount: len(s.crops),
	}

	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(cropList, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(cropList)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(cropList); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal crops to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}

	actualChecksum := calculateChecksum(marshaledData)
	if err := os.WriteFile(tempChecksumFilePath, []byte(actualChecksum), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	// Atomically move data file and then checksum file
	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("data file %s updated, but failed to update checksum file %s: %w - store may be inconsistent", s.filePath, checksumFilePath, err)
	}

	return nil
}

// generateID creates a new universally unique identifier string.
func generateID() string {
	return uuid.NewString()
}

// indexOfCrop returns the position of the crop with the given id, or -1.
func (s *FileCropStore) indexOfCrop(id string) int {
	for i := range s.crops {
		if s.crops[i].ID == id {
			return i
		}
	}
	return -1
}

// AddCrop prepends a new crop to the sequence and writes the full snapshot.
// It assigns the ID and timestamps and validates the crop before saving.
func (s *FileCropStore) AddCrop(crop models.Crop) (models.Crop, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Crop{}, fmt.Errorf("could not lock file for add: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.loadCropsFromFileInternal()

	if crop.ID == "" {
		crop.ID = generateID()
	} else if s.indexOfCrop(crop.ID) >= 0 {
		return models.Crop{}, fmt.Errorf("crop with ID '%s' already exists", crop.ID)
	}

	now := time.Now().UTC()
	crop.CreatedAt = now
	crop.UpdatedAt = now
	if crop.Status == "" {
		crop.Status = models.StatusActive
	}
	if crop.Tasks == nil {
		crop.Tasks = []models.PlannedTask{}
	}

	if err := models.ValidateStruct(crop); err != nil {
		return models.Crop{}, fmt.Errorf("validation failed for new crop: %w", err)
	}

	// Most recently added first.
	s.crops = append([]models.Crop{crop}, s.crops...)

	if err := s.saveCropsToFileInternal(); err != nil {
		s.loadCropsFromFileInternal()
		return models.Crop{}, fmt.Errorf("failed to save new crop: %w", err)
	}

	return crop, nil
}

// GetCrop retrieves a crop by its unique identifier.
func (s *FileCropStore) GetCrop(id string) (models.Crop, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Crop{}, fmt.Errorf("failed to acquire lock for GetCrop: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.loadCropsFromFileInternal()

	idx := s.indexOfCrop(id)
	if idx < 0 {
		return models.Crop{}, fmt.Errorf("crop with ID %s not found", id)
	}
	return s.crops[idx], nil
}

// ListCrops retrieves the crop sequence in stored order.
// It can optionally apply a filter function and a sort function.
func (s *FileCropStore) ListCrops(filterFn func(models.Crop) bool, sortFn func([]models.Crop) []models.Crop) ([]models.Crop, error) {
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock for ListCrops: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.loadCropsFromFileInternal()

	cropList := make([]models.Crop, 0, len(s.crops))
	if filterFn != nil {
		for _, crop := range s.crops {
			if filterFn(crop) {
				cropList = append(cropList, crop)
			}
		}
	} else {
		cropList = append(cropList, s.crops...)
	}

	if sortFn != nil {
		cropList = sortFn(cropList)
	}

	return cropList, nil
}

// DeleteCrop removes a crop and all of its tasks, then writes the snapshot.
// Deleting an absent id leaves the store unchanged and returns nil.
func (s *FileCropStore) DeleteCrop(id string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for delete: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.loadCropsFromFileInternal()

	idx := s.indexOfCrop(id)
	if idx < 0 {
		return nil
	}

	s.crops = append(s.crops[:idx], s.crops[idx+1:]...)

	if err := s.saveCropsToFileInternal(); err != nil {
		s.loadCropsFromFileInternal()
		return fmt.Errorf("failed to save after deleting crop: %w", err)
	}

	return nil
}

// DeleteAllCrops removes all crops from the store.
// This is a destructive operation; the command layer confirms with the user.
func (s *FileCropStore) DeleteAllCrops() error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for DeleteAllCrops: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.crops = []models.Crop{}

	if err := s.saveCropsToFileInternal(); err != nil {
		return fmt.Errorf("failed to clear data file by saving empty crop list: %w", err)
	}
	return nil
}

// ToggleTask flips the Completed flag on the matching task within the
// matching crop and writes the snapshot. When either id does not resolve,
// the store is left untouched and the returned bool is false.
func (s *FileCropStore) ToggleTask(cropID, taskID string) (models.PlannedTask, bool, error) {
	if err := s.flk.Lock(); err != nil {
		return models.PlannedTask{}, false, fmt.Errorf("could not lock file for toggle: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.loadCropsFromFileInternal()

	cropIdx := s.indexOfCrop(cropID)
	if cropIdx < 0 {
		return models.PlannedTask{}, false, nil
	}

	crop := s.crops[cropIdx]
	taskIdx := -1
	for i := range crop.Tasks {
		if crop.Tasks[i].ID == taskID {
			taskIdx = i
			break
		}
	}
	if taskIdx < 0 {
		return models.PlannedTask{}, false, nil
	}

	crop.Tasks[taskIdx].Completed = !crop.Tasks[taskIdx].Completed
	crop.UpdatedAt = time.Now().UTC()
	s.crops[cropIdx] = crop

	if err := s.saveCropsToFileInternal(); err != nil {
		s.loadCropsFromFileInternal()
		return models.PlannedTask{}, false, fmt.Errorf("failed to save after toggling task: %w", err)
	}

	return crop.Tasks[taskIdx], true, nil
}

// Backup creates a copy of the current snapshot at the destination path.
func (s *FileCropStore) Backup(destinationPath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	input, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read source file %s for backup: %w", s.filePath, err)
	}

	if err = os.WriteFile(destinationPath, input, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the current snapshot with data from the source path.
// The old checksum file is removed; a fresh one is written on the next save.
func (s *FileCropStore) Restore(sourcePath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for restore: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	sourceData, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source backup file %s: %w", sourcePath, err)
	}

	tempFilePath := s.filePath + ".tmp_restore"
	defer func() { _ = os.Remove(tempFilePath) }()

	if err = os.WriteFile(tempFilePath, sourceData, 0o644); err != nil {
		return fmt.Errorf("failed to write restored data to temporary file %s: %w", tempFilePath, err)
	}

	if err = os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to atomically replace file %s with restored data from %s: %w", s.filePath, sourcePath, err)
	}

	checksumFilePath := s.filePath + checksumSuffix
	_ = os.Remove(checksumFilePath) // Best effort removal

	s.loadCropsFromFileInternal()
	return nil
}

// Close releases any resources held by the store, such as file locks.
// flock.Unlock() is idempotent and can be called even if the lock is not held.
func (s *FileCropStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
