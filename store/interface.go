package store

import "github.com/agroplan/agroplan/models"

// CropStore defines the interface for crop persistence.
// It owns the authoritative ordered crop sequence for the current user and
// keeps a durable whole-snapshot mirror in sync: every mutation serializes
// the full sequence, and load rehydrates it wholesale at startup.
type CropStore interface {
	// Initialize configures the store with necessary parameters, such as
	// file path and data format. It must be called before any other store
	// operation. A missing or unreadable snapshot initializes an empty
	// store; it is never an error.
	Initialize(config map[string]string) error

	// AddCrop prepends a new crop to the sequence (most recent first) and
	// writes the full snapshot. It returns the stored crop with its
	// assigned identifier and timestamps.
	AddCrop(crop models.Crop) (models.Crop, error)

	// GetCrop retrieves a crop by its unique identifier.
	GetCrop(id string) (models.Crop, error)

	// ListCrops retrieves the crop sequence in stored order (most recently
	// added first). filterFn, when non-nil, keeps only matching crops;
	// sortFn, when non-nil, reorders the result in place.
	ListCrops(filterFn func(models.Crop) bool, sortFn func([]models.Crop) []models.Crop) ([]models.Crop, error)

	// DeleteCrop removes the matching crop and all of its tasks, then writes
	// the snapshot. Deleting an absent id is a no-op, not an error.
	DeleteCrop(id string) error

	// DeleteAllCrops removes every crop. This is a destructive operation.
	DeleteAllCrops() error

	// ToggleTask flips the Completed flag on the matching task within the
	// matching crop and writes the snapshot. When either id does not
	// resolve, it is a no-op and the returned bool is false.
	ToggleTask(cropID, taskID string) (models.PlannedTask, bool, error)

	// Backup copies the current snapshot to the destination path.
	Backup(destinationPath string) error

	// Restore replaces the current snapshot with data from the source path.
	Restore(sourcePath string) error

	// Close releases any resources held by the store, such as file locks.
	Close() error
}
