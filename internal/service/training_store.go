package service

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ocr-backend/internal/models"
	"ocr-backend/internal/state"
)

var docTypeSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// TrainingStore writes flagged comparison pairs as standalone JSON
// files and scans them back for statistics. Volume is expected to stay
// small (hundreds of files), so no index is kept.
type TrainingStore struct {
	dir string
}

// NewTrainingStore creates a store rooted at dir. With an empty dir the
// store follows the runtime data-dir setting, so config changes take
// effect without rewiring.
func NewTrainingStore(dir string) *TrainingStore {
	return &TrainingStore{dir: dir}
}

// Dir returns the directory examples are written to.
func (t *TrainingStore) Dir() string {
	if t.dir != "" {
		return t.dir
	}
	return filepath.Join(state.State.GetDataDir(), "training_examples")
}

// SaveExample persists one training example. The file name carries an
// opaque hex token, the document type and the timestamp.
func (t *TrainingStore) SaveExample(example models.TrainingExample) error {
	dir := t.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if example.ID == "" {
		example.ID = randomHexID()
	}

	docType := docTypeSanitizeRe.ReplaceAllString(strings.ToLower(example.DocumentType), "_")
	if docType == "" || docType == "_" {
		docType = "document"
	}
	name := fmt.Sprintf("%s_%s_%d.json", example.ID, docType, example.Timestamp.Unix())

	data, err := json.MarshalIndent(example, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return err
	}

	log.Printf("[TrainingStore] Saved training example %s (similarity=%.3f)", name, example.Similarity)
	return nil
}

// Stats scans every stored example and returns the count and average
// similarity. Unparsable files are logged and skipped.
func (t *TrainingStore) Stats() (models.TrainingStats, error) {
	dir := t.Dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return models.TrainingStats{}, nil
		}
		return models.TrainingStats{}, err
	}

	count := 0
	totalSimilarity := 0.0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("[TrainingStore] Error reading %s: %v", entry.Name(), err)
			continue
		}
		var example models.TrainingExample
		if err := json.Unmarshal(data, &example); err != nil {
			log.Printf("[TrainingStore] Error parsing %s: %v", entry.Name(), err)
			continue
		}
		count++
		totalSimilarity += example.Similarity
	}

	stats := models.TrainingStats{Count: count}
	if count > 0 {
		stats.AverageSimilarity = totalSimilarity / float64(count)
	}
	return stats, nil
}

// randomHexID returns 8 random bytes as hex.
func randomHexID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand on supported platforms does not fail; degrade to a
		// fixed marker rather than propagate from a naming helper.
		return "0000000000000000"
	}
	return hex.EncodeToString(buf)
}
