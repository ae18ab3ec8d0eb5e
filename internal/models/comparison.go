package models

import "time"

// Quality labels for a comparison
const (
	QualityExcellent = "excellent"
	QualityGood      = "good_with_improvements_needed"
	QualityPoor      = "poor_needs_training"
)

// Recommendation values
const (
	UseSystemOCR       = "use_system_ocr"
	UsePrecompletedOCR = "use_precompleted_ocr"
)

// TextStats summarizes one side of a comparison
type TextStats struct {
	Text      string `json:"text"`
	Length    int    `json:"length"`
	WordCount int    `json:"word_count"`
}

// CommonError reports a mismatch in occurrence counts of a known OCR error pattern
type CommonError struct {
	Pattern     string `json:"pattern"`
	SystemCount int    `json:"system_count"`
	TruthCount  int    `json:"truth_count"`
	Difference  int    `json:"difference"`
}

// Discrepancies is the word-level breakdown between system output and ground truth
type Discrepancies struct {
	MissingWords   []string      `json:"missing_words"`
	ExtraWords     []string      `json:"extra_words"`
	DifferentWords []string      `json:"different_words"`
	CommonErrors   []CommonError `json:"common_errors"`
}

// ComparisonResult is produced by every CompareOCR call
type ComparisonResult struct {
	Timestamp       time.Time     `json:"timestamp"`
	DocumentType    string        `json:"document_type"`
	SystemOCR       TextStats     `json:"system_ocr"`
	PrecompletedOCR TextStats     `json:"precompleted_ocr"`
	Similarity      float64       `json:"similarity"`
	Discrepancies   Discrepancies `json:"discrepancies"`
	Recommendation  string        `json:"recommendation"`
	Quality         string        `json:"quality"`
}

// TrainingExample is the persisted form of a flagged discrepancy pair
type TrainingExample struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	DocumentType  string            `json:"document_type"`
	SystemText    string            `json:"system_text"`
	GroundTruth   string            `json:"ground_truth"`
	Similarity    float64           `json:"similarity"`
	Quality       string            `json:"quality"`
	Discrepancies Discrepancies     `json:"discrepancies"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// MergeResult pairs OCR output with accompanying descriptive text
type MergeResult struct {
	OCRText              string   `json:"ocr_text"`
	AccompanyingText     string   `json:"accompanying_text"`
	MergedText           string   `json:"merged_text"`
	UniqueToAccompanying []string `json:"unique_to_accompanying"`
}

// TrainingStats summarizes the stored training examples
type TrainingStats struct {
	Count             int     `json:"count"`
	AverageSimilarity float64 `json:"average_similarity"`
}
