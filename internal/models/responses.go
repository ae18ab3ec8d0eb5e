package models

// EnhanceRequest is the payload for /api/ocr/enhance
type EnhanceRequest struct {
	Text         string  `json:"text"`
	Confidence   float64 `json:"confidence"`
	SkipLearned  bool    `json:"skip_learned"`
	DocumentType string  `json:"document_type,omitempty"`
}

// BatchEnhanceRequest is the payload for /api/ocr/enhance/batch
type BatchEnhanceRequest struct {
	Items []BatchItem `json:"items"`
}

// BatchEnhanceResponse is returned by /api/ocr/enhance/batch
type BatchEnhanceResponse struct {
	Results []BatchItemResult `json:"results"`
	Count   int               `json:"count"`
}

// SaveCorrectionRequest is the payload for /api/ocr/correction
type SaveCorrectionRequest struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Context   string `json:"context,omitempty"`
}

// CorrectionsResponse is returned by /api/ocr/corrections
type CorrectionsResponse struct {
	Corrections []LearnedCorrection `json:"corrections"`
	Count       int                 `json:"count"`
}

// CompareRequest is the payload for /api/ocr/compare
type CompareRequest struct {
	SystemText   string            `json:"system_text"`
	GroundTruth  string            `json:"ground_truth"`
	DocumentType string            `json:"document_type,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// MergeRequest is the payload for /api/ocr/merge
type MergeRequest struct {
	OCRText          string `json:"ocr_text"`
	AccompanyingText string `json:"accompanying_text"`
}

// StorageConfig is the runtime storage configuration exposed over /api/config/storage
type StorageConfig struct {
	DataDir         string `json:"data_dir"`
	CorrectionStore string `json:"correction_store"` // "postgres", "redis" or ""
}
