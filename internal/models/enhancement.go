package models

// Correction types emitted by the enhancement pipeline
const (
	CorrectionLearned        = "learned"
	CorrectionCursiveFix     = "cursive_fix"
	CorrectionName           = "name_correction"
	CorrectionNameSuggestion = "name_suggestion"
	CorrectionAbbreviation   = "abbreviation"
)

// Correction is a single applied (or suggested) fix from the pipeline
type Correction struct {
	Type       string  `json:"type"`
	Original   string  `json:"original"`
	Corrected  string  `json:"corrected,omitempty"` // empty for suggestions
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// EnhancementResult is returned by a single enhancement pass
type EnhancementResult struct {
	Text               string       `json:"text"`
	OriginalText       string       `json:"original_text"`
	Corrections        []Correction `json:"corrections"`
	Confidence         float64      `json:"confidence"`
	CorrectionCount    int          `json:"correction_count"`
	EnhancementApplied bool         `json:"enhancement_applied"`
}

// EnhanceOptions tune a single enhancement call
type EnhanceOptions struct {
	SkipLearned  bool   `json:"skip_learned"`
	DocumentType string `json:"document_type,omitempty"`
}

// LearnedCorrection is a replacement rule derived from observed corrections
type LearnedCorrection struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Frequency int    `json:"frequency"`
}

// BatchItem is one document in a batch enhancement request
type BatchItem struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// BatchItemResult pairs a batch item with its enhancement output
type BatchItemResult struct {
	ID     string            `json:"id"`
	Result EnhancementResult `json:"result"`
}
