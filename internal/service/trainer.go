package service

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"ocr-backend/internal/models"
)

// trainingThreshold is the similarity below which a comparison is kept
// as a training example.
const trainingThreshold = 0.95

// commonErrorPatterns are archaic-OCR misread shapes counted on both
// sides of a comparison. A mismatch in counts is reported, not a match.
var commonErrorPatterns = []struct {
	Name    string
	Pattern *regexp.Regexp
}{
	{"rn", regexp.MustCompile(`rn`)},
	{"lone_l", regexp.MustCompile(`\bl\b`)},
	{"lone_O", regexp.MustCompile(`\bO\b`)},
	{"vv", regexp.MustCompile(`vv`)},
}

// ComparisonTrainer scores candidate OCR transcriptions against trusted
// ground truth and persists discrepant pairs for future training. Both
// the logger and the training store are optional; their failures never
// propagate to the caller.
type ComparisonTrainer struct {
	logger   ComparisonLogger
	training *TrainingStore
}

// NewComparisonTrainer creates a trainer. logger and training may be nil.
func NewComparisonTrainer(logger ComparisonLogger, training *TrainingStore) *ComparisonTrainer {
	return &ComparisonTrainer{logger: logger, training: training}
}

// CompareOCR scores systemText against groundTruth. Ground truth is
// always trusted: the recommendation only prefers system output when it
// already nearly matches.
func (t *ComparisonTrainer) CompareOCR(systemText, groundTruth, documentType string, metadata map[string]string) models.ComparisonResult {
	norm1 := NormalizeText(systemText)
	norm2 := NormalizeText(groundTruth)

	similarity := SimilarityRatio(systemText, groundTruth)
	quality, recommendation := classifyQuality(similarity)

	result := models.ComparisonResult{
		Timestamp:    time.Now(),
		DocumentType: documentType,
		SystemOCR: models.TextStats{
			Text:      systemText,
			Length:    len([]rune(systemText)),
			WordCount: len(Tokenize(norm1)),
		},
		PrecompletedOCR: models.TextStats{
			Text:      groundTruth,
			Length:    len([]rune(groundTruth)),
			WordCount: len(Tokenize(norm2)),
		},
		Similarity:     similarity,
		Discrepancies:  extractDiscrepancies(systemText, groundTruth, norm1, norm2),
		Recommendation: recommendation,
		Quality:        quality,
	}

	if t.logger != nil {
		if err := t.logger.LogComparison(result); err != nil {
			log.Printf("[Trainer] Error logging comparison: %v", err)
		}
	}

	if similarity < trainingThreshold && t.training != nil {
		example := models.TrainingExample{
			Timestamp:     result.Timestamp,
			DocumentType:  documentType,
			SystemText:    systemText,
			GroundTruth:   groundTruth,
			Similarity:    similarity,
			Quality:       quality,
			Discrepancies: result.Discrepancies,
			Metadata:      metadata,
		}
		if err := t.training.SaveExample(example); err != nil {
			log.Printf("[Trainer] Error saving training example: %v", err)
		}
	}

	return result
}

// classifyQuality maps a similarity score to its quality label and
// recommendation. Lower bounds are inclusive.
func classifyQuality(similarity float64) (quality, recommendation string) {
	switch {
	case similarity >= 0.95:
		return models.QualityExcellent, models.UseSystemOCR
	case similarity >= 0.80:
		return models.QualityGood, models.UsePrecompletedOCR
	default:
		return models.QualityPoor, models.UsePrecompletedOCR
	}
}

// extractDiscrepancies builds the word-level breakdown. Missing and
// extra words use set membership, not occurrence counts: a word present
// anywhere in the other side is treated as present.
func extractDiscrepancies(rawSystem, rawTruth, normSystem, normTruth string) models.Discrepancies {
	systemTokens := Tokenize(normSystem)
	truthTokens := Tokenize(normTruth)

	systemSet := make(map[string]bool, len(systemTokens))
	for _, w := range systemTokens {
		systemSet[w] = true
	}
	truthSet := make(map[string]bool, len(truthTokens))
	for _, w := range truthTokens {
		truthSet[w] = true
	}

	missing := []string{}
	seen := make(map[string]bool)
	for _, w := range truthTokens {
		if !systemSet[w] && !seen[w] {
			missing = append(missing, w)
			seen[w] = true
		}
	}

	extra := []string{}
	seen = make(map[string]bool)
	for _, w := range systemTokens {
		if !truthSet[w] && !seen[w] {
			extra = append(extra, w)
			seen[w] = true
		}
	}

	// index-aligned pairs that disagree
	different := []string{}
	n := min(len(systemTokens), len(truthTokens))
	for i := 0; i < n; i++ {
		if systemTokens[i] != truthTokens[i] {
			different = append(different, fmt.Sprintf("%s -> %s", systemTokens[i], truthTokens[i]))
		}
	}

	commonErrors := []models.CommonError{}
	for _, p := range commonErrorPatterns {
		systemCount := len(p.Pattern.FindAllString(rawSystem, -1))
		truthCount := len(p.Pattern.FindAllString(rawTruth, -1))
		if systemCount != truthCount {
			diff := systemCount - truthCount
			if diff < 0 {
				diff = -diff
			}
			commonErrors = append(commonErrors, models.CommonError{
				Pattern:     p.Name,
				SystemCount: systemCount,
				TruthCount:  truthCount,
				Difference:  diff,
			})
		}
	}

	return models.Discrepancies{
		MissingWords:   missing,
		ExtraWords:     extra,
		DifferentWords: different,
		CommonErrors:   commonErrors,
	}
}

// MergeWithAccompanyingText places OCR output alongside descriptive
// text that arrived with the document, and reports the normalized words
// unique to the accompanying side.
func (t *ComparisonTrainer) MergeWithAccompanyingText(ocrText, accompanyingText string) models.MergeResult {
	ocrTokens := Tokenize(NormalizeText(ocrText))
	ocrSet := make(map[string]bool, len(ocrTokens))
	for _, w := range ocrTokens {
		ocrSet[w] = true
	}

	unique := []string{}
	seen := make(map[string]bool)
	for _, w := range Tokenize(NormalizeText(accompanyingText)) {
		if !ocrSet[w] && !seen[w] {
			unique = append(unique, w)
			seen[w] = true
		}
	}

	merged := strings.TrimSpace(ocrText)
	if strings.TrimSpace(accompanyingText) != "" {
		merged = merged + "\n\n--- Accompanying Text ---\n\n" + strings.TrimSpace(accompanyingText)
	}

	return models.MergeResult{
		OCRText:              ocrText,
		AccompanyingText:     accompanyingText,
		MergedText:           merged,
		UniqueToAccompanying: unique,
	}
}

// TrainingStats reports count and average similarity over the stored
// training examples.
func (t *ComparisonTrainer) TrainingStats() (models.TrainingStats, error) {
	if t.training == nil {
		return models.TrainingStats{}, nil
	}
	return t.training.Stats()
}
