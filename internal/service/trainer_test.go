package service

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ocr-backend/internal/models"
)

// captureLogger records every comparison it is handed.
type captureLogger struct {
	logged []models.ComparisonResult
}

func (c *captureLogger) LogComparison(result models.ComparisonResult) error {
	c.logged = append(c.logged, result)
	return nil
}

// failingLogger always fails.
type failingLogger struct{}

func (f *failingLogger) LogComparison(models.ComparisonResult) error {
	return fmt.Errorf("sink unavailable")
}

func TestComparisonTrainer_PerfectMatch(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)

	result := trainer.CompareOCR("Six negroes sold at Natchez", "Six negroes sold at Natchez", "bill_of_sale", nil)

	assert.Equal(t, 1.0, result.Similarity)
	assert.Equal(t, models.QualityExcellent, result.Quality)
	assert.Equal(t, models.UseSystemOCR, result.Recommendation)
	assert.Empty(t, result.Discrepancies.MissingWords)
	assert.Empty(t, result.Discrepancies.ExtraWords)
	assert.Empty(t, result.Discrepancies.CommonErrors)
}

func TestComparisonTrainer_EmptyPairConvention(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)

	result := trainer.CompareOCR("", "", "", nil)
	assert.Equal(t, 1.0, result.Similarity)
}

func TestComparisonTrainer_Symmetry(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)

	a := "the estate of Wm Hopewell"
	b := "the estat of Wm Hopwell"

	assert.Equal(t,
		trainer.CompareOCR(a, b, "", nil).Similarity,
		trainer.CompareOCR(b, a, "", nil).Similarity,
	)
}

func TestClassifyQuality_Boundaries(t *testing.T) {
	tests := []struct {
		similarity    float64
		wantQuality   string
		wantRecommend string
	}{
		{1.0, models.QualityExcellent, models.UseSystemOCR},
		{0.95, models.QualityExcellent, models.UseSystemOCR},
		{0.9499, models.QualityGood, models.UsePrecompletedOCR},
		{0.80, models.QualityGood, models.UsePrecompletedOCR},
		{0.79999, models.QualityPoor, models.UsePrecompletedOCR},
		{0.0, models.QualityPoor, models.UsePrecompletedOCR},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("similarity %v", tt.similarity), func(t *testing.T) {
			quality, recommendation := classifyQuality(tt.similarity)
			assert.Equal(t, tt.wantQuality, quality)
			assert.Equal(t, tt.wantRecommend, recommendation)
		})
	}
}

func TestComparisonTrainer_ThresholdEndToEnd(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)
	base := strings.Repeat("a", 20)

	t.Run("distance 1 over 20 is exactly excellent", func(t *testing.T) {
		result := trainer.CompareOCR(strings.Repeat("a", 19)+"b", base, "", nil)
		assert.InDelta(t, 0.95, result.Similarity, 1e-9)
		assert.Equal(t, models.QualityExcellent, result.Quality)
	})

	t.Run("distance 4 over 20 is exactly good", func(t *testing.T) {
		result := trainer.CompareOCR(strings.Repeat("a", 16)+"bbbb", base, "", nil)
		assert.InDelta(t, 0.80, result.Similarity, 1e-9)
		assert.Equal(t, models.QualityGood, result.Quality)
	})

	t.Run("distance 5 over 20 is poor", func(t *testing.T) {
		result := trainer.CompareOCR(strings.Repeat("a", 15)+"bbbbb", base, "", nil)
		assert.InDelta(t, 0.75, result.Similarity, 1e-9)
		assert.Equal(t, models.QualityPoor, result.Quality)
	})
}

func TestComparisonTrainer_DiscrepancyExtraction(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)

	result := trainer.CompareOCR(
		"the slave owner sold",
		"the slave owner sold six negroes",
		"slave_schedule", nil,
	)

	assert.Equal(t, []string{"six", "negroes"}, result.Discrepancies.MissingWords)
	assert.Empty(t, result.Discrepancies.ExtraWords)
	assert.Empty(t, result.Discrepancies.DifferentWords)
	assert.Equal(t, 4, result.SystemOCR.WordCount)
	assert.Equal(t, 6, result.PrecompletedOCR.WordCount)
}

func TestComparisonTrainer_SetSemantics(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)

	// truth repeats "the" three times, system has it twice: set
	// membership treats the word as present, nothing is flagged missing
	result := trainer.CompareOCR("the owner the", "the the the", "", nil)

	assert.Empty(t, result.Discrepancies.MissingWords)
	assert.Equal(t, []string{"owner"}, result.Discrepancies.ExtraWords)
	assert.Equal(t, []string{"owner -> the"}, result.Discrepancies.DifferentWords)
}

func TestComparisonTrainer_CommonErrors(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)

	t.Run("rn count mismatch reported", func(t *testing.T) {
		result := trainer.CompareOCR("the rn mark", "the m mark", "", nil)

		require.Len(t, result.Discrepancies.CommonErrors, 1)
		ce := result.Discrepancies.CommonErrors[0]
		assert.Equal(t, "rn", ce.Pattern)
		assert.Equal(t, 1, ce.SystemCount)
		assert.Equal(t, 0, ce.TruthCount)
		assert.Equal(t, 1, ce.Difference)
	})

	t.Run("equal counts not reported", func(t *testing.T) {
		result := trainer.CompareOCR("a barn here", "a barn there", "", nil)

		for _, ce := range result.Discrepancies.CommonErrors {
			assert.NotEqual(t, "rn", ce.Pattern)
		}
	})

	t.Run("lone O mismatch", func(t *testing.T) {
		result := trainer.CompareOCR("O negroes", "0 negroes", "", nil)

		found := false
		for _, ce := range result.Discrepancies.CommonErrors {
			if ce.Pattern == "lone_O" {
				found = true
				assert.Equal(t, 1, ce.SystemCount)
				assert.Equal(t, 0, ce.TruthCount)
			}
		}
		assert.True(t, found)
	})
}

func TestComparisonTrainer_LoggerFailureSwallowed(t *testing.T) {
	trainer := NewComparisonTrainer(&failingLogger{}, nil)

	result := trainer.CompareOCR("some text", "some text", "", nil)
	assert.Equal(t, 1.0, result.Similarity)
}

func TestComparisonTrainer_LogsEveryComparison(t *testing.T) {
	logger := &captureLogger{}
	trainer := NewComparisonTrainer(logger, nil)

	trainer.CompareOCR("perfect", "perfect", "will", nil)
	trainer.CompareOCR("rather different", "entirely other words", "will", nil)

	require.Len(t, logger.logged, 2)
	assert.Equal(t, "will", logger.logged[0].DocumentType)
}

func TestComparisonTrainer_TrainingExamplePersistence(t *testing.T) {
	dir := t.TempDir()
	training := NewTrainingStore(filepath.Join(dir, "training_examples"))
	trainer := NewComparisonTrainer(nil, training)

	t.Run("excellent comparison writes nothing", func(t *testing.T) {
		trainer.CompareOCR("identical text", "identical text", "will", nil)

		stats, err := trainer.TrainingStats()
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Count)
	})

	t.Run("discrepant comparison is kept with original texts", func(t *testing.T) {
		systemText := "the slave owner sold"
		groundTruth := "the slave owner sold six negroes"
		result := trainer.CompareOCR(systemText, groundTruth, "Slave Schedule", map[string]string{"county": "Adams"})
		require.Less(t, result.Similarity, 0.95)

		stats, err := trainer.TrainingStats()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Count)
		assert.InDelta(t, result.Similarity, stats.AverageSimilarity, 1e-9)

		entries, err := os.ReadDir(training.Dir())
		require.NoError(t, err)
		require.Len(t, entries, 1)

		nameRe := regexp.MustCompile(`^[0-9a-f]{16}_slave_schedule_\d+\.json$`)
		assert.Regexp(t, nameRe, entries[0].Name())

		// the file must retain the raw pre-normalization texts
		data, err := os.ReadFile(filepath.Join(training.Dir(), entries[0].Name()))
		require.NoError(t, err)
		assert.Contains(t, string(data), systemText)
		assert.Contains(t, string(data), groundTruth)
		assert.Contains(t, string(data), "Adams")
	})
}

func TestTrainingStore_Stats(t *testing.T) {
	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		store := NewTrainingStore(filepath.Join(t.TempDir(), "never_created"))
		stats, err := store.Stats()
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Count)
		assert.Equal(t, 0.0, stats.AverageSimilarity)
	})

	t.Run("unparsable files are skipped", func(t *testing.T) {
		dir := t.TempDir()
		store := NewTrainingStore(dir)

		require.NoError(t, store.SaveExample(models.TrainingExample{
			DocumentType: "will",
			SystemText:   "a",
			GroundTruth:  "b",
			Similarity:   0.5,
		}))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("not json"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

		stats, err := store.Stats()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Count)
		assert.InDelta(t, 0.5, stats.AverageSimilarity, 1e-9)
	})

	t.Run("averages across examples", func(t *testing.T) {
		store := NewTrainingStore(t.TempDir())
		require.NoError(t, store.SaveExample(models.TrainingExample{Similarity: 0.6}))
		require.NoError(t, store.SaveExample(models.TrainingExample{Similarity: 0.8}))

		stats, err := store.Stats()
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Count)
		assert.InDelta(t, 0.7, stats.AverageSimilarity, 1e-9)
	})
}

func TestComparisonTrainer_Merge(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)

	result := trainer.MergeWithAccompanyingText(
		"the negro Cato aged ten",
		"Cato was sold in Richmond",
	)

	assert.Equal(t, []string{"was", "sold", "in", "richmond"}, result.UniqueToAccompanying)
	assert.Contains(t, result.MergedText, "the negro Cato aged ten")
	assert.Contains(t, result.MergedText, "Cato was sold in Richmond")

	t.Run("empty accompanying text merges to the OCR text alone", func(t *testing.T) {
		result := trainer.MergeWithAccompanyingText("only ocr", "")
		assert.Equal(t, "only ocr", result.MergedText)
		assert.Empty(t, result.UniqueToAccompanying)
	})
}

func TestComparisonTrainer_NilTrainingStore(t *testing.T) {
	trainer := NewComparisonTrainer(nil, nil)
	stats, err := trainer.TrainingStats()
	require.NoError(t, err)
	assert.Equal(t, models.TrainingStats{}, stats)
}
