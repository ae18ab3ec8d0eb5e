package service

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"sync"

	"ocr-backend/internal/models"
)

var capitalizedTokenRe = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// OCREnhancer runs the four-stage correction pipeline over raw OCR
// text: learned corrections, cursive-confusion fixes, name validation,
// abbreviation expansion. The correction store is optional; without one
// the learned pass is skipped and SaveCorrection fails.
type OCREnhancer struct {
	store   CorrectionStore
	learned map[string]models.LearnedCorrection
	mutex   sync.RWMutex
}

// NewOCREnhancer creates an enhancer. store may be nil.
func NewOCREnhancer(store CorrectionStore) *OCREnhancer {
	return &OCREnhancer{
		store:   store,
		learned: make(map[string]models.LearnedCorrection),
	}
}

// Enhance applies the pipeline to rawText. confidence is the OCR
// engine's own score in [0,1]. Empty or whitespace-only input
// short-circuits to an empty result; nothing in here returns an error
// for data-quality reasons.
func (e *OCREnhancer) Enhance(rawText string, confidence float64, opts *models.EnhanceOptions) models.EnhancementResult {
	if strings.TrimSpace(rawText) == "" {
		return models.EnhancementResult{
			Text:        "",
			Corrections: []models.Correction{},
			Confidence:  0,
		}
	}
	if opts == nil {
		opts = &models.EnhanceOptions{}
	}

	working := rawText
	corrections := []models.Correction{}

	if e.store != nil && !opts.SkipLearned {
		working = e.applyLearnedCorrections(working, &corrections)
	}

	// High-confidence OCR is not second-guessed by the confusion table.
	if confidence <= 0.9 {
		working = e.applyCursiveFixes(working, &corrections)
	}

	working = e.applyNameValidation(working, &corrections)
	working = e.applyAbbreviations(working, &corrections)

	return models.EnhancementResult{
		Text:               working,
		OriginalText:       rawText,
		Corrections:        corrections,
		Confidence:         finalConfidence(confidence, len(corrections)),
		CorrectionCount:    len(corrections),
		EnhancementApplied: true,
	}
}

// finalConfidence boosts the input confidence for having run the
// pipeline, then penalizes 0.02 per correction up to 0.2, floored at 0.1.
func finalConfidence(input float64, correctionCount int) float64 {
	boosted := input + 0.1
	if boosted > 1.0 {
		boosted = 1.0
	}
	penalty := float64(correctionCount) * 0.02
	if penalty > 0.2 {
		penalty = 0.2
	}
	out := boosted - penalty
	if out < 0.1 {
		out = 0.1
	}
	return out
}

// applyLearnedCorrections reloads the learned cache and performs global
// literal substring replacement for every rule still present in the
// working text. Replacement is deterministic: highest frequency first,
// alphabetical within equal frequency.
func (e *OCREnhancer) applyLearnedCorrections(text string, corrections *[]models.Correction) string {
	e.reloadLearned()

	e.mutex.RLock()
	rules := make([]models.LearnedCorrection, 0, len(e.learned))
	for _, c := range e.learned {
		rules = append(rules, c)
	}
	e.mutex.RUnlock()

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Frequency != rules[j].Frequency {
			return rules[i].Frequency > rules[j].Frequency
		}
		return rules[i].Original < rules[j].Original
	})

	working := text
	for _, rule := range rules {
		if rule.Original == "" || !strings.Contains(working, rule.Original) {
			continue
		}
		working = strings.ReplaceAll(working, rule.Original, rule.Corrected)

		conf := 0.8 + float64(rule.Frequency)*0.02
		if conf > 0.99 {
			conf = 0.99
		}
		*corrections = append(*corrections, models.Correction{
			Type:       models.CorrectionLearned,
			Original:   rule.Original,
			Corrected:  rule.Corrected,
			Confidence: conf,
			Reason:     fmt.Sprintf("learned from %d observations", rule.Frequency),
		})
	}
	return working
}

// reloadLearned rebuilds the cache wholesale from storage. A failed read
// is logged and the previous snapshot stays in effect.
func (e *OCREnhancer) reloadLearned() {
	rows, err := e.store.TopCorrections()
	if err != nil {
		log.Printf("[Enhancer] Error reloading learned corrections: %v", err)
		return
	}

	cache := make(map[string]models.LearnedCorrection, len(rows))
	for _, row := range rows {
		cache[row.Original] = row
	}

	e.mutex.Lock()
	e.learned = cache
	e.mutex.Unlock()
}

// applyCursiveFixes runs the structural fix table in declared order,
// emitting one correction per match at fixed confidence 0.7.
func (e *OCREnhancer) applyCursiveFixes(text string, corrections *[]models.Correction) string {
	working := text
	for _, fix := range cursiveFixes {
		matches := fix.Pattern.FindAllString(working, -1)
		if len(matches) == 0 {
			continue
		}
		for _, match := range matches {
			*corrections = append(*corrections, models.Correction{
				Type:       models.CorrectionCursiveFix,
				Original:   match,
				Corrected:  fix.Pattern.ReplaceAllString(match, fix.Replacement),
				Confidence: 0.7,
				Reason:     fix.Reason,
			})
		}
		working = fix.Pattern.ReplaceAllString(working, fix.Replacement)
	}
	return working
}

// applyNameValidation scans capitalized tokens, skips known lexicon
// words, and matches the rest against the period name lists with a
// length-banded edit-distance cap. Matches above 0.9 confidence are
// auto-applied; matches in (0.75, 0.9] become suggestions only.
func (e *OCREnhancer) applyNameValidation(text string, corrections *[]models.Correction) string {
	working := text

	seen := make(map[string]bool)
	for _, token := range capitalizedTokenRe.FindAllString(working, -1) {
		if seen[token] {
			continue
		}
		seen[token] = true

		if InLexicon(token) {
			continue
		}

		candidate, distance, ok := closestName(token)
		if !ok {
			continue
		}

		tokenLen := len([]rune(token))
		candLen := len([]rune(candidate))
		conf := 1.0 - float64(distance)/float64(max(tokenLen, candLen))

		switch {
		case conf > 0.9:
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(token) + `\b`)
			working = re.ReplaceAllString(working, candidate)
			*corrections = append(*corrections, models.Correction{
				Type:       models.CorrectionName,
				Original:   token,
				Corrected:  candidate,
				Confidence: conf,
				Reason:     fmt.Sprintf("edit distance %d from known name", distance),
			})
		case conf > 0.75:
			*corrections = append(*corrections, models.Correction{
				Type:       models.CorrectionNameSuggestion,
				Original:   token,
				Confidence: conf,
				Reason:     fmt.Sprintf("possible misread of %q", candidate),
			})
		}
	}
	return working
}

// closestName finds the nearest name candidate within the length-banded
// distance cap: 1 for tokens up to 4 runes, 2 up to 6, otherwise 3.
// Equally distant candidates are broken alphabetically.
func closestName(token string) (string, int, bool) {
	tokenLower := strings.ToLower(token)
	tokenLen := len([]rune(token))

	maxDist := 3
	switch {
	case tokenLen <= 4:
		maxDist = 1
	case tokenLen <= 6:
		maxDist = 2
	}

	best := ""
	bestDist := maxDist + 1
	for _, cand := range nameCandidates() {
		dist := Levenshtein(tokenLower, strings.ToLower(cand))
		if dist > maxDist {
			continue
		}
		if dist < bestDist || (dist == bestDist && cand < best) {
			best = cand
			bestDist = dist
		}
	}
	if best == "" {
		return "", 0, false
	}
	return best, bestDist, true
}

// applyAbbreviations expands period legal-document contractions with
// word-boundary-anchored literal replacement, one correction per
// occurrence at fixed confidence 0.95.
func (e *OCREnhancer) applyAbbreviations(text string, corrections *[]models.Correction) string {
	working := text
	for _, ab := range abbreviations {
		matches := ab.Pattern.FindAllString(working, -1)
		if len(matches) == 0 {
			continue
		}
		for range matches {
			*corrections = append(*corrections, models.Correction{
				Type:       models.CorrectionAbbreviation,
				Original:   ab.Abbr,
				Corrected:  ab.Expansion,
				Confidence: 0.95,
				Reason:     "period abbreviation",
			})
		}
		working = ab.Pattern.ReplaceAllString(working, ab.Expansion)
	}
	return working
}

// SaveCorrection is the sole write path into the learning loop. It
// persists the observation and updates the in-memory cache.
func (e *OCREnhancer) SaveCorrection(original, corrected, context string) error {
	if e.store == nil {
		return fmt.Errorf("no correction store configured")
	}
	if err := e.store.SaveCorrection(original, corrected, context); err != nil {
		return err
	}

	e.mutex.Lock()
	if existing, ok := e.learned[original]; ok {
		existing.Frequency++
		existing.Corrected = corrected
		e.learned[original] = existing
	} else {
		e.learned[original] = models.LearnedCorrection{
			Original:  original,
			Corrected: corrected,
			Frequency: 1,
		}
	}
	e.mutex.Unlock()

	log.Printf("[Enhancer] Saved correction: %q -> %q", original, corrected)
	return nil
}

// LearnedCorrections returns a snapshot of the learned cache, highest
// frequency first.
func (e *OCREnhancer) LearnedCorrections() []models.LearnedCorrection {
	e.mutex.RLock()
	out := make([]models.LearnedCorrection, 0, len(e.learned))
	for _, c := range e.learned {
		out = append(out, c)
	}
	e.mutex.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Original < out[j].Original
	})
	return out
}

// BatchEnhance runs the pipeline over a set of documents. A
// cross-document word-frequency table is built first; it is carried as
// shared context for the items and does not alter per-item output.
// Items have no ordering dependency between them.
func (e *OCREnhancer) BatchEnhance(items []models.BatchItem) []models.BatchItemResult {
	frequencies := crossDocumentFrequencies(items)
	log.Printf("[Enhancer] Batch of %d documents, %d distinct words", len(items), len(frequencies))

	results := make([]models.BatchItemResult, 0, len(items))
	for _, item := range items {
		results = append(results, models.BatchItemResult{
			ID:     item.ID,
			Result: e.Enhance(item.Text, item.Confidence, nil),
		})
	}
	return results
}

// crossDocumentFrequencies builds a lowercase word-frequency table
// across every document in the batch.
func crossDocumentFrequencies(items []models.BatchItem) map[string]int {
	frequencies := make(map[string]int)
	for _, item := range items {
		for _, word := range Tokenize(NormalizeText(item.Text)) {
			frequencies[word]++
		}
	}
	return frequencies
}
