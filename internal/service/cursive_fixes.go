package service

import "regexp"

// cursiveFix is one structural correction rule. Rules run in declared
// order and each rule operates on the previous rule's output, so the
// order of the fix table is load-bearing and must never be resorted.
type cursiveFix struct {
	Label       string
	Pattern     *regexp.Regexp
	Replacement string
	Reason      string
}

// cursiveFixes covers the recurring misreads of cursive and archaic
// typefaces: digraph confusions, long s, doubled-letter archaisms,
// short-word typos, honorific contractions, spelling variants of the
// corpus's most frequent terms, and glyph mixups inside numbers.
var cursiveFixes = []cursiveFix{
	// archaic digraphs
	{"rn_to_m", regexp.MustCompile(`rn([aeiou])`), "m$1", "rn digraph misread before vowel"},
	{"iu_to_in", regexp.MustCompile(`iu`), "in", "iu digraph misread"},

	// long s
	{"long_s", regexp.MustCompile(`ſ`), "s", "long s normalized"},

	// doubled-letter archaisms
	{"uu_to_w", regexp.MustCompile(`uu`), "w", "doubled u archaism"},
	{"vv_to_w", regexp.MustCompile(`vv`), "w", "doubled v archaism"},
	{"ii_to_u", regexp.MustCompile(`ii`), "u", "doubled i misread"},

	// common short-word typos
	{"typo_teh", regexp.MustCompile(`\bteh\b`), "the", "common typo"},
	{"typo_tbe", regexp.MustCompile(`\btbe\b`), "the", "common typo"},
	{"typo_tne", regexp.MustCompile(`\btne\b`), "the", "common typo"},
	{"typo_adn", regexp.MustCompile(`\badn\b`), "and", "common typo"},
	{"typo_witb", regexp.MustCompile(`\bwitb\b`), "with", "common typo"},
	{"typo_wbo", regexp.MustCompile(`\bwbo\b`), "who", "common typo"},
	{"typo_bave", regexp.MustCompile(`\bbave\b`), "have", "common typo"},

	// honorific contractions of given names
	{"honorific_jno", regexp.MustCompile(`\bJno\b`), "John", "honorific contraction"},
	{"honorific_wm", regexp.MustCompile(`\bWm\b`), "William", "honorific contraction"},
	{"honorific_thos", regexp.MustCompile(`\bThos\b`), "Thomas", "honorific contraction"},
	{"honorific_robt", regexp.MustCompile(`\bRobt\b`), "Robert", "honorific contraction"},
	{"honorific_jas", regexp.MustCompile(`\bJas\b`), "James", "honorific contraction"},
	{"honorific_saml", regexp.MustCompile(`\bSaml\b`), "Samuel", "honorific contraction"},
	{"honorific_benjn", regexp.MustCompile(`\bBenjn\b`), "Benjamin", "honorific contraction"},
	{"honorific_eliz", regexp.MustCompile(`\bEliz\b`), "Elizabeth", "honorific contraction"},

	// spelling variants of high-frequency corpus terms
	{"variant_dollars", regexp.MustCompile(`\b[Dd]ollers\b`), "dollars", "spelling variant"},
	{"variant_dollars_abbr", regexp.MustCompile(`\b[Dd]olls\b`), "dollars", "spelling variant"},
	{"variant_negro", regexp.MustCompile(`\bNegroe\b`), "Negro", "spelling variant"},
	{"variant_negros", regexp.MustCompile(`\b[Nn]egros\b`), "Negroes", "spelling variant"},

	// digit/letter disambiguation, only inside numeric context
	{"digit_O", regexp.MustCompile(`(\d)O(\d)`), "${1}0${2}", "letter O between digits"},
	{"digit_l", regexp.MustCompile(`(\d)l(\d)`), "${1}1${2}", "letter l between digits"},
	{"digit_S", regexp.MustCompile(`(\d)S(\d)`), "${1}5${2}", "letter S between digits"},
}

// abbreviation is a period legal-document contraction and its expansion.
type abbreviation struct {
	Abbr      string
	Expansion string
	Pattern   *regexp.Regexp
}

var abbreviations = buildAbbreviations()

func buildAbbreviations() []abbreviation {
	pairs := []struct{ abbr, expansion string }{
		{"Esqr", "Esquire"},
		{"Esq", "Esquire"},
		{"Honble", "Honorable"},
		{"Revd", "Reverend"},
		{"Majr", "Major"},
		{"Capt", "Captain"},
		{"Lieut", "Lieutenant"},
		{"Genl", "General"},
		{"Do", "Ditto"},
		{"do", "ditto"},
		{"Viz", "Namely"},
		{"viz", "namely"},
		{"Inst", "Instant"},
		{"inst", "instant"},
		{"Ult", "Ultimo"},
		{"ult", "ultimo"},
		{"Prox", "Proximo"},
		{"afsd", "aforesaid"},
		{"aforesd", "aforesaid"},
		{"sd", "said"},
		{"abovemtd", "abovementioned"},
		{"yrs", "years"},
		{"yr", "year"},
		{"mos", "months"},
		{"mo", "month"},
		{"£", "pounds"},
		{"₤", "pounds"},
	}

	out := make([]abbreviation, 0, len(pairs))
	for _, p := range pairs {
		quoted := regexp.QuoteMeta(p.abbr)
		var re *regexp.Regexp
		if p.abbr == "£" || p.abbr == "₤" {
			// currency signs are not word characters, \b does not apply
			re = regexp.MustCompile(quoted)
		} else {
			re = regexp.MustCompile(`\b` + quoted + `\b`)
		}
		out = append(out, abbreviation{Abbr: p.abbr, Expansion: p.expansion, Pattern: re})
	}
	return out
}
