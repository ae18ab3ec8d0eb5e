package service

import "strings"

// Word lists drawn from the document corpus: titles, common period first
// names for free and enslaved persons, place names, document terminology
// and number words. Name lists double as fuzzy-correction candidates.
var (
	titleWords = []string{
		"Mr", "Mrs", "Miss", "Master", "Esquire", "Honorable", "Reverend",
		"Doctor", "Colonel", "Major", "Captain", "Lieutenant", "General",
		"Judge", "Sheriff", "Widow",
	}

	maleNames = []string{
		"John", "William", "James", "George", "Thomas", "Henry", "Charles",
		"Samuel", "Robert", "Joseph", "Edward", "Benjamin", "David", "Daniel",
		"Richard", "Isaac", "Jacob", "Andrew", "Peter", "Francis", "Alexander",
		"Nathaniel", "Stephen", "Moses", "Aaron", "Abraham", "Solomon",
		"Christopher", "Bartholomew",
	}

	femaleNames = []string{
		"Mary", "Elizabeth", "Sarah", "Ann", "Jane", "Margaret", "Martha",
		"Nancy", "Catherine", "Susan", "Hannah", "Rebecca", "Lucy", "Rachel",
		"Eliza", "Harriet", "Charlotte", "Caroline", "Frances", "Amelia",
		"Dinah", "Phoebe", "Esther", "Ruth", "Abigail", "Molly",
	}

	enslavedNames = []string{
		"Cato", "Caesar", "Pompey", "Scipio", "Cuffee", "Quash", "Mingo",
		"Sambo", "Juba", "Cudjo", "Prince", "London", "Bristol", "Glasgow",
		"Hercules", "Titus", "Nero", "Primus", "Venus", "Phillis", "Chloe",
		"Daphne", "Flora", "Sylvia", "Patience", "Charity", "Tempy", "Bett",
		"Milly",
	}

	placeNames = []string{
		"Virginia", "Carolina", "Georgia", "Louisiana", "Alabama",
		"Mississippi", "Tennessee", "Kentucky", "Maryland", "Charleston",
		"Savannah", "Richmond", "Norfolk", "Natchez", "Orleans", "Baltimore",
		"Hopewell", "County", "Parish", "Plantation",
	}

	documentTerms = []string{
		"slave", "slaves", "negro", "negroes", "mulatto", "servant",
		"servants", "schedule", "census", "will", "testament", "estate",
		"deed", "probate", "inventory", "appraisement", "chattel", "chattels",
		"dollars", "pounds", "value", "aged", "years", "months", "owner",
		"owners", "heirs", "executor", "administrator", "witness",
		"whereas", "bequeath", "devise", "aforesaid", "abovementioned",
	}

	numberWords = []string{
		"one", "two", "three", "four", "five", "six", "seven", "eight",
		"nine", "ten", "eleven", "twelve", "twenty", "thirty", "forty",
		"fifty", "sixty", "seventy", "eighty", "ninety", "hundred",
		"thousand",
	}
)

// lexiconSet is the flattened membership set across every word list,
// built once at package init. Both the declared casing and the lowercase
// form are members.
var lexiconSet = buildLexiconSet()

func buildLexiconSet() map[string]bool {
	set := make(map[string]bool)
	for _, list := range [][]string{
		titleWords, maleNames, femaleNames, enslavedNames,
		placeNames, documentTerms, numberWords,
	} {
		for _, w := range list {
			set[w] = true
			set[strings.ToLower(w)] = true
		}
	}
	return set
}

// InLexicon reports whether a token is already a known word, matched
// exactly or case-folded.
func InLexicon(token string) bool {
	return lexiconSet[token] || lexiconSet[strings.ToLower(token)]
}

// nameCandidates returns every candidate name for fuzzy correction.
// Iteration order is fixed but ties between equally distant candidates
// are broken alphabetically by the caller, so the order here carries no
// policy weight.
func nameCandidates() []string {
	out := make([]string, 0, len(maleNames)+len(femaleNames)+len(enslavedNames))
	out = append(out, maleNames...)
	out = append(out, femaleNames...)
	out = append(out, enslavedNames...)
	return out
}
