package service

// confusionTable maps a glyph to the characters commonly misread as it
// in cursive hands and historical typefaces. It answers "what else could
// this glyph have been" — nothing applies it automatically.
var confusionTable = map[rune][]rune{
	// lowercase
	'a': {'o', 'u', 'e'},
	'b': {'h', 'l', 'f'},
	'c': {'e', 'o'},
	'd': {'a', 'o', 'b'},
	'e': {'c', 'o', 'a'},
	'f': {'s', 't', 'l'},
	'g': {'q', 'y', 'j'},
	'h': {'b', 'n', 'k'},
	'i': {'l', 'j', 't'},
	'j': {'i', 'g', 'y'},
	'k': {'h', 'b'},
	'l': {'i', 't', 'b', '1'},
	'm': {'n', 'w'},
	'n': {'m', 'u', 'r'},
	'o': {'a', 'e', '0'},
	'p': {'g', 'q'},
	'q': {'g', 'p'},
	'r': {'n', 'v', 's'},
	's': {'f', 'z'},
	't': {'f', 'l', 'i'},
	'u': {'n', 'v', 'a'},
	'v': {'u', 'r', 'y'},
	'w': {'m', 'v'},
	'x': {'z'},
	'y': {'g', 'j', 'v'},
	'z': {'s', 'x'},
	// uppercase
	'B': {'R', 'P', 'D'},
	'C': {'G', 'O', 'E'},
	'D': {'O', 'B'},
	'E': {'C', 'F'},
	'F': {'E', 'T', 'P'},
	'G': {'C', 'O', 'Q'},
	'H': {'N', 'K', 'M'},
	'I': {'J', 'L', 'T'},
	'J': {'I', 'T'},
	'K': {'R', 'H'},
	'L': {'I', 'E', 'T'},
	'M': {'N', 'W', 'H'},
	'N': {'M', 'H', 'W'},
	'O': {'Q', 'C', 'D', '0'},
	'P': {'B', 'R', 'F'},
	'Q': {'O', 'G'},
	'R': {'B', 'K', 'P'},
	'S': {'5', '8'},
	'T': {'F', 'I', 'J'},
	'U': {'V', 'W'},
	'V': {'U', 'W', 'Y'},
	'W': {'M', 'V', 'U'},
	'Y': {'V', 'T'},
	'Z': {'2', '7'},
	// digits and symbols frequent in schedules and ledgers
	'0': {'O', 'Q', 'o'},
	'1': {'l', 'I', '7'},
	'2': {'Z', 'z'},
	'3': {'8', '5'},
	'5': {'S', '3'},
	'6': {'b', 'G'},
	'7': {'1', 'T'},
	'8': {'3', 'B', 'S'},
	'9': {'g', 'q'},
	'&': {'8'},
	'$': {'S'},
}

// ConfusionCandidates returns the glyphs historically misread as c, in
// declared priority order. Unknown glyphs return nil.
func ConfusionCandidates(c rune) []rune {
	alts, ok := confusionTable[c]
	if !ok {
		return nil
	}
	out := make([]rune, len(alts))
	copy(out, alts)
	return out
}
