package csv

import (
	"strings"
)

// Supported delimiters. Spreadsheet exports in Spanish locales use ';'
// because ',' is the decimal separator.
const (
	DelimiterComma     = ','
	DelimiterSemicolon = ';'
	DelimiterTab       = '\t'
	DelimiterPipe      = '|'
)

// DetectDelimiter picks the delimiter whose count is highest and most
// consistent across the first non-empty lines of sample.
func DetectDelimiter(sample string) rune {
	sampleLines := make([]string, 0, 5)
	for _, line := range strings.Split(sample, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sampleLines = append(sampleLines, trimmed)
		if len(sampleLines) >= 5 {
			break
		}
	}
	if len(sampleLines) == 0 {
		return DelimiterComma
	}

	best := rune(DelimiterComma)
	maxConsistency := 0.0

	for _, delim := range []rune{DelimiterComma, DelimiterSemicolon, DelimiterTab, DelimiterPipe} {
		counts := make([]int, 0, len(sampleLines))
		sum := 0
		for _, line := range sampleLines {
			c := strings.Count(line, string(delim))
			counts = append(counts, c)
			sum += c
		}
		avg := float64(sum) / float64(len(counts))
		if avg == 0 {
			continue
		}

		variance := 0.0
		for _, c := range counts {
			diff := float64(c) - avg
			variance += diff * diff
		}
		variance /= float64(len(counts))

		consistency := avg / (1.0 + variance)
		if consistency > maxConsistency {
			maxConsistency = consistency
			best = delim
		}
	}

	return best
}
