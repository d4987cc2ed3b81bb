package integrity

// Levenshtein returns the edit distance between a and b counted in
// characters, with unit cost for insertion, deletion and substitution.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	dp := make([][]int, len(ra)+1)
	for i := range dp {
		dp[i] = make([]int, len(rb)+1)
		dp[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		dp[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			dp[i][j] = min(
				dp[i-1][j]+1,
				dp[i][j-1]+1,
				dp[i-1][j-1]+cost,
			)
		}
	}
	return dp[len(ra)][len(rb)]
}

// Similarity is 1 - distance/longest length. Two empty strings are
// identical.
func Similarity(a, b string) (similarity float64, distance int) {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 1, 0
	}
	distance = Levenshtein(a, b)
	return 1 - float64(distance)/float64(longest), distance
}
