package pairing

import (
	"strconv"
	"strings"
)

const retryMarker = "_retry"

// DeriveSeed returns the seed used for retry number attempt of original. Each
// retry extends the previous retry's seed, so attempt 1 of "s" is
// "s_retry0_retry1".
func DeriveSeed(original string, attempt int) string {
	var b strings.Builder
	b.WriteString(original)
	for k := 0; k <= attempt; k++ {
		b.WriteString(retryMarker)
		b.WriteString(strconv.Itoa(k))
	}
	return b.String()
}
