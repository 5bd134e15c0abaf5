package diff

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Chars-per-token ratio used when no encoding can be loaded.
const fallbackCharsPerToken = 4

var (
	summaryEncoderOnce sync.Once
	summaryEncoder     *tiktoken.Tiktoken

	// Swapped in tests so they never load a BPE encoding.
	estimateTokensFunc = encodedTokenCount
)

// estimateTokens approximates the model-token cost of text. The figure only
// feeds the summary statistics and is always at least one.
func estimateTokens(text string) int {
	return estimateTokensFunc(text)
}

func encodedTokenCount(text string) int {
	if enc := getSummaryEncoder(); enc != nil {
		if ids := enc.Encode(text, nil, nil); len(ids) > 0 {
			return len(ids)
		}
	}
	return maxInt(1, len(text)/fallbackCharsPerToken)
}

func getSummaryEncoder() *tiktoken.Tiktoken {
	summaryEncoderOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel("gpt-4o")
		if err != nil {
			enc, _ = tiktoken.GetEncoding("cl100k_base")
		}
		summaryEncoder = enc
	})
	return summaryEncoder
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
