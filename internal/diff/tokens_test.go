package diff

import "testing"

func TestEstimateTokens_FloorOfOne(t *testing.T) {
	// Empty text encodes to zero tokens regardless of which encoding loaded,
	// so the estimate falls through to the character-ratio floor.
	if got := estimateTokens(""); got != 1 {
		t.Fatalf("empty text must cost one token, got %d", got)
	}
}

func TestEstimateTokens_StubIndirection(t *testing.T) {
	old := estimateTokensFunc
	estimateTokensFunc = func(text string) int { return 42 }
	t.Cleanup(func() { estimateTokensFunc = old })

	if got := estimateTokens("anything"); got != 42 {
		t.Fatalf("estimateTokens must dispatch through the stub, got %d", got)
	}
}
