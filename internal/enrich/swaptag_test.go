package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySwap_Buy(t *testing.T) {
	text := "alice swapped 2.5 SOL for 100 [BONK](https://solscan.io/token/abc) ($2.5)"

	tag, ok := classifySwap(text)
	require.True(t, ok)
	assert.Equal(t, "Buy $250.00", tag)
}

func TestClassifySwap_Sell(t *testing.T) {
	text := "alice swapped 100 [BONK](https://solscan.io/token/abc) ($2.5) for 250 USDC"

	tag, ok := classifySwap(text)
	require.True(t, ok)
	assert.Equal(t, "Sell $250.00", tag)
}

func TestClassifySwap_Rounding(t *testing.T) {
	text := "bob swapped 1 SOL for 3 [WIF](https://solscan.io/token/xyz) ($0.333)"

	tag, ok := classifySwap(text)
	require.True(t, ok)
	assert.Equal(t, "Buy $1.00", tag)
}

func TestClassifySwap_StableToStable(t *testing.T) {
	_, ok := classifySwap("carol swapped 10 USDC for 10 USDT ($1.0)")
	assert.False(t, ok)
}

func TestClassifySwap_NoPriceAnnotation(t *testing.T) {
	_, ok := classifySwap("alice swapped 2.5 SOL for 100 [BONK](https://solscan.io/token/abc)")
	assert.False(t, ok)
}

func TestClassifySwap_ShapeMismatch(t *testing.T) {
	_, ok := classifySwap("transferred 5 SOL to bob")
	assert.False(t, ok)
}
