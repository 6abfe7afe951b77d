package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideOpposite(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Sold, Bought.Opposite())
	assert.Equal(t, Bought, Sold.Opposite())
}
