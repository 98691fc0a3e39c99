package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWineInputNormalize(t *testing.T) {
	blank, spaces, red := "", "  ", "red"
	in := WineInput{
		Name:           "x",
		Country:        &spaces,
		GrapeVarieties: &blank,
		WineType:       &red,
		Image:          &blank,
		Notes:          "  ",
	}
	in.Normalize()

	assert.Nil(t, in.Country)
	assert.Nil(t, in.GrapeVarieties)
	assert.Nil(t, in.Image)
	assert.Equal(t, &red, in.WineType)
	assert.Equal(t, "  ", in.Notes)
}
