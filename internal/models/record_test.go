package models_test

import (
	"testing"

	"github.com/Houeta/pair-compare/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestField_Text(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.NotFound, models.Missing.Text())
	assert.Empty(t, models.Found("").Text())
	assert.Equal(t, "$19", models.Found("$19").Text())
}

func TestSlot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Product 1", models.SlotFirst.Label())
	assert.Equal(t, "Product 2", models.SlotSecond.Label())
	assert.Equal(t, "2", models.SlotSecond.Suffix())
	assert.Empty(t, models.Slot(0).Label())
}

func TestNewRecord(t *testing.T) {
	t.Parallel()

	rec := models.NewRecord("https://example.com/p")

	assert.Equal(t, models.NotFound, rec.Title.Text())
	assert.Equal(t, models.NotFound, rec.Details.Text())
	assert.Empty(t, rec.Image)
	assert.Equal(t, "https://example.com/p", rec.URL)
	assert.False(t, rec.Placeholder)
}

func TestNewPlaceholder(t *testing.T) {
	t.Parallel()

	rec := models.NewPlaceholder(models.SlotSecond)

	assert.True(t, rec.Placeholder)
	assert.Equal(t, models.SlotSecond, rec.Slot)
	for _, f := range []models.Field{rec.Title, rec.Price, rec.Rating, rec.Description, rec.Details} {
		assert.Empty(t, f.Text())
	}
	assert.Empty(t, rec.Image)
	assert.Empty(t, rec.URL)
}

func TestSlotFromLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.SlotFirst, models.SlotFromLabel("Product 1"))
	assert.Equal(t, models.SlotSecond, models.SlotFromLabel("Product 2"))
	assert.Equal(t, models.Slot(0), models.SlotFromLabel("Product 3"))
}
