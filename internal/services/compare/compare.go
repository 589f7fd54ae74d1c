package compare

import "github.com/Houeta/pair-compare/internal/models"

// Fields compares the two slots field by field. Placeholders have nothing to compare.
// Equality is decided on the values themselves, so a missing field never equals a
// present one that happens to read "Not found".
func Fields(first, second models.Record) []models.FieldDiff {
	if first.Placeholder || second.Placeholder {
		return nil
	}

	pairs := []struct {
		name          string
		first, second models.Field
	}{
		{"Title", first.Title, second.Title},
		{"Price", first.Price, second.Price},
		{"Rating", first.Rating, second.Rating},
		{"Description", first.Description, second.Description},
		{"Details", first.Details, second.Details},
		{"Image", models.Found(first.Image), models.Found(second.Image)},
	}

	diffs := make([]models.FieldDiff, 0, len(pairs))
	for _, p := range pairs {
		diffs = append(diffs, models.FieldDiff{
			Name:   p.name,
			First:  p.first.Text(),
			Second: p.second.Text(),
			Same:   p.first == p.second,
		})
	}
	return diffs
}

// Changed returns the names of fields that differ between the slots.
func Changed(diffs []models.FieldDiff) []string {
	var names []string
	for _, d := range diffs {
		if !d.Same {
			names = append(names, d.Name)
		}
	}
	return names
}
