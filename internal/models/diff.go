package models

// FieldDiff is the comparison of one field between the two slots.
type FieldDiff struct {
	Name   string
	First  string
	Second string
	Same   bool
}
