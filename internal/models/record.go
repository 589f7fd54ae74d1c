package models

import "time"

// NotFound is the text a missing field renders as in the CSV log and the HTML form.
const NotFound = "Not found"

// Field is a single extracted value that may be absent.
type Field struct {
	Value string
	Found bool
}

// Found returns a present field holding v. The empty string is a valid present value.
func Found(v string) Field {
	return Field{Value: v, Found: true}
}

// Missing is a field whose selector chain yielded nothing.
var Missing = Field{} //nolint:gochecknoglobals // zero value alias

// Text returns the field value, or NotFound when the field is absent.
func (f Field) Text() string {
	if !f.Found {
		return NotFound
	}
	return f.Value
}

// Slot is the side of the comparison a record belongs to.
type Slot int

const (
	SlotFirst  Slot = 1
	SlotSecond Slot = 2
)

// Label is the product_type value stored in the log.
func (s Slot) Label() string {
	switch s {
	case SlotFirst:
		return "Product 1"
	case SlotSecond:
		return "Product 2"
	default:
		return ""
	}
}

// SlotFromLabel parses a product_type value; unknown labels give the zero Slot.
func SlotFromLabel(label string) Slot {
	switch label {
	case SlotFirst.Label():
		return SlotFirst
	case SlotSecond.Label():
		return SlotSecond
	default:
		return 0
	}
}

// Suffix is the form-field name suffix ("1" or "2") of the slot.
func (s Slot) Suffix() string {
	switch s {
	case SlotFirst:
		return "1"
	case SlotSecond:
		return "2"
	default:
		return ""
	}
}

// Status is assigned by the workflow controller only.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusAccepted Status = "Accepted"
	StatusEdited   Status = "Edited"
)

// Record is one scraped or edited product snapshot.
type Record struct {
	Title       Field
	Price       Field
	Rating      Field
	Description Field
	Details     Field
	Image       string
	URL         string
	Slot        Slot
	Status      Status
	// Placeholder marks an empty editable slot that has no data yet. It is never persisted.
	Placeholder bool
}

// NewRecord returns a record for url with every text field missing.
func NewRecord(url string) Record {
	return Record{
		Title:       Missing,
		Price:       Missing,
		Rating:      Missing,
		Description: Missing,
		Details:     Missing,
		URL:         url,
		Status:      StatusPending,
	}
}

// NewPlaceholder returns an all-empty record for slot.
func NewPlaceholder(slot Slot) Record {
	return Record{
		Title:       Found(""),
		Price:       Found(""),
		Rating:      Found(""),
		Description: Found(""),
		Details:     Found(""),
		Slot:        slot,
		Status:      StatusPending,
		Placeholder: true,
	}
}

// WithSlot returns a copy of r assigned to slot.
func (r Record) WithSlot(slot Slot) Record {
	r.Slot = slot
	return r
}

// WithStatus returns a copy of r carrying status.
func (r Record) WithStatus(status Status) Record {
	r.Status = status
	return r
}

// ArchivedRecord is a persisted record as stored in the archive.
type ArchivedRecord struct {
	ID      int64
	SavedAt time.Time
	Record
}
