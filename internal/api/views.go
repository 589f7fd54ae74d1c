package api

import "github.com/Houeta/pair-compare/internal/models"

// indexView is the data index.html renders.
type indexView struct {
	Records            []recordView
	Diff               []models.FieldDiff
	EditableSecondSlot bool
	Success            bool
	Error              string
}

// recordView carries boundary text: missing fields render as the not-found marker.
type recordView struct {
	Label       string
	Suffix      string
	Status      string
	Title       string
	Price       string
	Rating      string
	Description string
	Details     string
	Image       string
	URL         string
	Placeholder bool
}

func newRecordView(rec models.Record) recordView {
	return recordView{
		Label:       rec.Slot.Label(),
		Suffix:      rec.Slot.Suffix(),
		Status:      string(rec.Status),
		Title:       rec.Title.Text(),
		Price:       rec.Price.Text(),
		Rating:      rec.Rating.Text(),
		Description: rec.Description.Text(),
		Details:     rec.Details.Text(),
		Image:       rec.Image,
		URL:         rec.URL,
		Placeholder: rec.Placeholder,
	}
}

// historyItem is one archived row as served by /history.
type historyItem struct {
	ID          int64  `json:"id"`
	SavedAt     string `json:"saved_at"`
	ProductType string `json:"product_type"`
	Status      string `json:"status"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Rating      string `json:"rating"`
	Description string `json:"description"`
	Details     string `json:"details"`
	Image       string `json:"image"`
	URL         string `json:"url"`
}

func newHistoryItem(rec models.ArchivedRecord) historyItem {
	return historyItem{
		ID:          rec.ID,
		SavedAt:     rec.SavedAt.Format("2006-01-02 15:04:05"),
		ProductType: rec.Slot.Label(),
		Status:      string(rec.Status),
		Title:       rec.Title.Text(),
		Price:       rec.Price.Text(),
		Rating:      rec.Rating.Text(),
		Description: rec.Description.Text(),
		Details:     rec.Details.Text(),
		Image:       rec.Image,
		URL:         rec.URL,
	}
}
