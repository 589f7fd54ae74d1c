package workflow

import (
	"net/url"
	"strings"

	"github.com/Houeta/pair-compare/internal/models"
)

// Action is one of Accept, EditSubmit, NewProduct or FreshComparison.
type Action interface {
	isAction()
}

// FormRecord holds the original values of one slot as echoed back by the form.
type FormRecord struct {
	Title       string
	Price       string
	Rating      string
	Description string
	Details     string
	Image       string
	URL         string
}

// EditedFields are the operator-editable text fields of the second slot.
type EditedFields struct {
	Title       string
	Price       string
	Rating      string
	Description string
	Details     string
}

// Accept persists both slots exactly as they were originally rendered.
type Accept struct {
	First  FormRecord
	Second FormRecord
}

// EditSubmit persists the first slot as rendered and the second slot with operator edits.
// The second slot's image and URL are never editable.
type EditSubmit struct {
	First       FormRecord
	Edited      EditedFields
	SecondImage string
	SecondURL   string
}

// NewProduct fetches a single product and opens an empty editable second slot.
type NewProduct struct {
	URL string
}

// FreshComparison fetches zero, one or two products.
type FreshComparison struct {
	FirstURL  string
	SecondURL string
}

func (Accept) isAction()          {}
func (EditSubmit) isAction()      {}
func (NewProduct) isAction()      {}
func (FreshComparison) isAction() {}

// ParseForm maps a submitted form onto exactly one action. Precedence: edit-submit,
// accept, new-product, fresh comparison.
func ParseForm(form url.Values) Action {
	switch {
	case form.Get("edited_title_2") != "":
		return EditSubmit{
			First: originalRecord(form, models.SlotFirst),
			Edited: EditedFields{
				Title:       form.Get("edited_title_2"),
				Price:       form.Get("edited_price_2"),
				Rating:      form.Get("edited_rating_2"),
				Description: form.Get("edited_description_2"),
				Details:     form.Get("edited_details_2"),
			},
			SecondImage: form.Get("original_image_2"),
			SecondURL:   form.Get("original_url_2"),
		}
	case form.Has("accept"):
		return Accept{
			First:  originalRecord(form, models.SlotFirst),
			Second: originalRecord(form, models.SlotSecond),
		}
	case form.Get("new_product") == "true":
		return NewProduct{URL: strings.TrimSpace(form.Get("url1"))}
	default:
		return FreshComparison{
			FirstURL:  strings.TrimSpace(form.Get("url1")),
			SecondURL: strings.TrimSpace(form.Get("url2")),
		}
	}
}

func originalRecord(form url.Values, slot models.Slot) FormRecord {
	field := func(name string) string {
		return form.Get("original_" + name + "_" + slot.Suffix())
	}

	return FormRecord{
		Title:       field("title"),
		Price:       field("price"),
		Rating:      field("rating"),
		Description: field("description"),
		Details:     field("details"),
		Image:       field("image"),
		URL:         field("url"),
	}
}

// AcceptedPair rebuilds both slots verbatim from their original values.
func AcceptedPair(a Accept) []models.Record {
	return []models.Record{
		a.First.record(models.SlotFirst, models.StatusAccepted),
		a.Second.record(models.SlotSecond, models.StatusAccepted),
	}
}

// EditedPair rebuilds the first slot from its original values and the second from the edits.
// The first slot is recorded as accepted since it is never edited.
func EditedPair(e EditSubmit) []models.Record {
	second := FormRecord{
		Title:       e.Edited.Title,
		Price:       e.Edited.Price,
		Rating:      e.Edited.Rating,
		Description: e.Edited.Description,
		Details:     e.Edited.Details,
		Image:       e.SecondImage,
		URL:         e.SecondURL,
	}

	return []models.Record{
		e.First.record(models.SlotFirst, models.StatusAccepted),
		second.record(models.SlotSecond, models.StatusEdited),
	}
}

func (f FormRecord) record(slot models.Slot, status models.Status) models.Record {
	return models.Record{
		Title:       models.Found(f.Title),
		Price:       models.Found(f.Price),
		Rating:      models.Found(f.Rating),
		Description: models.Found(f.Description),
		Details:     models.Found(f.Details),
		Image:       f.Image,
		URL:         f.URL,
		Slot:        slot,
		Status:      status,
	}
}
