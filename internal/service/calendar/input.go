package calendar

import (
	"time"

	"github.com/heartmarshall/himalink/internal/domain"
)

// CreateEntryInput holds the client-settable fields of a new entry.
type CreateEntryInput struct {
	Title     string
	Content   *string
	EntryType domain.EntryType
	StartTime time.Time
	EndTime   *time.Time
	IsAllDay  bool
	Location  *string
}

func (i CreateEntryInput) toEntry() *domain.Entry {
	return &domain.Entry{
		Title:     i.Title,
		Content:   i.Content,
		EntryType: i.EntryType,
		StartTime: i.StartTime,
		EndTime:   i.EndTime,
		IsAllDay:  i.IsAllDay,
		Location:  i.Location,
	}
}

// UpdateEntryInput is a partial update; nil fields are left as they are.
// ClearEndTime, ClearContent and ClearLocation null out optional fields.
type UpdateEntryInput struct {
	Title     *string
	Content   *string
	EntryType *domain.EntryType
	StartTime *time.Time
	EndTime   *time.Time
	IsAllDay  *bool
	Location  *string

	ClearContent  bool
	ClearEndTime  bool
	ClearLocation bool
}

func (i UpdateEntryInput) apply(e *domain.Entry) {
	if i.Title != nil {
		e.Title = *i.Title
	}
	if i.ClearContent {
		e.Content = nil
	} else if i.Content != nil {
		e.Content = i.Content
	}
	if i.EntryType != nil {
		e.EntryType = *i.EntryType
	}
	if i.StartTime != nil {
		e.StartTime = *i.StartTime
	}
	if i.ClearEndTime {
		e.EndTime = nil
	} else if i.EndTime != nil {
		e.EndTime = i.EndTime
	}
	if i.IsAllDay != nil {
		e.IsAllDay = *i.IsAllDay
	}
	if i.ClearLocation {
		e.Location = nil
	} else if i.Location != nil {
		e.Location = i.Location
	}
}

// TimelineInput selects the window of a timeline query.
type TimelineInput struct {
	From time.Time
	To   time.Time
}

// Validate checks the window against the configured maximum span.
func (i TimelineInput) Validate(maxRange time.Duration) error {
	var errs []domain.FieldError

	if i.From.IsZero() {
		errs = append(errs, domain.FieldError{Field: "from", Message: "required"})
	}
	if i.To.IsZero() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "required"})
	}
	if len(errs) == 0 {
		switch {
		case !i.To.After(i.From):
			errs = append(errs, domain.FieldError{Field: "to", Message: "must be after from"})
		case maxRange > 0 && i.To.Sub(i.From) > maxRange:
			errs = append(errs, domain.FieldError{Field: "to", Message: "range too large"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
