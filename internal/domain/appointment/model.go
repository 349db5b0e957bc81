package appointment

import (
	"time"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/dates"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool { return validStatuses[s] }

// UnknownPatient is shown when an appointment's patient cannot be resolved.
const UnknownPatient = "Unknown patient"

type Appointment struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

// StartsAt combines the date and time of day.
func (a *Appointment) StartsAt() (time.Time, bool) {
	return dates.Combine(a.Date, a.Time)
}

// IsPast reports whether the appointment starts before now.
func (a *Appointment) IsPast(now time.Time) bool {
	at, ok := a.StartsAt()
	return ok && at.Before(now)
}

// Entry is an appointment as listed: with the patient's display name.
type Entry struct {
	*Appointment
	PatientName string `json:"patient_name"`
	IsPast      bool   `json:"is_past"`
}

func startsAt(e *Entry) (time.Time, bool) { return e.StartsAt() }

// EntryFields drives the appointment list: search on patient name and
// reason, the status filter, and range and order on the appointment date.
var EntryFields = listview.Fields[*Entry]{
	Text:      func(e *Entry) []string { return []string{e.PatientName, e.Reason} },
	Status:    func(e *Entry) string { return e.Status },
	RangeDate: func(e *Entry) (time.Time, bool) { return dates.Parse(e.Date) },
	SortDate:  startsAt,
}

// HistoryFields orders a patient's own appointments by date.
var HistoryFields = listview.Fields[*Appointment]{
	Text:      func(a *Appointment) []string { return []string{a.Reason, a.Notes} },
	Status:    func(a *Appointment) string { return a.Status },
	RangeDate: func(a *Appointment) (time.Time, bool) { return dates.Parse(a.Date) },
	SortDate:  func(a *Appointment) (time.Time, bool) { return a.StartsAt() },
}
