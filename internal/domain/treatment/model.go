package treatment

import (
	"time"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/dates"
)

type Treatment struct {
	ID           string `json:"id"`
	PatientID    string `json:"patient_id"`
	Medication   string `json:"medication"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
	PrescribedBy string `json:"prescribed_by"`
	Notes        string `json:"notes,omitempty"`
}

// Active reports whether the treatment is running on now's calendar day.
// An open-ended treatment stays active once started.
func (t *Treatment) Active(now time.Time) bool {
	start, ok := dates.Parse(t.StartDate)
	if !ok {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(start) {
		return false
	}
	end, ok := dates.Parse(t.EndDate)
	return !ok || !today.After(end)
}
