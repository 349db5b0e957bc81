package patient

import (
	"time"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/dates"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

// Patient is a clinic patient. Dates are YYYY-MM-DD strings.
type Patient struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	DateOfBirth     string `json:"date_of_birth"`
	Gender          string `json:"gender"`
	Phone           string `json:"phone"`
	Address         string `json:"address,omitempty"`
	MedicalHistory  string `json:"medical_history,omitempty"`
	Remarks         string `json:"remarks,omitempty"`
	LastAppointment string `json:"last_appointment,omitempty"`
}

const (
	GenderMale   = "M"
	GenderFemale = "F"
)

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age is the age in whole years at now; false when the birth date is unset
// or malformed.
func (p *Patient) Age(now time.Time) (int, bool) {
	dob, ok := dates.Parse(p.DateOfBirth)
	if !ok {
		return 0, false
	}
	return dates.Age(dob, now), true
}

// Fields drives the patient list: search on names, gender as the category
// and the last appointment as the range date. Patients keep the data
// source's order.
var Fields = listview.Fields[*Patient]{
	Text:     func(p *Patient) []string { return []string{p.FirstName, p.LastName} },
	Category: func(p *Patient) string { return p.Gender },
	RangeDate: func(p *Patient) (time.Time, bool) {
		return dates.Parse(p.LastAppointment)
	},
}
