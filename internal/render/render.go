// Package render prints list pages in the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/appointment"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/domain/patient"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

var badgeColors = map[string]*color.Color{
	appointment.StatusScheduled: color.New(color.FgBlue, color.Bold),
	appointment.StatusCompleted: color.New(color.FgGreen),
	appointment.StatusCancelled: color.New(color.FgHiRed),
}

// StatusLabel returns the display label of an appointment status. Unknown
// values are returned unchanged.
func StatusLabel(status string) string {
	switch status {
	case appointment.StatusScheduled:
		return "Scheduled"
	case appointment.StatusCompleted:
		return "Completed"
	case appointment.StatusCancelled:
		return "Cancelled"
	default:
		return status
	}
}

// Badge is StatusLabel in the status color.
func Badge(status string) string {
	c, ok := badgeColors[status]
	if !ok {
		return StatusLabel(status)
	}
	return c.Sprint(StatusLabel(status))
}

const tabPadding = 2

// Patients writes one page of patients as a table followed by the pager.
func Patients(w io.Writer, items []*patient.Patient, meta listview.PageMeta) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No patients found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tGender\tBorn\tPhone\tLast visit")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.FullName(), p.Gender, p.DateOfBirth, p.Phone, orDash(p.LastAppointment))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, Pager(meta))
	return err
}

// Appointments writes one page of appointments. The badge is the last column
// since color codes would skew the column widths.
func Appointments(w io.Writer, items []*appointment.Entry, meta listview.PageMeta) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No appointments found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tDate\tTime\tPatient\tReason\tStatus")
	for _, e := range items {
		date := e.Date
		if e.IsPast {
			date += "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, date, e.Time, e.PatientName, e.Reason, Badge(e.Status))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, Pager(meta))
	return err
}

// Pager renders the page-number window, the current page in brackets.
func Pager(meta listview.PageMeta) string {
	if meta.TotalPages == 0 {
		return "Page 0/0"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Page %d/%d (%d items)", meta.CurrentPage, meta.TotalPages, meta.TotalItems)
	if len(meta.Pages) > 1 {
		b.WriteString("  ")
		if meta.HasPrevious {
			b.WriteString("< ")
		}
		for i, n := range meta.Pages {
			if i > 0 {
				b.WriteByte(' ')
			}
			if n == meta.CurrentPage {
				fmt.Fprintf(&b, "[%d]", n)
			} else {
				fmt.Fprintf(&b, "%d", n)
			}
		}
		if meta.HasNext {
			b.WriteString(" >")
		}
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
