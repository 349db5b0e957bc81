package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/config"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/render"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

// listFlags are the view-state flags shared by the listing commands.
type listFlags struct {
	term     string
	gender   string
	status   string
	rng      string
	from     string
	to       string
	order    string
	page     int
	pageSize int
}

func (f *listFlags) register(cmd *cobra.Command, withGender, withStatus bool) {
	cmd.Flags().StringVarP(&f.term, "query", "q", "", "Search term")
	if withGender {
		cmd.Flags().StringVar(&f.gender, "gender", "", "Gender (M or F)")
	}
	if withStatus {
		cmd.Flags().StringVar(&f.status, "status", "", "Status (scheduled, completed, cancelled or all)")
	}
	cmd.Flags().StringVar(&f.rng, "range", "", "Date range (all, today, this-week, this-month, custom)")
	cmd.Flags().StringVar(&f.from, "from", "", "Range start, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "Range end, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.order, "order", "", "Date order (asc or desc)")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 0, "Records per page (defaults to the configured size)")
}

// state turns the flags into a view state, the same one the HTTP list
// endpoints decode from their query string.
func (f *listFlags) state(defaultOrder listview.Order) (listview.State, error) {
	state := listview.State{Page: f.page, PageSize: f.pageSize, Order: defaultOrder}
	if f.order != "" {
		o, err := listview.ParseOrder(f.order)
		if err != nil {
			return state, err
		}
		state.Order = o
	}

	mode, err := listview.ParseRangeMode(f.rng)
	if err != nil {
		return state, err
	}
	criteria := listview.Criteria{Term: f.term, Category: f.gender, Status: f.status}
	if criteria.From, err = parseFlagDate("from", f.from); err != nil {
		return state, err
	}
	if criteria.To, err = parseFlagDate("to", f.to); err != nil {
		return state, err
	}
	state.Criteria = criteria.WithRange(mode)
	return state, nil
}

func parseFlagDate(name, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: expected YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

func patientsCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List patients",
		Example: `  cabinet patients -q diallo --gender F
  cabinet patients --range this-month --page 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := f.state(listview.Unsorted)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				page, err := a.patients.List(ctx, state)
				if err != nil {
					return err
				}
				return render.Patients(cmd.OutOrStdout(), page.Items, page.Meta)
			})
		},
	}
	f.register(cmd, true, false)
	return cmd
}

func appointmentsCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "List appointments, soonest first",
		Example: `  cabinet appointments --range today
  cabinet appointments --status completed --order desc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := f.state(listview.Ascending)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app) error {
				page, err := a.appointments.List(ctx, state)
				if err != nil {
					return err
				}
				return render.Appointments(cmd.OutOrStdout(), page.Items, page.Meta)
			})
		},
	}
	f.register(cmd, false, true)
	return cmd
}

// withApp runs fn against the configured data source. Info logs are
// suppressed so they do not interleave with the table.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())
	if logger.GetLevel() < zerolog.WarnLevel {
		logger = logger.Level(zerolog.WarnLevel)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
