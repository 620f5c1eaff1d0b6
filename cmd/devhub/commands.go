package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"devhub/internal/api"
	"devhub/internal/dashboard"
	"devhub/internal/models"
	"devhub/internal/signup"
)

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		v, err := a.in.ask("Email")
		if err != nil {
			return err
		}
		*email = v
	}
	password, err := a.in.askSecret("Password")
	if err != nil {
		return err
	}

	resp, err := a.api.Auth.Login(ctx, *email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Login successful! Welcome back, %s.\n", resp.User.FirstName())
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.api.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.api.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		if !a.api.Auth.IsAuthenticated(ctx) {
			return dashboard.ErrNotSignedIn
		}
		if user, err = a.api.Auth.Me(ctx); err != nil {
			return err
		}
	}

	role := user.UserType
	if user.IsAdmin() {
		role = "Admin"
	}
	fmt.Fprintf(a.out, "%s <%s> (%s)\n", user.FullName, user.Email, role)
	return nil
}

// signup walks the wizard step by step. A step that fails validation is
// asked again; a role field found missing at submit sends the user back to
// step 2.
func (a *app) signup(ctx context.Context) error {
	w := signup.NewWizard()

	for {
		state := w.State()
		fmt.Fprintf(a.out, "\nStep %d of 3\n", state.Step)

		fields := state.Schema.Account
		switch state.Step {
		case signup.StepRoleDetails:
			fields = state.Schema.Role
		case signup.StepContact:
			fields = state.Schema.Contact
		}
		values, err := a.in.fields(fields)
		if err != nil {
			return err
		}

		if state.Step != signup.StepContact {
			err = w.Advance(state.Step+1, values)
		} else {
			var resp *models.AuthResponse
			if resp, err = w.Submit(ctx, values, a.api.Auth); err == nil {
				fmt.Fprintln(a.out, "Registration successful!")
				if resp.User != nil && resp.Token != "" {
					fmt.Fprintf(a.out, "Signed in as %s.\n", resp.User.Email)
				}
				return nil
			}
		}

		var invalid *signup.ValidationError
		if !errors.As(err, &invalid) {
			if err != nil {
				return err
			}
			continue
		}
		fmt.Fprintln(a.out, invalid.Message)
		if state.Step == signup.StepContact && !isField(signup.ContactFields, invalid.Field) {
			if err := w.Retreat(signup.StepRoleDetails); err != nil {
				return err
			}
		}
	}
}

func isField(fields []signup.Field, key string) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func (a *app) developers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("developers", flag.ContinueOnError)
	search := fs.String("search", "", "name, skill or bio text")
	skill := fs.String("skill", "", "required skill")
	location := fs.String("location", "", "location")
	rating := fs.Float64("rating", 0, "minimum rating")
	limit := fs.Int("limit", 0, "maximum results")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := api.Filters{
		"search":   *search,
		"skill":    *skill,
		"location": *location,
	}
	if *rating > 0 {
		filters["rating"] = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	if *limit > 0 {
		filters["limit"] = strconv.Itoa(*limit)
	}

	devs, err := a.api.Developers.List(ctx, filters)
	if err != nil {
		return err
	}
	if len(devs) == 0 {
		fmt.Fprintln(a.out, "No developers found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRATING\tRATE\tLOCATION\tSKILLS")
	for _, d := range devs {
		fmt.Fprintf(tw, "%d\t%s\t%.1f\t$%.0f/hr\t%s\t%v\n",
			d.ID, d.FullName, d.Rating.Float64(), d.HourlyRate.Float64(), d.Location, d.SkillList(3))
	}
	return tw.Flush()
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "refresh until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.api.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return dashboard.ErrNotSignedIn
	}

	loader := dashboard.NewLoader(a.api, a.logger)
	show, interval := a.dashboardFor(user, loader)
	if err := show(ctx); err != nil {
		return err
	}
	if !*watch {
		return nil
	}

	dashboard.NewPoller(interval, func(ctx context.Context) {
		if err := show(ctx); err != nil && ctx.Err() == nil {
			a.logger.Warn().Err(err).Msg("Dashboard refresh failed")
		}
	}, a.logger).Run(ctx)
	return nil
}

func (a *app) dashboardFor(user *models.User, loader *dashboard.Loader) (func(context.Context) error, time.Duration) {
	switch {
	case user.IsAdmin():
		return func(ctx context.Context) error {
			view, err := loader.Admin(ctx)
			if err != nil {
				return err
			}
			a.printAdmin(view)
			return nil
		}, dashboard.AdminRefreshInterval
	case user.UserType == models.UserTypeDeveloper:
		return func(ctx context.Context) error {
			view, err := loader.Developer(ctx)
			if err != nil {
				return err
			}
			a.printDeveloper(view)
			return nil
		}, dashboard.DeveloperRefreshInterval
	default:
		return func(ctx context.Context) error {
			view, err := loader.Client(ctx)
			if err != nil {
				return err
			}
			a.printClient(view)
			return nil
		}, dashboard.ClientRefreshInterval
	}
}
