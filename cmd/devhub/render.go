package main

import (
	"fmt"
	"sort"
	"time"

	"devhub/internal/dashboard"
	"devhub/internal/models"
)

func (a *app) printClient(v *dashboard.ClientView) {
	fmt.Fprintf(a.out, "\nWelcome back, %s!\n", v.User.FirstName())
	if v.Stats != nil {
		fmt.Fprintf(a.out, "Active projects: %d  Total spent: $%.0f  Developers hired: %d\n",
			v.Stats.ActiveProjects, v.Stats.TotalSpent.Float64(), v.Stats.DevelopersHired)
	}
	a.printProjects(v.Projects)
	a.printConversations(v.Conversations)

	if len(v.Recommended) > 0 {
		fmt.Fprintln(a.out, "Recommended developers:")
		for _, d := range v.Recommended {
			fmt.Fprintf(a.out, "  %s  %.1f  %v\n", d.FullName, d.Rating.Float64(), d.SkillList(3))
		}
	}
	a.printErrors(v.Errors)
}

func (a *app) printDeveloper(v *dashboard.DeveloperView) {
	fmt.Fprintf(a.out, "\nWelcome back, %s!\n", v.User.FirstName())
	if v.Stats != nil {
		fmt.Fprintf(a.out, "Active projects: %d  Total earned: $%.0f  Rating: %.1f\n",
			v.Stats.ActiveProjects, v.Stats.TotalEarnings.Float64(), v.Stats.Rating.Float64())
	}
	a.printProjects(v.Projects)
	a.printConversations(v.Conversations)
	a.printErrors(v.Errors)
}

func (a *app) printAdmin(v *dashboard.AdminView) {
	fmt.Fprintf(a.out, "\nAdmin dashboard (%s)\n", v.User.Email)
	if c := v.Counters; c != nil {
		fmt.Fprintf(a.out, "Users: %d  Developers: %d  Clients: %d  Projects: %d  Reviews: %d\n",
			c.TotalUsers, c.TotalDevelopers, c.TotalClients, c.TotalProjects, c.TotalReviews)
	}
	a.printErrors(v.Errors)
}

func (a *app) printProjects(projects []models.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(a.out, "No projects yet.")
		return
	}
	fmt.Fprintln(a.out, "Recent projects:")
	for _, p := range projects {
		fmt.Fprintf(a.out, "  %-30s %-12s $%.0f  due %s\n",
			p.Title, dashboard.StatusText(p.Status), p.Budget.Float64(), dashboard.FormatDate(p.Deadline))
	}
}

func (a *app) printConversations(conversations []models.Conversation) {
	if len(conversations) == 0 {
		return
	}
	fmt.Fprintln(a.out, "Recent messages:")
	now := time.Now()
	for _, c := range conversations {
		fmt.Fprintf(a.out, "  %s: %s (%s)\n", c.OtherUserName, c.LastMessage, dashboard.TimeAgo(c.LastMessageTime, now))
	}
}

func (a *app) printErrors(errs map[string]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.out, "! %s: %s\n", name, errs[name])
	}
}
