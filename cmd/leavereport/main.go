// Command leavereport prints the leave-management summary: a paged,
// status-filtered request listing, the dashboard stats, and optionally
// one employee's balance or a month calendar.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"ems-admin/internal/auth"
	"ems-admin/internal/config"
	"ems-admin/internal/events"
	"ems-admin/internal/gateway"
	"ems-admin/internal/leavectl"
)

func main() {
	var (
		status   = flag.String("status", "", "filter by status (PENDING, APPROVED, REJECTED, CANCELLED)")
		page     = flag.Int("page", 0, "page number (0-based)")
		size     = flag.Int("size", 0, "page size (default from EMS_PAGE_SIZE)")
		employee = flag.Int64("employee", 0, "print this employee's leave balance (default: id from the auth token)")
		month    = flag.String("month", "", "print the calendar for YYYY-MM")
		policy   = flag.Bool("policy", false, "print the tenant leave policy")
		watch    = flag.Duration("watch", 0, "keep polling and report pending-count changes at this interval (e.g. 10s)")
	)
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *size <= 0 {
		*size = cfg.PageSize
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout*4)
	defer cancel()

	tokens := auth.NewMemory(cfg.AuthToken)
	gw := gateway.NewLeave(cfg.APIBaseURL, tokens)

	mgmt := leavectl.NewManagementController(gw, *size)
	if *status != "" {
		mgmt.FilterStatus(ctx, *status)
	}
	if *page > 0 || *status == "" {
		mgmt.SetPage(ctx, *page)
	}

	result := mgmt.Page()
	log.Printf("%d leave requests total", result.TotalElements)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tTYPE\tFROM\tTO\tDAYS\tSTATUS")
	for _, r := range result.Content {
		id := int64(0)
		if r.ID != nil {
			id = *r.ID
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.1f\t%s\n", id, r.EmployeeName, r.LeaveType, r.StartDate, r.EndDate, r.TotalDays, r.Status)
	}
	if err := w.Flush(); err != nil {
		log.Fatal(err)
	}

	stats := mgmt.Stats()
	log.Printf("pending=%d approved-this-month=%d rejected-this-month=%d avg-duration=%.1f",
		stats.PendingRequests, stats.ApprovedThisMonth, stats.RejectedThisMonth, stats.AverageLeaveDuration)

	if *employee == 0 {
		if id, ok := tokens.EmployeeID(); ok {
			*employee = id
		}
	}
	if *employee > 0 {
		b := gw.Balance(ctx, *employee)
		log.Printf("balance for employee %d: vacation %.1f/%.1f sick %.1f/%.1f personal %.1f/%.1f",
			*employee, b.UsedVacation, b.VacationDays, b.UsedSick, b.SickDays, b.UsedPersonal, b.PersonalDays)
	}

	if *policy {
		p := gw.Policy(ctx)
		log.Printf("policy: vacation=%.0f sick=%.0f personal=%.0f max-consecutive=%d advance-notice=%d carry-over=%v/%d",
			p.VacationDays, p.SickDays, p.PersonalDays, p.MaxConsecutiveDays, p.AdvanceNoticeDays, p.CarryOverEnabled, p.MaxCarryOverDays)
	}

	if *month != "" {
		t, err := time.Parse("2006-01", *month)
		if err != nil {
			log.Fatalf("bad -month %q: %v", *month, err)
		}
		cal := leavectl.NewCalendarController(gw)
		cal.LoadMonth(ctx, t.Year(), t.Month())
		printMonth(cal, t)
	}

	if *watch > 0 {
		watchPending(gw, *watch)
	}
}

// watchPending polls the leave stats on the given interval and logs every
// pending-count change until interrupted.
func watchPending(gw *gateway.Leave, interval time.Duration) {
	watchCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	hub := events.NewHub()
	cancelSub := hub.Subscribe(func(ev events.Event) {
		log.Printf("%s %s", ev.At.Format("15:04:05"), ev.Message)
	})
	defer cancelSub()

	watcher := leavectl.NewPendingWatcher(gw)
	feed := events.NewFeed(hub, interval, watcher.Poll)
	feed.Start(watchCtx)

	log.Printf("watching pending leave requests every %s (ctrl-c to stop)", interval)
	<-watchCtx.Done()
	feed.Close()
	log.Printf("watch stopped: %d notifications retained, %d unread", len(feed.Notifications()), feed.Unread())
}

func printMonth(cal *leavectl.CalendarController, t time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := map[string][]string{}
	for d := first; d.Month() == t.Month(); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		for _, r := range cal.Day(key) {
			days[key] = append(days[key], fmt.Sprintf("%s (%s)", r.EmployeeName, r.LeaveType))
		}
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("%s: %v", k, days[k])
	}
	if len(keys) == 0 {
		log.Printf("no approved leave in %s", t.Format("January 2006"))
	}
}
