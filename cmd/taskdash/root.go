package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Afrawles/taskdash/internal/board"
	"github.com/Afrawles/taskdash/internal/calendar"
	"github.com/Afrawles/taskdash/internal/config"
	"github.com/Afrawles/taskdash/internal/report"
	"github.com/Afrawles/taskdash/internal/taskdash"
	"github.com/Afrawles/taskdash/internal/tasks"
	"github.com/Afrawles/taskdash/internal/tui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	apiURL    string
	token     string
	tokenFile string
	userID    string
	timeout   time.Duration
	rate      float64
	logLevel  string
	logJSON   bool

	month    string
	filterBy string
	filter   string
	open     string
	personal bool
	formats  string
	output   string
)

var app *taskdash.Application

var rootCmd = &cobra.Command{
	Use:               "taskdash",
	Short:             "Task calendar and status board",
	Long:              `Taskdash shows your team's tasks on a monthly calendar and a status board.`,
	PersistentPreRunE: setup,
	RunE:              runDashboard,
	SilenceUsage:      true,
}

var (
	calendarCmd = &cobra.Command{
		Use:   "calendar",
		Short: "Print the task calendar for a month",
		RunE:  runCalendar,
	}

	boardCmd = &cobra.Command{
		Use:   "board",
		Short: "Print the status board",
		Long:  `Prints the tasks grouped by status. Without a team the user's own tasks are shown.`,
		RunE:  runBoard,
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the calendar and board to report files",
		RunE:  runExport,
	}

	assigneesCmd = &cobra.Command{
		Use:   "assignees",
		Short: "List the people tasks can be assigned to",
		RunE:  runAssignees,
	}
)

func execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(calendarCmd, boardCmd, exportCmd, assigneesCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiURL, "api-url", "", "Backend base URL (TASKDASH_API_URL)")
	pf.StringVar(&token, "token", "", "Bearer token (TASKDASH_TOKEN)")
	pf.StringVar(&tokenFile, "token-file", "", "File holding the bearer token (TASKDASH_TOKEN_FILE)")
	pf.StringVarP(&userID, "user-id", "u", "", "Signed-in user id (TASKDASH_USER_ID)")
	pf.DurationVar(&timeout, "timeout", 0, "Request timeout (TASKDASH_TIMEOUT)")
	pf.Float64Var(&rate, "rate", 0, "Max requests per second (TASKDASH_RATE)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&logJSON, "log-json", false, "Log as JSON")

	calendarCmd.Flags().StringVarP(&month, "month", "m", "", "Month to show (YYYY-MM)")

	boardCmd.Flags().StringVar(&filterBy, "filter-by", "", "Filter field: name, priority, deadline, assignee")
	boardCmd.Flags().StringVarP(&filter, "filter", "f", "", "Filter value")
	boardCmd.Flags().StringVar(&open, "open", "", "Status section to expand")
	boardCmd.Flags().BoolVar(&personal, "personal", false, "Show only your own tasks")

	exportCmd.Flags().StringVar(&formats, "format", "", "Comma-separated formats: json, html, csv, xlsx")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Output directory")
	exportCmd.Flags().StringVarP(&month, "month", "m", "", "Calendar month (YYYY-MM)")
	exportCmd.Flags().StringVar(&filterBy, "filter-by", "", "Filter field for the board")
	exportCmd.Flags().StringVarP(&filter, "filter", "f", "", "Filter value for the board")
	exportCmd.Flags().BoolVar(&personal, "personal", false, "Export only your own tasks")
}

// setup loads the environment config, applies flag overrides and builds the
// application.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.API.BaseURL = apiURL
	}
	if flags.Changed("token") {
		cfg.API.Token = token
	}
	if flags.Changed("token-file") {
		cfg.API.TokenFile = tokenFile
	}
	if flags.Changed("user-id") {
		cfg.API.UserID = userID
	}
	if flags.Changed("timeout") {
		cfg.API.Timeout = timeout
	}
	if flags.Changed("rate") {
		cfg.API.RatePerSecond = rate
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = logJSON
	}
	if flags.Changed("format") {
		cfg.Output.Format = config.ParseList(formats)
	}
	if flags.Changed("output") {
		cfg.Output.Directory = output
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	app, err = taskdash.New(cfg, os.Stderr)
	return err
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return tui.Run(cmd.Context(), app.Loader, app.Session)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	anchor, err := parseMonth(month, time.Now())
	if err != nil {
		return err
	}

	view, err := fetchView(cmd.Context(), "Fetching tasks", false, tasks.Filter{})
	if err != nil {
		return err
	}

	m := calendar.NewMonth(anchor, view.Events, view.GeneratedAt)
	fmt.Println(tui.RenderLegend())
	fmt.Println()
	fmt.Println(tui.RenderMonth(m))
	if view.Fallback() {
		fmt.Println(tui.RenderFallbackNote())
	}
	fmt.Printf("\n%d tasks this month\n", m.EventCount())
	return nil
}

func runBoard(cmd *cobra.Command, args []string) error {
	f, err := parseFilter(filterBy, filter)
	if err != nil {
		return err
	}
	status, expand, err := parseOpen(open)
	if err != nil {
		return err
	}

	view, err := fetchView(cmd.Context(), "Fetching tasks", personal, f)
	if err != nil {
		return err
	}

	var acc board.Accordion
	if expand {
		acc.Toggle(status)
	}

	if view.Fallback() {
		fmt.Println(tui.RenderFallbackNote())
		fmt.Println()
	}
	if f.Active() {
		fmt.Printf("Filter by %s: %s\n\n", f.Label(), f.Value)
	}
	fmt.Print(tui.RenderBoard(view.Sections, acc, -1))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	anchor, err := parseMonth(month, time.Now())
	if err != nil {
		return err
	}
	f, err := parseFilter(filterBy, filter)
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(len(app.Config.Output.Format),
		progressbar.OptionSetDescription("Exporting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
	)
	app.Progress = func(format string) {
		bar.Describe("Exported " + format)
		_ = bar.Add(1)
	}
	written, err := app.ExportReport(cmd.Context(), f, personal, anchor)
	finishBar(bar)

	if len(written) > 0 {
		fmt.Printf("\nReports saved to %s/\n", app.Config.Output.Directory)
		for _, path := range written {
			fmt.Printf("  -> %s\n", filepath.Base(path))
		}
	}
	if err != nil {
		return fmt.Errorf("error generating report: %w", err)
	}
	return nil
}

func runAssignees(cmd *cobra.Command, args []string) error {
	bar := newSpinner("Fetching assignees")
	list, err := app.Client.FetchAssignees(cmd.Context(), app.Session)
	finishBar(bar)
	if err != nil {
		return err
	}

	fmt.Printf("\n%d assignees\n", len(list))
	for _, a := range list {
		fmt.Printf("  %-8s %s\n", a.ID, a.Username)
	}
	return nil
}

func fetchView(ctx context.Context, description string, personal bool, f tasks.Filter) (report.View, error) {
	bar := newSpinner(description)
	view, err := app.Generator.Generate(ctx, app.Session, f, personal)
	finishBar(bar)
	if err != nil {
		return report.View{}, err
	}
	fmt.Println()
	return view, nil
}

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetWriter(os.Stderr),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
