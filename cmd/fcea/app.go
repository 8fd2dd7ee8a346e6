package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/fcea/internal/config"
	"github.com/rpggio/fcea/internal/document"
	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/domain/vesting"
	"github.com/rpggio/fcea/internal/domain/wages"
	"github.com/rpggio/fcea/internal/sharecode"
)

// App holds the state shared by all commands.
type App struct {
	out    io.Writer
	logger *slog.Logger
	now    func() time.Time

	scenario    config.ScenarioConfig
	founder     contract.FounderPatch
	contributor contract.ContributorPatch
}

func NewApp(out io.Writer, logger *slog.Logger) *App {
	return &App{out: out, logger: logger, now: time.Now}
}

// Store builds a contract store from the scenario and the party flags.
func (a *App) Store() (*contract.Store, error) {
	cfg := config.Config{Scenario: a.scenario}
	seeder, err := cfg.Seeder()
	if err != nil {
		return nil, err
	}
	store := contract.NewStore(seeder, nil, a.logger)
	if _, err := store.UpdateFounder(a.founder); err != nil {
		return nil, err
	}
	if _, err := store.UpdateContributor(a.contributor); err != nil {
		return nil, err
	}
	return store, nil
}

func (a *App) Vesting(days float64) error {
	store, err := a.Store()
	if err != nil {
		return err
	}
	schedule := store.Schedule()
	printTable(a.out,
		[]string{"Day", "Vested"},
		[][]string{{formatNumber(days), document.Percent(schedule.At(days))}},
		scheduleFooter(schedule))
	return nil
}

func (a *App) Curve(step int) error {
	store, err := a.Store()
	if err != nil {
		return err
	}
	schedule := store.Schedule()
	var rows [][]string
	for _, p := range schedule.Curve(step) {
		rows = append(rows, []string{strconv.Itoa(p.Day), document.Percent(p.Percent)})
	}
	printTable(a.out, []string{"Day", "Vested"}, rows, scheduleFooter(schedule))
	return nil
}

func (a *App) Milestones() error {
	store, err := a.Store()
	if err != nil {
		return err
	}
	c := store.Contributor()
	var rows [][]string
	for _, row := range vesting.MilestoneTable(c.TotalEquityGranted, c.VestingExponent) {
		rows = append(rows, []string{strconv.Itoa(row.Months), strconv.Itoa(row.Days), document.Percent(row.Percent)})
	}
	printTable(a.out, []string{"Months", "Days", "Vested"}, rows,
		fmt.Sprintf("Illustrative %d-day schedule, %d-day cliff, exponent %s",
			vesting.IllustrativeHorizonDays, vesting.IllustrativeCliffDays, formatNumber(c.VestingExponent)))
	return nil
}

func (a *App) Distribute(owedArgs []string, profit float64) error {
	owed, err := parseOwed(owedArgs)
	if err != nil {
		return err
	}
	d := wages.Distribute(owed, profit)
	var rows [][]string
	for _, party := range d.Parties() {
		rows = append(rows, []string{
			party,
			document.Currency(d.Owed[party]),
			document.Currency(d.Payments[party]),
			document.Currency(d.Outstanding(party)),
		})
	}
	printTable(a.out, []string{"Party", "Owed", "Paid", "Outstanding"}, rows,
		fmt.Sprintf("Ratio %s, paid %s of %s, %s unallocated",
			document.Percent(d.Ratio*100), document.Currency(d.TotalPaid),
			document.Currency(d.TotalOwed), document.Currency(d.Unallocated)))
	return nil
}

func (a *App) Share(base string) error {
	store, err := a.Store()
	if err != nil {
		return err
	}
	link, err := sharecode.ShareURL(base, store.Founder(), store.Contributor())
	if err != nil {
		return fmt.Errorf("build share link: %w", err)
	}
	fmt.Fprintln(a.out, link)
	return nil
}

func (a *App) Render(format, outPath string) error {
	store, err := a.Store()
	if err != nil {
		return err
	}
	now := a.now()
	content := document.Markdown(store.Founder(), store.Contributor(), now)

	switch strings.ToLower(format) {
	case "md", "markdown":
	case "html":
		body, err := document.RenderHTML(content)
		if err != nil {
			return err
		}
		var page bytes.Buffer
		if err := document.Page(&page, document.AgreementTitle, body); err != nil {
			return err
		}
		content = page.String()
	default:
		return fmt.Errorf("unsupported format %q: want md or html", format)
	}

	if outPath == "" {
		_, err := io.WriteString(a.out, content)
		return err
	}
	if info, err := os.Stat(outPath); err == nil && info.IsDir() {
		name := strings.TrimSuffix(document.PDFFileName(now), ".pdf") + extension(format)
		outPath = filepath.Join(outPath, name)
	}
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write agreement: %w", err)
	}
	fmt.Fprintf(a.out, "Wrote %s\n", outPath)
	return nil
}

func extension(format string) string {
	if strings.EqualFold(format, "html") {
		return ".html"
	}
	return ".md"
}

// parseOwed reads name=amount pairs. Repeated names are summed.
func parseOwed(args []string) (map[string]float64, error) {
	owed := make(map[string]float64, len(args))
	for _, arg := range args {
		name, amount, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --owed %q: want name=amount", arg)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --owed %q: %w", arg, err)
		}
		owed[name] += v
	}
	return owed, nil
}

func scheduleFooter(s vesting.Schedule) string {
	return fmt.Sprintf("%s%% over %d days, %d-day cliff, exponent %s",
		formatNumber(s.TotalEquity), s.TotalDays(), s.CliffDays, formatNumber(s.Exponent))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
