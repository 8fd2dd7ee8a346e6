package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func SetupCommands(a *App) *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "fcea",
		Short:         "Calculate and render Founding Contributor Engagement Agreement terms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&a.scenario.Query, "query", "", "scenario as a share-link query string or URL")
	rootCmd.PersistentFlags().StringVar(&a.scenario.Path, "scenario", "", "scenario YAML file")

	pf := &partyFlags{}
	pf.register(rootCmd.PersistentFlags())
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		pf.apply(cmd.Flags(), a)
	}

	// command for the vested percentage on a given day
	var days float64
	vestingCmd := &cobra.Command{
		Use:   "vesting",
		Short: "Equity vested after a number of days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Vesting(days)
		},
	}
	vestingCmd.Flags().Float64Var(&days, "days", 0, "days of service")
	_ = vestingCmd.MarkFlagRequired("days")

	// command for sampling the whole curve
	var step int
	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "Sample the vesting curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Curve(step)
		},
	}
	curveCmd.Flags().IntVar(&step, "step", 30, "days between samples")

	milestonesCmd := &cobra.Command{
		Use:   "milestones",
		Short: "Illustrative 12 to 48 month vesting table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Milestones()
		},
	}

	// command for splitting profit over deferred wages
	var owed []string
	var profit float64
	distributeCmd := &cobra.Command{
		Use:   "distribute",
		Short: "Split available profit over deferred wages pro rata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Distribute(owed, profit)
		},
	}
	distributeCmd.Flags().StringArrayVar(&owed, "owed", nil, "amount owed as name=amount (repeatable)")
	distributeCmd.Flags().Float64Var(&profit, "profit", 0, "profit available for distribution")
	_ = distributeCmd.MarkFlagRequired("profit")

	var base string
	shareCmd := &cobra.Command{
		Use:   "share",
		Short: "Print a link that reopens the scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Share(base)
		},
	}
	shareCmd.Flags().StringVar(&base, "base", "http://localhost:8080/agreement", "agreement URL")

	var format, out string
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the agreement as markdown or html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Render(format, out)
		},
	}
	renderCmd.Flags().StringVar(&format, "format", "md", "md or html")
	renderCmd.Flags().StringVar(&out, "out", "", "output file or directory (default stdout)")

	// add commands
	rootCmd.AddCommand(vestingCmd)
	rootCmd.AddCommand(curveCmd)
	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(distributeCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(renderCmd)

	return rootCmd
}

// partyFlags override scenario fields. Only flags given on the command line
// are applied.
type partyFlags struct {
	founderName, founderEmail, companyName     string
	contributorName, contributorEmail          string
	founderRate, contributorRate               float64
	equity, period, exponent                   float64
	cliff                                      int
}

func (p *partyFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&p.founderName, "founder-name", "", "founder name")
	fs.StringVar(&p.founderEmail, "founder-email", "", "founder email")
	fs.StringVar(&p.companyName, "company", "", "company name")
	fs.Float64Var(&p.founderRate, "founder-rate", 0, "founder deferred wage rate ($/hr)")
	fs.StringVar(&p.contributorName, "contributor-name", "", "contributor name")
	fs.StringVar(&p.contributorEmail, "contributor-email", "", "contributor email")
	fs.Float64Var(&p.contributorRate, "contributor-rate", 0, "contributor deferred wage rate ($/hr)")
	fs.Float64Var(&p.equity, "equity", 0, "total equity granted (%)")
	fs.Float64Var(&p.period, "period", 0, "vesting period (years)")
	fs.IntVar(&p.cliff, "cliff", 0, "cliff (days)")
	fs.Float64Var(&p.exponent, "exponent", 0, "vesting exponent")
}

func (p *partyFlags) apply(fs *pflag.FlagSet, a *App) {
	if fs.Changed("founder-name") {
		a.founder.Name = &p.founderName
	}
	if fs.Changed("founder-email") {
		a.founder.Email = &p.founderEmail
	}
	if fs.Changed("company") {
		a.founder.CompanyName = &p.companyName
	}
	if fs.Changed("founder-rate") {
		a.founder.DeferredWageRate = &p.founderRate
	}
	if fs.Changed("contributor-name") {
		a.contributor.Name = &p.contributorName
	}
	if fs.Changed("contributor-email") {
		a.contributor.Email = &p.contributorEmail
	}
	if fs.Changed("contributor-rate") {
		a.contributor.DeferredWageRate = &p.contributorRate
	}
	if fs.Changed("equity") {
		a.contributor.TotalEquityGranted = &p.equity
	}
	if fs.Changed("period") {
		a.contributor.VestingPeriod = &p.period
	}
	if fs.Changed("cliff") {
		a.contributor.CliffDays = &p.cliff
	}
	if fs.Changed("exponent") {
		a.contributor.VestingExponent = &p.exponent
	}
}
