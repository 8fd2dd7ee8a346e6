package mcp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/fcea/internal/document"
	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/domain/timesheet"
	"github.com/rpggio/fcea/internal/domain/vesting"
	"github.com/rpggio/fcea/internal/domain/wages"
	"github.com/rpggio/fcea/internal/sharecode"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const dateLayout = "2006-01-02"

type toolHandlers struct {
	workspaces *Workspaces
	baseURL    string
	logger     *slog.Logger
}

func registerTools(server *sdkmcp.Server, h *toolHandlers) {
	// Contract
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "ping",
		Description: "Check that the server is reachable and report the workspace in use",
	}, h.ping)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_contract",
		Description: "Get both parties, the fields edited since the last reset, the vesting schedule and timesheet totals",
	}, h.getContract)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_founder",
		Description: "Update founder fields. Omitted fields are left unchanged; every provided field is marked as edited",
	}, h.updateFounder)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_contributor",
		Description: "Update contributor fields, including the equity grant and vesting terms. Omitted fields are left unchanged",
	}, h.updateContributor)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_contract",
		Description: "Restore the starting scenario, clear the timesheet and forget which fields were edited",
	}, h.resetContract)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_progress",
		Description: "Report how many fields of each party have been filled in",
	}, h.getProgress)

	// Calculators
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "calculate_vesting",
		Description: "Equity vested after a number of days on the contributor's schedule, with optional one-off overrides",
	}, h.calculateVesting)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "vesting_curve",
		Description: "Sample the contributor's vesting curve from day 0 to the end of the vesting period",
	}, h.vestingCurve)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "vesting_milestones",
		Description: "The illustrative 12 to 48 month vesting table printed in the agreement",
	}, h.vestingMilestones)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "distribute_wages",
		Description: "Split available profit across deferred wages pro rata. Uses the timesheet totals unless owed amounts are given",
	}, h.distributeWages)

	// Timesheet
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_timesheet_entry",
		Description: "Record hours worked. The rate defaults to the party's deferred wage rate at the time of saving",
	}, h.addTimesheetEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_timesheet_entry",
		Description: "Replace the timesheet entry at an index, keeping its id",
	}, h.updateTimesheetEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_timesheet_entry",
		Description: "Delete the timesheet entry at an index",
	}, h.removeTimesheetEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_timesheet",
		Description: "List timesheet entries with totals per party",
	}, h.listTimesheet)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_timesheet_csv",
		Description: "Export the timesheet as CSV with per-party totals",
	}, h.exportTimesheetCSV)

	// Document
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_placeholders",
		Description: "Values substituted into the agreement template",
	}, h.getPlaceholders)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "render_agreement",
		Description: "Render the agreement as markdown or html",
	}, h.renderAgreement)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "share_link",
		Description: "Build a link that reopens this scenario. Only fields that differ from the defaults are included",
	}, h.shareLink)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "load_share_link",
		Description: "Replace the workspace with the scenario encoded in a share link. Reset returns to this scenario",
	}, h.loadShareLink)
}

func (h *toolHandlers) store(ctx context.Context) *contract.Store {
	if s := getStore(ctx); s != nil {
		return s
	}
	return h.workspaces.Get(getWorkspaceKey(ctx))
}

func (h *toolHandlers) ping(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, PingResult, error) {
	return nil, PingResult{Status: "ok", Workspace: getWorkspaceKey(ctx)}, nil
}

func (h *toolHandlers) getContract(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ContractResult, error) {
	return nil, contractResult(h.store(ctx)), nil
}

func (h *toolHandlers) updateFounder(ctx context.Context, _ *sdkmcp.CallToolRequest, in contract.FounderPatch) (*sdkmcp.CallToolResult, ContractResult, error) {
	store := h.store(ctx)
	if _, err := store.UpdateFounder(in); err != nil {
		return nil, ContractResult{}, toolError(err)
	}
	return nil, contractResult(store), nil
}

func (h *toolHandlers) updateContributor(ctx context.Context, _ *sdkmcp.CallToolRequest, in contract.ContributorPatch) (*sdkmcp.CallToolResult, ContractResult, error) {
	store := h.store(ctx)
	if _, err := store.UpdateContributor(in); err != nil {
		return nil, ContractResult{}, toolError(err)
	}
	return nil, contractResult(store), nil
}

func (h *toolHandlers) resetContract(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ContractResult, error) {
	store := h.store(ctx)
	store.Reset()
	return nil, contractResult(store), nil
}

func (h *toolHandlers) getProgress(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, contract.Progress, error) {
	return nil, h.store(ctx).Progress(), nil
}

func (h *toolHandlers) calculateVesting(ctx context.Context, _ *sdkmcp.CallToolRequest, in CalculateVestingParams) (*sdkmcp.CallToolResult, CalculateVestingResult, error) {
	overrides := contract.ContributorPatch{
		TotalEquityGranted: in.TotalEquityGranted,
		VestingPeriod:      in.VestingPeriod,
		CliffDays:          in.CliffDays,
		VestingExponent:    in.VestingExponent,
	}
	if err := overrides.Validate(); err != nil {
		return nil, CalculateVestingResult{}, toolError(err)
	}

	schedule := h.store(ctx).Schedule()
	if in.TotalEquityGranted != nil {
		schedule.TotalEquity = *in.TotalEquityGranted
	}
	if in.VestingPeriod != nil {
		schedule.VestingPeriodYears = *in.VestingPeriod
	}
	if in.CliffDays != nil {
		schedule.CliffDays = *in.CliffDays
	}
	if in.VestingExponent != nil {
		schedule.Exponent = *in.VestingExponent
	}

	percent := schedule.At(in.Days)
	return nil, CalculateVestingResult{
		Days:     in.Days,
		Percent:  percent,
		Rounded:  vesting.Round2(percent),
		Schedule: schedule,
	}, nil
}

func (h *toolHandlers) vestingCurve(ctx context.Context, _ *sdkmcp.CallToolRequest, in VestingCurveParams) (*sdkmcp.CallToolResult, VestingCurveResult, error) {
	schedule := h.store(ctx).Schedule()
	return nil, VestingCurveResult{Schedule: schedule, Points: schedule.Curve(in.Step)}, nil
}

func (h *toolHandlers) vestingMilestones(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, VestingMilestonesResult, error) {
	c := h.store(ctx).Contributor()
	return nil, VestingMilestonesResult{
		HorizonDays: vesting.IllustrativeHorizonDays,
		CliffDays:   vesting.IllustrativeCliffDays,
		Rows:        vesting.MilestoneTable(c.TotalEquityGranted, c.VestingExponent),
	}, nil
}

func (h *toolHandlers) distributeWages(ctx context.Context, _ *sdkmcp.CallToolRequest, in DistributeWagesParams) (*sdkmcp.CallToolResult, wages.Distribution, error) {
	if in.Owed == nil {
		return nil, h.store(ctx).Distribute(in.Profit), nil
	}
	return nil, wages.Distribute(in.Owed, in.Profit), nil
}

func (h *toolHandlers) addTimesheetEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in TimesheetEntryParams) (*sdkmcp.CallToolResult, TimesheetEntryResult, error) {
	draft, err := toDraft(in)
	if err != nil {
		return nil, TimesheetEntryResult{}, toolError(err)
	}
	store := h.store(ctx)
	entry, err := store.AddEntry(draft)
	if err != nil {
		return nil, TimesheetEntryResult{}, toolError(err)
	}
	return nil, TimesheetEntryResult{Entry: toEntry(entry), Summary: store.Summary()}, nil
}

func (h *toolHandlers) updateTimesheetEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateTimesheetEntryParams) (*sdkmcp.CallToolResult, TimesheetEntryResult, error) {
	draft, err := toDraft(TimesheetEntryParams{
		Party:           in.Party,
		Date:            in.Date,
		WorkDescription: in.WorkDescription,
		Hours:           in.Hours,
		Rate:            in.Rate,
	})
	if err != nil {
		return nil, TimesheetEntryResult{}, toolError(err)
	}
	store := h.store(ctx)
	entry, err := store.UpdateEntry(in.Index, draft)
	if err != nil {
		return nil, TimesheetEntryResult{}, toolError(err)
	}
	return nil, TimesheetEntryResult{Entry: toEntry(entry), Summary: store.Summary()}, nil
}

func (h *toolHandlers) removeTimesheetEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in RemoveTimesheetEntryParams) (*sdkmcp.CallToolResult, TimesheetEntryResult, error) {
	store := h.store(ctx)
	entry, err := store.RemoveEntry(in.Index)
	if err != nil {
		return nil, TimesheetEntryResult{}, toolError(err)
	}
	return nil, TimesheetEntryResult{Entry: toEntry(entry), Summary: store.Summary()}, nil
}

func (h *toolHandlers) listTimesheet(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ListTimesheetResult, error) {
	store := h.store(ctx)
	entries := store.Entries()
	out := ListTimesheetResult{Entries: make([]Entry, 0, len(entries)), Summary: store.Summary()}
	for _, e := range entries {
		out.Entries = append(out.Entries, toEntry(e))
	}
	return nil, out, nil
}

func (h *toolHandlers) exportTimesheetCSV(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ExportTimesheetResult, error) {
	store := h.store(ctx)
	var buf bytes.Buffer
	if err := store.ExportCSV(&buf); err != nil {
		return nil, ExportTimesheetResult{}, fmt.Errorf("export timesheet: %w", err)
	}
	return nil, ExportTimesheetResult{
		FileName: timesheet.ExportFileName(store.Now()),
		CSV:      buf.String(),
	}, nil
}

func (h *toolHandlers) getPlaceholders(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, PlaceholdersResult, error) {
	store := h.store(ctx)
	p := document.Project(store.Founder(), store.Contributor(), store.Now())
	return nil, PlaceholdersResult{Placeholders: p}, nil
}

func (h *toolHandlers) renderAgreement(ctx context.Context, _ *sdkmcp.CallToolRequest, in RenderAgreementParams) (*sdkmcp.CallToolResult, RenderAgreementResult, error) {
	store := h.store(ctx)
	now := store.Now()
	md := document.Markdown(store.Founder(), store.Contributor(), now)
	out := RenderAgreementResult{Format: "markdown", PDFFileName: document.PDFFileName(now), Content: md}

	switch strings.ToLower(strings.TrimSpace(in.Format)) {
	case "", "markdown", "md":
	case "html":
		body, err := document.RenderHTML(md)
		if err != nil {
			return nil, RenderAgreementResult{}, err
		}
		out.Format = "html"
		out.Content = body
	default:
		return nil, RenderAgreementResult{}, toolError(fmt.Errorf("%w: unsupported format %q", contract.ErrInvalidInput, in.Format))
	}
	return nil, out, nil
}

func (h *toolHandlers) shareLink(ctx context.Context, _ *sdkmcp.CallToolRequest, in ShareLinkParams) (*sdkmcp.CallToolResult, ShareLinkResult, error) {
	store := h.store(ctx)
	base := in.BaseURL
	if base == "" {
		base = h.baseURL
	}
	founder, contributor := store.Founder(), store.Contributor()
	link, err := sharecode.ShareURL(base, founder, contributor)
	if err != nil {
		return nil, ShareLinkResult{}, toolError(fmt.Errorf("%w: base url: %v", contract.ErrInvalidInput, err))
	}
	return nil, ShareLinkResult{URL: link, Query: sharecode.Encode(founder, contributor)}, nil
}

func (h *toolHandlers) loadShareLink(ctx context.Context, _ *sdkmcp.CallToolRequest, in LoadShareLinkParams) (*sdkmcp.CallToolResult, ContractResult, error) {
	key := getWorkspaceKey(ctx)
	store := h.workspaces.Replace(key, sharecode.QuerySeeder{Query: in.URL})
	if h.logger != nil {
		h.logger.Info("share link loaded", "workspace", key, "query", sharecode.QueryPart(in.URL))
	}
	return nil, contractResult(store), nil
}

func contractResult(store *contract.Store) ContractResult {
	return ContractResult{
		Founder:             store.Founder(),
		Contributor:         store.Contributor(),
		FounderModified:     store.Modified(contract.PartyFounder),
		ContributorModified: store.Modified(contract.PartyContributor),
		Schedule:            store.Schedule(),
		Timesheet:           store.Summary(),
	}
}

func toDraft(in TimesheetEntryParams) (timesheet.Draft, error) {
	draft := timesheet.Draft{
		Party:           in.Party,
		WorkDescription: in.WorkDescription,
		Hours:           in.Hours,
		Rate:            in.Rate,
	}
	if in.Date != "" {
		date, err := time.Parse(dateLayout, strings.TrimSpace(in.Date))
		if err != nil {
			return timesheet.Draft{}, fmt.Errorf("%w: date must be YYYY-MM-DD", timesheet.ErrInvalidEntry)
		}
		draft.Date = date
	}
	return draft, nil
}
