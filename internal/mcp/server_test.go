package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/fcea/internal/domain/contract"
	"github.com/rpggio/fcea/internal/domain/vesting"
	"github.com/rpggio/fcea/internal/domain/wages"
	"github.com/rpggio/fcea/internal/sharecode"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type testClient struct {
	session    *sdkmcp.ClientSession
	workspaces *Workspaces
}

func newTestClient(t *testing.T, seeder contract.Seeder) *testClient {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	server, workspaces := newServer(Config{
		Seeder:  seeder,
		Clock:   fixedClock{time.Date(2025, time.June, 3, 9, 0, 0, 0, time.UTC)},
		BaseURL: "https://terms.example/agreement",
	})
	clientTransport, serverTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = session.Close()
		_ = serverSession.Wait()
	})
	return &testClient{session: session, workspaces: workspaces}
}

func (c *testClient) call(t *testing.T, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := c.session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s", name)
	return result
}

// callInto calls a tool that must succeed and decodes its JSON text content.
func (c *testClient) callInto(t *testing.T, name string, args map[string]any, out any) {
	t.Helper()
	result := c.call(t, name, args)
	require.False(t, result.IsError, "tool %s failed: %s", name, resultText(result))
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), out))
}

func resultText(result *sdkmcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

func TestTools_Listed(t *testing.T) {
	c := newTestClient(t, nil)
	ctx := context.Background()

	tools, err := c.session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"ping", "get_contract", "update_founder", "update_contributor", "reset_contract",
		"get_progress", "calculate_vesting", "vesting_curve", "vesting_milestones",
		"distribute_wages", "add_timesheet_entry", "update_timesheet_entry",
		"remove_timesheet_entry", "list_timesheet", "export_timesheet_csv",
		"get_placeholders", "render_agreement", "share_link", "load_share_link",
	} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestTools_Ping(t *testing.T) {
	c := newTestClient(t, nil)
	var out PingResult
	c.callInto(t, "ping", nil, &out)
	require.Equal(t, "ok", out.Status)
	require.Equal(t, defaultWorkspace, out.Workspace)
}

func TestTools_UpdateAndReset(t *testing.T) {
	c := newTestClient(t, sharecode.QuerySeeder{Query: "founderName=Ada"})

	var got ContractResult
	c.callInto(t, "get_contract", nil, &got)
	require.Equal(t, "Ada", got.Founder.Name)
	require.Empty(t, got.FounderModified)

	c.callInto(t, "update_contributor", map[string]any{"name": "Grace", "cliff_days": 180}, &got)
	require.Equal(t, "Grace", got.Contributor.Name)
	require.Equal(t, []contract.Field{contract.FieldName, contract.FieldCliffDays}, got.ContributorModified)

	var progress contract.Progress
	c.callInto(t, "get_progress", nil, &progress)
	require.Equal(t, 2, progress.Contributor.Completed)

	c.callInto(t, "reset_contract", nil, &got)
	require.Equal(t, "Ada", got.Founder.Name)
	require.Empty(t, got.Contributor.Name)
	require.Empty(t, got.ContributorModified)
}

func TestTools_UpdateRejectsInvalidValues(t *testing.T) {
	c := newTestClient(t, nil)
	result := c.call(t, "update_contributor", map[string]any{"vesting_exponent": -1})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "INVALID_INPUT")

	var got ContractResult
	c.callInto(t, "get_contract", nil, &got)
	require.Equal(t, 2.0, got.Contributor.VestingExponent)
}

func TestTools_CalculateVesting(t *testing.T) {
	c := newTestClient(t, nil)

	var out CalculateVestingResult
	c.callInto(t, "calculate_vesting", map[string]any{"days": 180}, &out)
	require.Zero(t, out.Percent)

	c.callInto(t, "calculate_vesting", map[string]any{"days": 730}, &out)
	require.Equal(t, 25.0, out.Percent)

	c.callInto(t, "calculate_vesting", map[string]any{"days": 730, "vesting_period": 4}, &out)
	require.InDelta(t, 4.61, out.Rounded, 0.01)
	require.Equal(t, 1460, out.Schedule.TotalDays())
}

func TestTools_VestingCurveAndMilestones(t *testing.T) {
	c := newTestClient(t, nil)

	var curve VestingCurveResult
	c.callInto(t, "vesting_curve", map[string]any{"step": 365}, &curve)
	require.Len(t, curve.Points, 3)
	require.Equal(t, 730, curve.Points[2].Day)
	require.Equal(t, 25.0, curve.Points[2].Percent)

	var milestones VestingMilestonesResult
	c.callInto(t, "vesting_milestones", nil, &milestones)
	require.Len(t, milestones.Rows, 7)
	require.Equal(t, 1460, milestones.HorizonDays)
	require.InDelta(t, 0.52, milestones.Rows[0].Percent, 0.01)
}

func TestTools_VestingCurveRejectsUnboundedPeriod(t *testing.T) {
	c := newTestClient(t, nil)

	result := c.call(t, "update_contributor", map[string]any{"vesting_period": 1e15})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "INVALID_INPUT")

	result = c.call(t, "calculate_vesting", map[string]any{"days": 10, "vesting_period": 1e15})
	require.True(t, result.IsError)

	var curve VestingCurveResult
	c.callInto(t, "update_contributor", map[string]any{"vesting_period": 100}, &ContractResult{})
	c.callInto(t, "vesting_curve", map[string]any{"step": 1}, &curve)
	require.LessOrEqual(t, len(curve.Points), vesting.MaxCurvePoints)
	require.Equal(t, 36500, curve.Points[len(curve.Points)-1].Day)
}

func TestTools_TimesheetAndDistribution(t *testing.T) {
	c := newTestClient(t, sharecode.QuerySeeder{Query: "founderName=Ada&contributorName=Grace"})

	var added TimesheetEntryResult
	c.callInto(t, "add_timesheet_entry", map[string]any{
		"party": "grace", "hours": 50, "rate": 100, "work_description": "Billing", "date": "2025-05-01",
	}, &added)
	require.Equal(t, "Grace", added.Entry.Party)
	require.Equal(t, "2025-05-01", added.Entry.Date)
	require.Equal(t, 5000.0, added.Entry.Total)
	require.NotEmpty(t, added.Entry.ID)

	c.callInto(t, "add_timesheet_entry", map[string]any{"party": "founder", "hours": 5}, &added)
	require.Equal(t, "Ada", added.Entry.Party)
	require.Equal(t, "2025-06-03", added.Entry.Date)
	require.Equal(t, 750.0, added.Entry.Total)

	var updated TimesheetEntryResult
	c.callInto(t, "update_timesheet_entry", map[string]any{"index": 1, "party": "Ada", "hours": 10, "rate": 100}, &updated)
	require.Equal(t, added.Entry.ID, updated.Entry.ID)
	require.Equal(t, 6000.0, updated.Summary.TotalDeferredWages)

	var dist wages.Distribution
	c.callInto(t, "distribute_wages", map[string]any{"profit": 1000}, &dist)
	require.InDelta(t, 833.33, dist.Payments["Grace"], 0.01)
	require.InDelta(t, 166.67, dist.Payments["Ada"], 0.01)

	c.callInto(t, "distribute_wages", map[string]any{"profit": 50, "owed": map[string]any{"x": 100, "y": 100}}, &dist)
	require.Equal(t, 0.25, dist.Ratio)

	var exported ExportTimesheetResult
	c.callInto(t, "export_timesheet_csv", nil, &exported)
	require.Equal(t, "Deferred-Wages-Timesheet-2025-06-03.csv", exported.FileName)
	require.True(t, strings.HasPrefix(exported.CSV, "Ada Total Deferred Wages,$1000.00\nGrace Total Deferred Wages,$5000.00\n"))

	var removed TimesheetEntryResult
	c.callInto(t, "remove_timesheet_entry", map[string]any{"index": 0}, &removed)
	require.Equal(t, "Grace", removed.Entry.Party)

	var list ListTimesheetResult
	c.callInto(t, "list_timesheet", nil, &list)
	require.Len(t, list.Entries, 1)
	require.Equal(t, 1000.0, list.Summary.TotalDeferredWages)
}

func TestTools_TimesheetErrors(t *testing.T) {
	c := newTestClient(t, nil)

	result := c.call(t, "remove_timesheet_entry", map[string]any{"index": 3})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "ENTRY_NOT_FOUND")

	result = c.call(t, "add_timesheet_entry", map[string]any{"party": "founder", "hours": 1, "date": "03/06/2025"})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "INVALID_ENTRY")

	result = c.call(t, "add_timesheet_entry", map[string]any{"party": "founder", "hours": -1})
	require.True(t, result.IsError)
	require.Contains(t, resultText(result), "INVALID_ENTRY")
}

func TestTools_DocumentAndShare(t *testing.T) {
	c := newTestClient(t, nil)

	var placeholders PlaceholdersResult
	c.callInto(t, "get_placeholders", nil, &placeholders)
	require.Equal(t, "[Founder Name]", placeholders.Placeholders["FounderName"])
	require.Equal(t, "June 3, 2025", placeholders.Placeholders["CurrentDate"])

	var rendered RenderAgreementResult
	c.callInto(t, "render_agreement", map[string]any{"format": "html"}, &rendered)
	require.Equal(t, "html", rendered.Format)
	require.Contains(t, rendered.Content, "<table>")
	require.Equal(t, "Founding-Contributor-Engagement-Agreement-2025-06-03.pdf", rendered.PDFFileName)

	result := c.call(t, "render_agreement", map[string]any{"format": "docx"})
	require.True(t, result.IsError)

	c.callInto(t, "update_founder", map[string]any{"name": "Ada"}, &ContractResult{})

	var share ShareLinkResult
	c.callInto(t, "share_link", nil, &share)
	require.Equal(t, "founderName=Ada", share.Query)
	require.Equal(t, "https://terms.example/agreement?founderName=Ada", share.URL)

	var loaded ContractResult
	c.callInto(t, "load_share_link", map[string]any{"url": "https://terms.example/agreement?contributorName=Grace&cliffDays=90"}, &loaded)
	require.Equal(t, "Grace", loaded.Contributor.Name)
	require.Equal(t, 90, loaded.Contributor.CliffDays)
	require.Empty(t, loaded.Founder.Name)

	c.callInto(t, "reset_contract", nil, &loaded)
	require.Equal(t, "Grace", loaded.Contributor.Name)
}

func TestResources(t *testing.T) {
	c := newTestClient(t, sharecode.QuerySeeder{Query: "founderName=Ada"})
	ctx := context.Background()

	list, err := c.session.ListResources(ctx, nil)
	require.NoError(t, err)
	uris := map[string]bool{}
	for _, r := range list.Resources {
		uris[r.URI] = true
	}
	for _, want := range []string{"fcea://docs/vesting", "fcea://docs/deferred-wages", "fcea://agreement/template", "fcea://agreement/current"} {
		require.True(t, uris[want], "missing resource %s", want)
	}

	read, err := c.session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "fcea://agreement/current"})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	require.Contains(t, read.Contents[0].Text, "**Ada**")

	read, err = c.session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "fcea://agreement/template"})
	require.NoError(t, err)
	require.Contains(t, read.Contents[0].Text, "{{FounderName}}")
}

func TestWorkspaces_GetReplaceDrop(t *testing.T) {
	ws := NewWorkspaces(sharecode.QuerySeeder{Query: "founderName=Ada"}, nil, nil)

	a := ws.Get("a")
	require.Same(t, a, ws.Get("a"))
	require.Same(t, ws.Get(""), ws.Get(defaultWorkspace))
	require.Equal(t, "Ada", a.Founder().Name)

	replaced := ws.Replace("a", sharecode.QuerySeeder{Query: "founderName=Bob"})
	require.NotSame(t, a, replaced)
	require.Equal(t, "Bob", ws.Get("a").Founder().Name)

	ws.Drop("a")
	require.Equal(t, 1, ws.Len())
}

func TestWorkspaces_PruneKeepsLiveAndDefault(t *testing.T) {
	ws := NewWorkspaces(nil, nil, nil)
	live := map[string]bool{"s1": true}
	ws.live = func() map[string]bool { return live }

	ws.Get(defaultWorkspace)
	ws.Get("s1")
	live["s2"] = true
	ws.Get("s2")
	require.Equal(t, 3, ws.Len())

	delete(live, "s1")
	delete(live, "s2")
	live["s3"] = true
	ws.Get("s3")
	require.Equal(t, 2, ws.Len())
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Equal(t, "UNKNOWN_PARTY", MapError(contract.ErrUnknownParty).Code)
	require.Nil(t, MapError(context.Canceled))
}
