package mcp

import (
	"context"

	"github.com/rpggio/fcea/internal/document"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `fcea drafts a Founding Contributor Engagement Agreement between a founder and a contributor.

Each MCP session has its own workspace: the two parties, their vesting and deferred-wage terms, and a timesheet. Nothing is persisted; reset_contract returns to the starting scenario.

Typical flow:
1) get_contract to see the current terms and which fields were edited.
2) update_founder / update_contributor to fill in names, contact details, equity and rates.
3) calculate_vesting, vesting_curve and vesting_milestones to explain the equity terms.
4) add_timesheet_entry for hours worked, then distribute_wages to split available profit pro rata.
5) render_agreement for the finished document, share_link to hand the scenario to someone else.

Docs:
- fcea://docs/vesting
- fcea://docs/deferred-wages
- fcea://agreement/template (raw template with {{Placeholder}} tokens)
- fcea://agreement/current (this workspace's agreement as markdown)
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "fcea://docs/vesting",
		Name:        "docs_vesting",
		Title:       "Equity vesting",
		Description: "How the cliff and the vesting exponent shape the contributor's equity over time.",
		Content: `# Equity vesting

The contributor is granted up to ` + "`total_equity_granted`" + ` percent of the company, vesting over ` + "`vesting_period`" + ` years (horizon T = round(years × 365) days).

## Formula

- days ≤ cliff: nothing has vested. The cliff day itself vests nothing.
- days ≥ T: the full grant has vested.
- otherwise: grant × ((days − cliff) / (T − cliff)) ^ exponent

An exponent of 1 is linear. Above 1 the curve starts slowly and accelerates, rewarding tenure. Below 1 it front-loads vesting. Vested equity never exceeds the grant and never decreases with more days.

## Field ranges

- total_equity_granted: greater than 0, at most 100
- vesting_period: greater than 0 (years)
- cliff_days: 0 or more; a cliff at or beyond the horizon means nothing vests before the horizon
- vesting_exponent: greater than 0

## Milestone table

The agreement prints an illustrative table at 12, 18, 24, 30, 36, 42 and 48 months. It always uses a four-year (1460-day) schedule with a 180-day cliff, together with the contributor's grant and exponent, so it does not follow the configured vesting period.
`,
	},
	{
		URI:         "fcea://docs/deferred-wages",
		Name:        "docs_deferred_wages",
		Title:       "Deferred wages",
		Description: "Timesheet accrual and the pro-rata distribution rule.",
		Content: `# Deferred wages

## Accrual

Each timesheet entry records a party, a date, a description, hours and an hourly rate. The rate defaults to the party's deferred wage rate at the moment the entry is saved; later rate changes do not rewrite saved entries. The entry total is hours × rate.

Parties are matched by name (case-insensitive) or by the words founder and contributor.

## Distribution

When profit is available, every party receives the same fraction of what it is owed:

    ratio   = min(profit / total owed, 1)
    payment = owed × ratio

Nobody is paid ahead of anyone else. With nothing owed the ratio is 0. Negative amounts count as 0.

## Example

Contributor owed $5,000, founder owed $1,000, profit $1,000: ratio 16.67%, contributor paid $833.33, founder paid $166.67.

## Export

export_timesheet_csv returns per-party totals followed by the columns Partner, Date, Work Done, Hours, Rate ($/hr), Total.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		addMarkdownResource(server, doc, func(context.Context) (string, error) {
			return doc.Content, nil
		})
	}
}

func registerAgreementResources(server *sdkmcp.Server, workspaces *Workspaces) {
	addMarkdownResource(server, docResource{
		URI:         "fcea://agreement/template",
		Name:        "agreement_template",
		Title:       "Agreement template",
		Description: "The agreement text with {{Placeholder}} tokens; see get_placeholders for their values.",
		Content:     document.Template(),
	}, func(context.Context) (string, error) {
		return document.Template(), nil
	})

	addMarkdownResource(server, docResource{
		URI:         "fcea://agreement/current",
		Name:        "agreement_current",
		Title:       "Current agreement",
		Description: "The agreement filled in from this session's workspace.",
	}, func(ctx context.Context) (string, error) {
		store := getStore(ctx)
		if store == nil {
			store = workspaces.Get(getWorkspaceKey(ctx))
		}
		return document.Markdown(store.Founder(), store.Contributor(), store.Now()), nil
	})
}

func addMarkdownResource(server *sdkmcp.Server, doc docResource, content func(context.Context) (string, error)) {
	resource := &sdkmcp.Resource{
		URI:         doc.URI,
		Name:        doc.Name,
		Title:       doc.Title,
		Description: doc.Description,
		MIMEType:    "text/markdown",
	}
	if doc.Content != "" {
		resource.Size = int64(len(doc.Content))
	}

	server.AddResource(resource, func(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
		text, err := content(ctx)
		if err != nil {
			return nil, err
		}
		uri := doc.URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		return &sdkmcp.ReadResourceResult{
			Contents: []*sdkmcp.ResourceContents{{
				URI:      uri,
				MIMEType: "text/markdown",
				Text:     text,
			}},
		}, nil
	})
}
