package browser

import (
	"context"
	"encoding/json"

	"github.com/GriffinCanCode/devtools-mcp/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser/devtools"
	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser/sanitize"
	"github.com/GriffinCanCode/devtools-mcp/internal/shared/types"
	"go.uber.org/zap"
)

// Tool identifiers
const (
	ToolListPages   = "list_pages"
	ToolGetPageHTML = "get_page_html"
)

// Browser is the part of the DevTools client the provider needs.
// *devtools.Client implements it.
type Browser interface {
	ListTargets(ctx context.Context) ([]devtools.PageTarget, error)
	Evaluate(ctx context.Context, target devtools.PageTarget, expression string) (json.RawMessage, error)
}

// Provider implements the browser inspection service
type Provider struct {
	browser Browser
	filter  *sanitize.Filter
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// New creates a new browser provider. A nil filter selects the default rule
// set; metrics may be nil.
func New(browser Browser, filter *sanitize.Filter, metrics *monitoring.Metrics, logger *zap.Logger) *Provider {
	if filter == nil {
		filter = sanitize.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		browser: browser,
		filter:  filter,
		metrics: metrics,
		logger:  logger.Named("browser"),
	}
}

// Definition returns service definition
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "browser",
		Name:        "Browser DevTools",
		Category:    types.CategoryBrowser,
		Description: "Read-only access to the pages of a browser running with remote debugging enabled",
		Tools:       p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	zero := 0.0
	return []types.Tool{
		{
			ID:          ToolListPages,
			Name:        "List Pages",
			Description: "List the pages open in the browser. The index of each entry is what get_page_html expects.",
			Parameters:  []types.Parameter{},
			Returns:     "array",
			ReadOnly:    true,
		},
		{
			ID:          ToolGetPageHTML,
			Name:        "Get Page HTML",
			Description: "Return the sanitized HTML of a page, or of the first element matching a CSS selector",
			Parameters: []types.Parameter{
				{Name: "page_index", Type: "integer", Description: "Index from list_pages", Required: false, Default: 0, Minimum: &zero},
				{Name: "selector", Type: "string", Description: "CSS selector of the element to return", Required: false},
			},
			Returns:  "string",
			ReadOnly: true,
		},
	}
}

// Execute routes tool calls
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}) (*types.Result, error) {
	switch toolID {
	case ToolListPages:
		return p.executeListPages(ctx)
	case ToolGetPageHTML:
		return p.executeGetPageHTML(ctx, params)
	default:
		return types.Failure(string(devtools.KindUnknownTool), "unknown tool: "+toolID)
	}
}

func (p *Provider) executeListPages(ctx context.Context) (*types.Result, error) {
	pages, err := p.ListPages(ctx)
	if err != nil {
		return failure(err)
	}

	text, err := encodePages(pages)
	if err != nil {
		return failure(err)
	}
	return types.Success(text, map[string]interface{}{"pages": pages})
}

func (p *Provider) executeGetPageHTML(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	index, err := GetIndex(params, "page_index")
	if err != nil {
		return failure(err)
	}
	selector, err := GetString(params, "selector")
	if err != nil {
		return failure(err)
	}

	markup, err := p.GetPageHTML(ctx, index, selector)
	if err != nil {
		return failure(err)
	}
	return types.Success(markup, nil)
}

func failure(err error) (*types.Result, error) {
	return types.Failure(string(devtools.KindOf(err)), err.Error())
}
