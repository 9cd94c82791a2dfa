package browser

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/devtools-mcp/internal/providers/browser/devtools"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// PageSummary is one entry of the page listing
type PageSummary struct {
	Index int    `json:"index"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// pageHTMLFunction is applied to a JSON literal: the selector string or
// null for the whole document. The selector never becomes source text.
const pageHTMLFunction = `(function (selector) {
	if (selector === null) {
		return document.documentElement.outerHTML;
	}
	var el = document.querySelector(selector);
	return el === null ? null : el.outerHTML;
})`

// ListPages returns the open pages, indexed in the order the browser
// reports them.
func (p *Provider) ListPages(ctx context.Context) ([]PageSummary, error) {
	targets, err := p.browser.ListTargets(ctx)
	if err != nil {
		return nil, err
	}
	p.metrics.SetPages(len(targets))

	pages := make([]PageSummary, len(targets))
	for i, t := range targets {
		pages[i] = PageSummary{Index: i, Title: t.Title, URL: t.URL}
	}
	return pages, nil
}

// GetPageHTML fetches the markup of the page at index, or of the first
// element matching selector when it is not empty, and sanitizes it.
func (p *Provider) GetPageHTML(ctx context.Context, index int, selector string) (string, error) {
	targets, err := p.browser.ListTargets(ctx)
	if err != nil {
		return "", err
	}
	p.metrics.SetPages(len(targets))

	if len(targets) == 0 {
		return "", devtools.NewError(devtools.KindNoPages, "no pages are open in the browser")
	}
	if index < 0 || index >= len(targets) {
		return "", devtools.NewError(devtools.KindInvalidIndex,
			"page index %d is out of range, valid range is 0-%d", index, len(targets)-1)
	}
	target := targets[index]

	expression, err := pageHTMLExpression(selector)
	if err != nil {
		return "", err
	}

	value, err := p.browser.Evaluate(ctx, target, expression)
	if err != nil {
		return "", err
	}

	raw, found, err := decodeMarkup(value)
	if err != nil {
		return "", devtools.Wrap(devtools.KindEvaluation, err, "unexpected result from page %d", index)
	}
	if !found {
		if selector != "" {
			return "", devtools.NewError(devtools.KindElementNotFound, "no element matches selector %q", selector)
		}
		return "", devtools.NewError(devtools.KindEvaluation, "page %d has no document element", index)
	}

	report := p.filter.Run(raw)
	p.metrics.RecordSanitize(len(raw), len(report.HTML), report.Passes, report.Converged)
	if !report.Converged {
		p.logger.Warn("sanitizer hit pass limit",
			zap.Int("page_index", index),
			zap.Int("passes", report.Passes),
		)
	}

	p.logger.Debug("page html fetched",
		zap.Int("page_index", index),
		zap.String("target", target.ID),
		zap.String("selector", selector),
		zap.Int("raw_bytes", len(raw)),
		zap.Int("html_bytes", len(report.HTML)),
		zap.Int("passes", report.Passes),
	)
	return report.HTML, nil
}

// pageHTMLExpression builds the evaluated expression. An empty selector
// selects the whole document.
func pageHTMLExpression(selector string) (string, error) {
	arg := "null"
	if selector != "" {
		b, err := sonic.ConfigStd.Marshal(selector)
		if err != nil {
			return "", fmt.Errorf("encode selector: %w", err)
		}
		arg = string(b)
	}
	return pageHTMLFunction + "(" + arg + ")", nil
}

// decodeMarkup reads the by-value result. found is false for null.
func decodeMarkup(value []byte) (string, bool, error) {
	if len(value) == 0 || string(value) == "null" {
		return "", false, nil
	}
	var markup string
	if err := sonic.Unmarshal(value, &markup); err != nil {
		return "", false, err
	}
	return markup, true, nil
}

func encodePages(pages []PageSummary) (string, error) {
	b, err := sonic.ConfigStd.MarshalIndent(pages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode pages: %w", err)
	}
	return string(b), nil
}
