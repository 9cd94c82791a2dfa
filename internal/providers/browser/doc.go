/*
Package browser provides read-only inspection of a running browser.

# Overview

The provider talks to a Chromium-family browser started with
--remote-debugging-port and exposes two tools:

  - list_pages: the open pages as {index, title, url}
  - get_page_html: the sanitized markup of one page, or of the first
    element matching a CSS selector

# Fetching

Every fetch lists the targets again, resolves page_index against that list,
opens one DevTools session on the target, evaluates a single expression by
value and closes the session. The selector is handed to the expression as a
JSON string argument.

The returned markup always goes through the sanitize package before it
leaves the provider.

# Errors

Failures are *devtools.Error values. Execute turns them into failed
types.Result values carrying the error kind, so a failing call never stops
the server.

# Usage Example

	client := devtools.New(devtools.Config{Host: "localhost", Port: 9222}, logger)
	provider := browser.New(client, nil, metrics, logger)

	result, _ := provider.Execute(ctx, browser.ToolGetPageHTML, map[string]interface{}{
		"page_index": 0,
		"selector":   "main",
	})
*/
package browser
