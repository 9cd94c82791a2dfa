// Package service provides the registry of tool providers.
//
// The registry maps every tool ID to the provider that defines it and
// routes execution. Tool IDs are global: registering two providers that
// define the same tool fails.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	if err := registry.Register(browserProvider); err != nil {
//	    return err
//	}
//	result, err := registry.Execute(ctx, "get_page_html", params)
package service
