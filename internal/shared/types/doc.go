// Package types provides shared data structures for the server.
//
// Core Types:
//   - Service: Tool provider definition
//   - Tool: Tool specification with its parameters
//   - Parameter: Typed tool argument
//   - Result: Standard tool execution result
//
// Example Usage:
//
//	res, _ := types.Failure("InvalidIndexError", "page index 5 out of range")
//	if !res.Success {
//	    log.Println(res.Kind, res.Message())
//	}
package types
