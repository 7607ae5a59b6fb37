// Package errors provides structured, actionable errors for Dot.
//
// Every error has a code (e.g. "E001") registered with a category, a short
// message, a longer explanation and a documentation link. Call sites add a
// detail, a suggestion or a wrapped cause:
//
//	err := errors.New("E001").
//	    WithDetail("container is not attached to a document").
//	    WithSuggestion("Append the container to document.body before mounting")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Invalid mount container
//	//
//	//   container is not attached to a document
//	//
//	//   Hint: Append the container to document.body before mounting
//	//
//	//   Learn more: https://dot.vango.dev/errors/E001
//
// # Matching
//
// Two DotErrors match under errors.Is when their codes are equal, so a
// package can export a sentinel built with New and callers can test for it
// no matter what detail was attached:
//
//	var ErrInvalidContainer = errors.New("E001")
//
//	if errors.Is(err, mount.ErrInvalidContainer) { ... }
//
// # Categories
//
//   - runtime: mount and dispatch failures
//   - storage: persistence and snapshot failures
//   - routing: route table problems
//   - config: configuration loading and validation
//   - cli: command line usage
package errors
