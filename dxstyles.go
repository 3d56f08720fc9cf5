// Package dxstyles generates a stylesheet from the classnames used in
// JSX/TSX sources.
//
// Styles are compiled ahead of time into a binary artifact. Sources are
// scanned once, then watched; every change that alters the set of classnames
// in use rewrites the stylesheet.
//
// # Compiling styles
//
//	result, err := dxstyles.Compile("styles.toml", "styles.bin")
//
// # One-shot build
//
//	summary, err := dxstyles.Build(ctx, dxstyles.Config{
//		Root:     "src",
//		Artifact: "styles.bin",
//		Output:   "styles.css",
//	})
//
// # Watching
//
//	err := dxstyles.Watch(ctx, cfg) // blocks until ctx is cancelled
//
// # CLI Tool
//
//	go install github.com/yacobolo/dxstyles/cmd/dxstyles@latest
package dxstyles
