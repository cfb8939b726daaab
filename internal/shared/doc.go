// Package shared holds helpers used across the datakit packages.
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler, a slog.Handler that records every log record so
//     tests can assert on messages and attributes
//   - DataTree, a fixture builder for root/data/<subdir>/... project layouts
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    tree := testutil.NewDataTree(t)
//	    tree.Write("raw/sales.csv", "a,b\n1,2\n")
//	    // ...
//	    testutil.AssertLogContains(t, logs, slog.LevelWarn, "No file found")
//	}
package shared
