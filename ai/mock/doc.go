// Package mock provides test double implementations of the vision service
// interfaces.
//
// The mock analyzer lets tests run without an external vision service and
// enables controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	analyzer := mock.NewImageAnalyzer()
//	res, err := analyzer.AnalyzeImage(ctx, req)
//
//	// Custom behavior injection
//	analyzer := mock.NewImageAnalyzer().
//	    WithAnalyzeFunc(func(ctx context.Context, req *ai.Request) (*ai.Result, error) {
//	        return &ai.Result{Available: true, Analysis: "a bar chart", Confidence: 0.85}, nil
//	    })
//
//	// Check call counts
//	count := analyzer.CallCount()
//
// By default the mock reports every image as analyzed with a canned
// description naming the image.
package mock
