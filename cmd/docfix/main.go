// Package main provides the entry point for the docfix CLI.
//
// docfix repairs Word documents for rendering in Word Online and Microsoft
// Teams, either for files on disk or as an HTTP service.
//
// Usage:
//
//	docfix fix report.docx
//	docfix serve --listen :8080
//
// See --help for all available options.
package main

// main is the entry point for docfix.
func main() {
	Execute()
}
