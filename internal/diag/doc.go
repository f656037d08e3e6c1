// Package diag defines the diagnostic model shared by the analysis passes:
// severities, stable codes, the Diagnostic record, the bounded Bag collector
// and the Reporter sink interface.
package diag
