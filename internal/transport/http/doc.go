// Package http holds the chi handlers for the dashboard API: dog-license
// analyses, salary-survey analyses, report exports and health.
package http
