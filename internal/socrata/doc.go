// Package socrata implements a small client for Socrata Open Data endpoints,
// specifically the NYC licensed-dog dataset (nu7n-tubp). It covers SoQL query
// building ($limit/$offset/$where/$order/$select), filter helpers for the
// dataset's columns, metadata lookup, and rate-limited paged CSV downloads.
package socrata
