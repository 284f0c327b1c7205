// Package pagination holds the --page, --page-size and --sort flags shared by
// the list commands and the metadata emitted with paged JSON output.
//
// Paging is client-side: the full collection is fetched once and windowed
// with listing.Paginate, so the CLI shows the same pages as the console.
package pagination
