// Package listing derives the visible rows of a list page from the fetched
// collection.
//
// Everything here is pure and synchronous: filters, partitions, sorting and
// client-side paging take a slice and return a new one without modifying the
// input. Pages call these on every change; collections are admin-tool sized,
// so nothing is memoized.
package listing
