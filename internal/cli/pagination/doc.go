// Package pagination turns the --limit/--offset, --page/--page-size and
// --sort flags of list commands into a pagedtable.PageRequest and describes
// the returned page with PaginationMeta.
package pagination
