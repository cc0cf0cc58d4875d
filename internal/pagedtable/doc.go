// Package pagedtable keeps a paginated, sortable table consistent with a remote
// list endpoint.
//
// The package is built around a pure reducer (Reduce) that turns user events
// (start, sort change, page change) into the next PageRequest, and a Controller
// that applies fetch completions under latest-wins supersession: every request
// is stamped with a monotonically increasing sequence number and only the
// completion carrying the most recent number may update the ViewState.
//
// Two drivers run a Controller on a single logical thread of control:
//   - Table integrates with Bubble Tea; fetches run as tea.Cmd and their results
//     come back through the program's Update loop as FetchedMsg.
//   - Runner owns a goroutine event loop for headless callers and publishes
//     state snapshots to a subscriber.
package pagedtable
