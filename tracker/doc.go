// Package tracker diffs successive keyed lists.
//
// Each call to Tracker.Update compares the new list with the previous one by
// key and reports three kinds of change through hooks: enter for keys not seen
// before, update for keys present in both lists, and exit for keys that
// vanished. The outputs returned by enter and update are kept per key and
// returned as a list in new-list order, which makes a Tracker a small
// retained-mode reconciler (list of models in, list of views out).
package tracker
