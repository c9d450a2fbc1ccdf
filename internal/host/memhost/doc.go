// Package memhost is an in-memory implementation of host.DisplayHost.
//
// It keeps an Emacs-style window tree (combinations of stacked or
// side-by-side children, flattened so a combination never directly holds
// another of the same orientation), an optional one-line reserved echo
// area, and immutable text buffers. Display lines are computed from
// grapheme clusters with tab expansion, wrapping at the window width or
// truncating, so wide and combined characters step correctly.
//
// The host backs the terminal viewer and every planner test.
package memhost
