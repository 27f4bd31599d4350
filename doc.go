// Package capgrowth reconstructs the capital growth of a property purchase from
// a published price index.
//
// A price index only tells relative price levels. Given a purchase date and a
// purchase price (the Anchor), capgrowth turns the index period-over-period
// changes into the value the purchase would have had at every date covered by
// the index, before and after the purchase:
//   - Records on or before the anchor date form the backward segment. The
//     latest of them carries the purchase price, earlier ones are derived with
//     the trailing-future percent change (each record versus the next one).
//   - Records after the anchor date form the forward segment, compounded from
//     the purchase price with each record's change versus its predecessor.
//   - The bridge is the change of the last backward record versus the first
//     forward record; it joins both segments into one continuous path.
//
// The result is summarized by a compound annual growth rate computed over
// whole calendar years.
//
// This package serves as the foundational logic for the `cgr` command-line
// tool and its web page; loading index series is done by the csvindex, fred
// and insee packages, presentation by plot and renderer.
package capgrowth
