package stitch

import "errors"

// ErrAmbiguousTopology indicates a stitcher pass found more than one
// candidate peer port for a link. The source aborts rather than
// disambiguate by PHY range (spec Open Question 1); this reimplementation
// preserves that behavior.
var ErrAmbiguousTopology = errors.New("stitch: ambiguous topology")
