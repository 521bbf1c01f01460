// Package expander discovers a SAS expander's PHYs via SMP (C4). It
// issues Report General to identify the expander, then Discover on
// every PHY, coalescing consecutive PHYs attached to the same peer SAS
// address into a single wide port vertex.
package expander
