// Package numeric holds numeric routines driven by hyperreal dual numbers:
// Newton root-finding with the slope taken from the infinitesimal part, and
// Gauss–Legendre quadrature written once for any hyperreal.Field.
package numeric
