// Package domain models the survey point dataset behind the dashboard and the
// pure operations the views are built from.
//
// # Data Source
//
// Points come from a field survey CSV (one row per GPS fix) tagged with the
// Ethiopian administrative hierarchy, largest to smallest:
//
//	Region -> Zone -> Woreda -> Kebele
//
// Boundaries are first-level administrative polygons (regions) in geographic
// coordinates (EPSG:4326, x = longitude, y = latitude).
//
// # Conventions
//
// Missing coordinates:
//
//	The survey export writes 0 for a missing latitude or longitude. A point is
//	kept only when both are non-zero. This is a sentinel check, not a range
//	check; a real fix on the equator or the prime meridian would also be
//	dropped, which cannot happen inside Ethiopia.
//
// Null names:
//
//	An empty admin name is the null value. It never appears in an option list
//	and is not counted in any tally, but the point still counts toward totals.
//
// Wildcard:
//
//	[All] (or an empty string) in a [Selection] field means no constraint on
//	that field. Any other value is matched exactly and case-sensitively.
//
// # Drill-down
//
// Selections cascade region -> zone -> woreda. Changing an upstream field
// resets every downstream field to [All] (see [Resolve]). Charts switch to a
// finer grouping once the sibling selection is concrete (see [Granularity]).
package domain
