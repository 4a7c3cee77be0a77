// Package domain models zonal temperature anomaly data and the latitude-band
// grouping that drives the visualization.
//
// # Data Source
//
// Anomaly samples come from a zonal-mean CSV with three numeric columns:
//
//	year, lat, tas
//
// where lat is the center latitude of a zonal slice in degrees (-90..90) and
// tas is the near-surface air temperature anomaly in °C relative to the
// dataset's baseline period. Rows are immutable once loaded; the service
// never writes anomaly data.
//
// # Latitude Bands
//
// The globe is divided into six fixed 30°-wide bands, id 0 at the southern
// pole through id 5 at the northern pole:
//
//	band 0: [-90, -60)    band 3: [  0,  30)
//	band 1: [-60, -30)    band 4: [ 30,  60)
//	band 2: [-30,   0)    band 5: [ 60,  90]
//
// Bands are half-open on the upper edge so a latitude belongs to exactly one
// band; +90 is owned by band 5. Latitudes outside [-90, 90] belong to no
// band. The band table is static and never mutated.
//
// # Grouping
//
// Users cluster bands into up to three groups (ids 1..3, 0 = unassigned).
// Clicking a band advances it through a fixed four-state cycle:
//
//	group 1 → group 2 → group 3 → unassigned → group 1
//
// independently of all other bands. The representation (one group id per
// band) makes "a band is in at most one group" true by construction. The
// default preset pairs the bands symmetrically: poles {0,5} in group 1,
// mid-latitudes {1,4} in group 2, tropics {2,3} in group 3.
//
// # Grouped Series
//
// For each non-empty group the averager filters samples whose latitude falls
// in a band owned by the group, buckets them by year, and takes the
// arithmetic mean of tas per bucket. The result is ordered by ascending year
// with one point per year that has at least one matching sample. Series are
// derived state, recomputed from scratch on every grouping change.
package domain
