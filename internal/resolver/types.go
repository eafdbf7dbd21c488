package resolver

// Scores for the primary indexed search path. The values are fixed by the
// ranking contract: results must be deterministic and explainable, so every
// tier maps to one constant rather than a tuned formula.
const (
	scoreExactMatch     = 100 // case-insensitive equality with generic or brand name
	scorePrefixMatch    = 80  // name starts with the query
	scoreSubstringMatch = 60  // query appears inside the name
	scoreIndexHit       = 40  // index/prefix hit with no stronger textual relationship
)

// Scores for the fuzzy pipeline tiers.
const (
	scoreAliasTier    = 95
	scoreIndexTier    = 90
	scorePhoneticTier = 70

	fuzzyBaseScore       = 60
	fuzzyDistancePenalty = 15 // per edit
	fuzzyFloorScore      = 20
)

// Confidence values for name correction.
const (
	confidenceExact = 100
	confidenceAlias = 95
)

// earlyStopFactor bounds candidate scanning: once limit×earlyStopFactor
// candidates are scored and at least one is a prefix-or-better match,
// scanning stops. This caps worst-case latency on very large posting unions
// without materially hurting top-k quality.
const earlyStopFactor = 3
