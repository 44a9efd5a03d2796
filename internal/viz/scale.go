package viz

// Screen scaling lives here rather than in the models.
const (
	canvasWidth  = 60
	canvasHeight = 20

	historyLimit = 300

	plotWidth  = 36
	plotHeight = 5

	// bodyMinRadius keeps tiny bodies visible as more than a single dot.
	bodyMinRadius = 1

	// arenaMargin pads projectile and field extents so paths never touch
	// the canvas edge.
	arenaMargin = 0.05
)
