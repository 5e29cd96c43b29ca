package pkg

const (
	DEFAULT_TIME_STEP_SECOND    = 0.1
	DEFAULT_SPEED_LIMIT_MPS     = 30.0
	DEFAULT_LANES               = 1
	DEFAULT_TARGET_VELOCITY_MPS = 25.0
	DEFAULT_SIMULATION_STEPS    = 3000

	MIN_VEHICLE_SPACING_METER = 7.5 // bumper-to-bumper spacing floor at insertion
)

const (
	DEBUG = false
)
