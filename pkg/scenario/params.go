package scenario

import (
	"github.com/go-playground/validator/v10"
	"github.com/satria-nugraha/corridorsim/pkg"
	"github.com/satria-nugraha/corridorsim/pkg/util"
)

// SimParams configure the connection to the external simulator backend.
type SimParams struct {
	Port     int     `json:"port" validate:"gte=0,lte=65535"`
	TimeStep float64 `json:"time_step" validate:"gt=0"`
}

func DefaultSimParams() SimParams {
	return SimParams{TimeStep: pkg.DEFAULT_TIME_STEP_SECOND}
}

// EnvParams tune the environment the vehicles are controlled in.
type EnvParams struct {
	TargetVelocity float64 `json:"target_velocity" validate:"gt=0"`
	MaxAccel       float64 `json:"max_accel" validate:"gte=0"`
	MaxDecel       float64 `json:"max_decel" validate:"gte=0"`
}

func DefaultEnvParams() EnvParams {
	return EnvParams{TargetVelocity: pkg.DEFAULT_TARGET_VELOCITY_MPS}
}

// NetParams describe the generated network files handed to the simulator.
type NetParams struct {
	Lanes      int     `json:"lanes" validate:"gte=1"`
	SpeedLimit float64 `json:"speed_limit" validate:"gt=0"`
	Resolution int     `json:"resolution" validate:"gte=1"`
	NetPath    string  `json:"net_path"`
}

func DefaultNetParams() NetParams {
	return NetParams{
		Lanes:      pkg.DEFAULT_LANES,
		SpeedLimit: pkg.DEFAULT_SPEED_LIMIT_MPS,
		Resolution: 40,
		NetPath:    "debug/net/",
	}
}

// CfgParams bound the simulated interval.
type CfgParams struct {
	StartTime float64 `json:"start_time" validate:"gte=0"`
	EndTime   float64 `json:"end_time" validate:"gtfield=StartTime"`
	CfgPath   string  `json:"cfg_path"`
}

func DefaultCfgParams() CfgParams {
	return CfgParams{EndTime: pkg.DEFAULT_SIMULATION_STEPS, CfgPath: "debug/cfg/"}
}

// InitialConfig controls where and how the vehicle population is first placed.
// Distribution is the subset of corridor segments vehicles may originate on; empty
// means every segment of the chain.
type InitialConfig struct {
	Shuffle      bool     `json:"shuffle"`
	Seed         int64    `json:"seed"`
	SpacingM     float64  `json:"spacing" validate:"gte=0"`
	Distribution []string `json:"distribution"`
}

// VehicleType names a population of identical vehicles and the controllers the
// external simulator attaches to them. Controller identifiers are opaque here.
type VehicleType struct {
	Name                 string `json:"name" validate:"required"`
	Count                int    `json:"count" validate:"gte=1"`
	AccelController      string `json:"accel_controller"`
	LaneChangeController string `json:"lane_change_controller"`
}

func validateParams(net NetParams, cfg CfgParams, initial InitialConfig, types []VehicleType) error {
	validate := validator.New()
	if err := validate.Struct(net); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid net params")
	}
	if err := validate.Struct(cfg); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid cfg params")
	}
	if err := validate.Struct(initial); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid initial config")
	}
	for _, vt := range types {
		if err := validate.Struct(vt); err != nil {
			return util.WrapErrorf(err, util.ErrBadParamInput, "invalid vehicle type %q", vt.Name)
		}
	}
	return nil
}
