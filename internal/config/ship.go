package config

import "fmt"

// Ship stat names used by upgrade tracks.
const (
	StatMaxFuel               = "max_fuel"
	StatFuelConsumptionRate   = "fuel_consumption_rate"
	StatThrustConsumptionRate = "thrust_consumption_rate"
	StatMaxCargo              = "max_cargo"
	StatAcceleration          = "acceleration"
	StatMaxSpeed              = "max_speed"
	StatRotationSpeed         = "rotation_speed"
	StatMiningPower           = "mining_power"
	StatMiningRange           = "mining_range"
)

// IsShipStat reports whether name is a ShipConfig stat.
func IsShipStat(name string) bool {
	_, ok := ShipConfig{}.Stat(name)
	return ok
}

// Stat returns the value of the named stat.
func (s ShipConfig) Stat(name string) (float64, bool) {
	switch name {
	case StatMaxFuel:
		return s.MaxFuel, true
	case StatFuelConsumptionRate:
		return s.FuelConsumptionRate, true
	case StatThrustConsumptionRate:
		return s.ThrustConsumptionRate, true
	case StatMaxCargo:
		return float64(s.MaxCargo), true
	case StatAcceleration:
		return s.Acceleration, true
	case StatMaxSpeed:
		return s.MaxSpeed, true
	case StatRotationSpeed:
		return s.RotationSpeed, true
	case StatMiningPower:
		return s.MiningPower, true
	case StatMiningRange:
		return s.MiningRange, true
	}
	return 0, false
}

// WithStat returns a copy of s with the named stat replaced.
func (s ShipConfig) WithStat(name string, v float64) (ShipConfig, error) {
	switch name {
	case StatMaxFuel:
		s.MaxFuel = v
	case StatFuelConsumptionRate:
		s.FuelConsumptionRate = v
	case StatThrustConsumptionRate:
		s.ThrustConsumptionRate = v
	case StatMaxCargo:
		s.MaxCargo = int(v)
	case StatAcceleration:
		s.Acceleration = v
	case StatMaxSpeed:
		s.MaxSpeed = v
	case StatRotationSpeed:
		s.RotationSpeed = v
	case StatMiningPower:
		s.MiningPower = v
	case StatMiningRange:
		s.MiningRange = v
	default:
		return s, fmt.Errorf("unknown ship stat %q", name)
	}
	return s, nil
}
