// Package emissions estimates CO2e for a travelled distance from fuel
// type, vehicle class and cargo load. The tables are pure business rules;
// no I/O happens here.
package emissions

import (
	"errors"
	"fmt"
	"strings"
)

type FuelType string

const (
	FuelDiesel FuelType = "diesel"
	FuelPetrol FuelType = "benzin"
	FuelElec   FuelType = "el"
	FuelHybrid FuelType = "hybrid"
)

type VehicleClass string

const (
	ClassVans     VehicleClass = "vans"
	ClassTruck    VehicleClass = "truck"
	ClassHGV      VehicleClass = "hgv"
	ClassStandard VehicleClass = "standard"
)

var ErrNegativeDistance = errors.New("distance must be non-negative")

// kg CO2e per liter (kWh for electric).
var emissionFactors = map[FuelType]float64{
	FuelDiesel: 2.68,
	FuelPetrol: 2.31,
	FuelElec:   0.15,
	FuelHybrid: 1.5,
}

// liters (kWh for electric) per 100 km.
var fuelConsumption = map[VehicleClass]map[FuelType]float64{
	ClassVans:     {FuelDiesel: 8.5, FuelPetrol: 9.2, FuelElec: 20.0, FuelHybrid: 6.5},
	ClassTruck:    {FuelDiesel: 25.0, FuelPetrol: 28.0, FuelElec: 50.0, FuelHybrid: 20.0},
	ClassHGV:      {FuelDiesel: 35.0, FuelPetrol: 40.0, FuelElec: 80.0, FuelHybrid: 28.0},
	ClassStandard: {FuelDiesel: 7.0, FuelPetrol: 8.0, FuelElec: 18.0, FuelHybrid: 5.5},
}

type loadRange struct {
	maxKG      float64
	multiplier float64
}

var loadMultipliers = []loadRange{
	{maxKG: 500, multiplier: 1.0},
	{maxKG: 1000, multiplier: 1.1},
	{maxKG: 2000, multiplier: 1.2},
	{maxKG: 5000, multiplier: 1.4},
	{maxKG: 10000, multiplier: 1.6},
}

const maxLoadMultiplier = 1.8

// Result breaks an estimate down so callers can show their working.
type Result struct {
	CO2KG          float64
	FuelLiters     float64
	EmissionFactor float64
	LoadMultiplier float64
}

// NormalizeFuel maps loose user input onto a known fuel type, defaulting
// to diesel for unknown values.
func NormalizeFuel(input string) FuelType {
	switch FuelType(strings.ToLower(strings.TrimSpace(input))) {
	case FuelPetrol, "petrol", "gasoline":
		return FuelPetrol
	case FuelElec, "electric", "ev":
		return FuelElec
	case FuelHybrid:
		return FuelHybrid
	default:
		return FuelDiesel
	}
}

// NormalizeClass maps loose user input onto a known vehicle class,
// defaulting to standard.
func NormalizeClass(input string) VehicleClass {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "van", "vans":
		return ClassVans
	case "truck", "trucks":
		return ClassTruck
	case "hgv", "heavy":
		return ClassHGV
	default:
		return ClassStandard
	}
}

func EmissionFactor(fuel FuelType) float64 {
	if f, ok := emissionFactors[fuel]; ok {
		return f
	}
	return emissionFactors[FuelDiesel]
}

func Consumption(class VehicleClass, fuel FuelType) float64 {
	if byFuel, ok := fuelConsumption[class]; ok {
		if c, ok := byFuel[fuel]; ok {
			return c
		}
	}
	if c, ok := fuelConsumption[ClassStandard][fuel]; ok {
		return c
	}
	return fuelConsumption[ClassStandard][FuelDiesel]
}

func LoadMultiplier(loadKG float64) float64 {
	if loadKG < 0 {
		return 1.0
	}
	for _, r := range loadMultipliers {
		if loadKG <= r.maxKG {
			return r.multiplier
		}
	}
	return maxLoadMultiplier
}

// Calculate estimates emissions for a distance: consumption per 100 km,
// scaled by the load multiplier, times the fuel's emission factor.
func Calculate(distanceKM float64, fuel FuelType, class VehicleClass, loadKG float64) (Result, error) {
	if distanceKM < 0 {
		return Result{}, fmt.Errorf("%w: %v", ErrNegativeDistance, distanceKM)
	}

	factor := EmissionFactor(fuel)
	multiplier := LoadMultiplier(loadKG)
	liters := Consumption(class, fuel) / 100.0 * distanceKM * multiplier

	return Result{
		CO2KG:          liters * factor,
		FuelLiters:     liters,
		EmissionFactor: factor,
		LoadMultiplier: multiplier,
	}, nil
}
