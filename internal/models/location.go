package models

import (
	"errors"
	"fmt"
)

// Location is one of the three retail sites that report arrivals.
type Location int

const (
	LocationUnknown Location = iota
	Visto
	LoNuestro
	SanJose
)

var (
	ErrUnknownMachine  = errors.New("unrecognized machine name")
	ErrUnknownLocation = errors.New("unrecognized location")
)

type locationInfo struct {
	code        string
	displayName string
	machineName string
	schedule    WeeklySchedule
}

var locationTable = map[Location]locationInfo{
	Visto: {
		code:        "VIS",
		displayName: "Visto",
		machineName: "VISTO",
		schedule:    weekSchedule(NewTimeOfDay(9, 0, 0), NewTimeOfDay(9, 30, 0), NewTimeOfDay(10, 0, 0)),
	},
	LoNuestro: {
		code:        "LON",
		displayName: "Lo Nuestro",
		machineName: "LO-NUESTRO",
		schedule:    weekSchedule(NewTimeOfDay(8, 30, 0), NewTimeOfDay(9, 0, 0), NewTimeOfDay(10, 0, 0)),
	},
	SanJose: {
		code:        "SAJ",
		displayName: "San Jose",
		machineName: "SAN-JOSE",
		schedule:    weekSchedule(NewTimeOfDay(8, 0, 0), NewTimeOfDay(8, 30, 0), NewTimeOfDay(9, 30, 0)),
	},
}

// AllLocations returns every known location in display order.
func AllLocations() []Location {
	return []Location{Visto, LoNuestro, SanJose}
}

// Code is the short location code. It doubles as the table name in the record store.
func (l Location) Code() string {
	return locationTable[l].code
}

func (l Location) DisplayName() string {
	return locationTable[l].displayName
}

func (l Location) MachineName() string {
	return locationTable[l].machineName
}

// Schedule returns the weekly expected-arrival table for the location, or nil when the
// location is unknown.
func (l Location) Schedule() WeeklySchedule {
	return locationTable[l].schedule
}

func (l Location) Valid() bool {
	_, ok := locationTable[l]
	return ok
}

func (l Location) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Location(%d)", int(l))
	}
	return l.Code()
}

// LocationFromCode resolves a location code such as "VIS".
func LocationFromCode(code string) (Location, bool) {
	return findLocation(func(info locationInfo) bool { return info.code == code })
}

// LocationFromDisplayName resolves the name shown in the report form, e.g. "Lo Nuestro".
func LocationFromDisplayName(name string) (Location, bool) {
	return findLocation(func(info locationInfo) bool { return info.displayName == name })
}

// LocationFromMachineName resolves the hostname of a workstation, e.g. "SAN-JOSE".
func LocationFromMachineName(hostname string) (Location, bool) {
	return findLocation(func(info locationInfo) bool { return info.machineName == hostname })
}

func findLocation(match func(locationInfo) bool) (Location, bool) {
	for _, loc := range AllLocations() {
		if match(locationTable[loc]) {
			return loc, true
		}
	}
	return LocationUnknown, false
}
