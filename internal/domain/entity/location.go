package entity

// Location is one of the organization's two fixed sites. Orders and
// profiles carry it so the kitchen knows where to deliver.
type Location string

const (
	LocationNorth Location = "Nordpol"
	LocationSouth Location = "Südpol"
)

// String returns the string representation of the Location.
func (l Location) String() string {
	return string(l)
}

// IsValid checks if the Location is one of the two sites.
func (l Location) IsValid() bool {
	switch l {
	case LocationNorth, LocationSouth:
		return true
	default:
		return false
	}
}

// AllLocations lists the valid sites in display order.
func AllLocations() []Location {
	return []Location{LocationNorth, LocationSouth}
}
