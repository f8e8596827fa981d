package room

type Type string

const (
	TypeSimple Type = "SIMPLE"
	TypeDouble Type = "DOUBLE"
	TypeSuite  Type = "SUITE"
	TypeFamily Type = "FAMILY"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeSimple, TypeDouble, TypeSuite, TypeFamily:
		return true
	default:
		return false
	}
}

// Status is an operational flag for the front desk. Date-range bookings live
// in the availability index, not here.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
	StatusCleaning    Status = "CLEANING"
	StatusReserved    Status = "RESERVED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance, StatusCleaning, StatusReserved:
		return true
	default:
		return false
	}
}
