package database

import "fmt"

// Driver represents a database backend type.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string { return string(d) }

// ParseDriver validates a configured driver name.
func ParseDriver(name string) (Driver, error) {
	switch d := Driver(name); d {
	case DriverPostgres, DriverSQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", name)
	}
}
