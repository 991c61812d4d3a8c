package arrivaldb

import (
	"net"
	"time"

	"github.com/go-sql-driver/mysql"

	"arrivals.chinatownlogistic.com/internal/appconf"
)

// Config holds configuration options for the Client
type Config struct {
	Env      appconf.Environment
	Database appconf.DatabaseConfig
	// Zone is attached to dates read back from the store.
	Zone *time.Location
	// Migrate creates the location tables on first use. Only the report server
	// sets it; workstation accounts need no CREATE privilege.
	Migrate bool
}

func NewConfig(cfg appconf.Config) Config {
	return Config{
		Env:      cfg.Env,
		Database: cfg.Database,
		Zone:     cfg.Location,
	}
}

// dataSourceName renders the driver specific DSN.
func (c Config) dataSourceName() string {
	db := c.Database
	if db.Driver == appconf.DriverSQLite {
		return db.Path
	}

	addr := db.Host
	if _, _, err := net.SplitHostPort(addr); err != nil && addr != "" {
		addr = net.JoinHostPort(addr, "3306")
	}

	mc := mysql.NewConfig()
	mc.User = db.User
	mc.Passwd = db.Password
	mc.Net = "tcp"
	mc.Addr = addr
	mc.DBName = db.Name
	mc.AllowNativePasswords = true
	mc.Timeout = 5 * time.Second
	return mc.FormatDSN()
}

func (c Config) driver() string {
	if c.Database.Driver == "" {
		return appconf.DriverMySQL
	}
	return c.Database.Driver
}

func (c Config) zone() *time.Location {
	if c.Zone == nil {
		return time.Local
	}
	return c.Zone
}
