package db

import (
	"fmt"
	"time"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type Options struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	DebugMode    bool
	Migrate      bool
}

func (o Options) dsn() string {
	sslMode := o.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s password=%s",
		o.Host, o.Port, o.User, o.Name, sslMode, o.Password)
}

func Connect(opts Options) error {
	if DB != nil {
		return nil
	}
	var gormLogger logger.Interface = gorm_logrus.New()
	if opts.DebugMode {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	conn, err := gorm.Open(postgres.Open(opts.dsn()), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return errors.Wrap(err, "error connecting to the database")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "error getting database pool")
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if opts.DebugMode {
		conn = conn.Debug()
	}
	DB = conn
	if opts.Migrate {
		if err = AutoMigrateDB(); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{
		"host":     opts.Host,
		"database": opts.Name,
	}).Info("database connection established")
	return nil
}

// PingDB reports whether the database answers, used by the health check.
func PingDB() error {
	if DB == nil {
		return errors.New("database is not connected")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
