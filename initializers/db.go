package initializers

import (
	"ptw-backend/config"
	"ptw-backend/db"
)

func InitDBConnection() {
	conf := config.Conf.Database
	err := db.Connect(db.Options{
		Host:         conf.Host,
		Port:         conf.Port,
		Name:         conf.Name,
		User:         conf.User,
		Password:     conf.Password,
		SSLMode:      conf.SSLMode,
		MaxOpenConns: conf.MaxOpenConns,
		MaxIdleConns: conf.MaxIdleConns,
		DebugMode:    conf.DebugMode != nil && *conf.DebugMode,
		Migrate:      conf.MigrateOnStart == nil || *conf.MigrateOnStart,
	})
	if err != nil {
		panic(err.Error())
	}

	db.InitPreload()
}
