package initializers

import (
	"context"

	"ptw-backend/config"
	"ptw-backend/fiberlog"
	authhandler "ptw-backend/lib/auth"
	departmentprovider "ptw-backend/lib/dicts/department"
	exporthandler "ptw-backend/lib/export"
	xlsexport "ptw-backend/lib/export/xls"
	filestorage "ptw-backend/lib/file-storage"
	jobpermithandler "ptw-backend/lib/job-permit"
	notificationhandler "ptw-backend/lib/notification"
	notificationworker "ptw-backend/lib/notification/worker"
	permithistory "ptw-backend/lib/permit-history"
	ptwhandler "ptw-backend/lib/ptw"
	"ptw-backend/lib/rbac"
	usershandler "ptw-backend/lib/users"
	"ptw-backend/lib/utils/lock"
	connectionhub "ptw-backend/lib/ws/hub/connection-hub"

	log "github.com/sirupsen/logrus"
)

const reportSlots = 2

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	lock.InitResourceLock(reportSlots)
	rbac.NewHandler()

	// order matters, handlers read Instance of the ones above
	departmentprovider.NewHandler()
	usershandler.NewHandler()
	authhandler.NewHandler()
	permithistory.NewHandler()
	filestorage.NewHandler()
	notificationhandler.NewHandler()
	jobpermithandler.NewHandler()
	ptwhandler.NewHandler()
	xlsexport.NewHandler()
	exporthandler.NewHandler()

	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	if conf := config.Conf.Notification; conf.Enabled != nil && !*conf.Enabled {
		log.Info("notification worker disabled")
		return
	}
	notificationworker.StartWorker(ctx)
}
