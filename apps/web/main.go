package main

import (
	"log"
	"os"

	"github.com/go-redis/redis/v8"

	"github.com/colegio-app/colegio/apps/web/echo"
	"github.com/colegio-app/colegio/core"
	"github.com/colegio-app/colegio/core/admin"
	"github.com/colegio-app/colegio/core/payment"
	"github.com/colegio-app/colegio/core/session"
	"github.com/colegio-app/colegio/core/student"
	"github.com/colegio-app/colegio/services/logger"
	"github.com/colegio-app/colegio/storage/database"
	"github.com/colegio-app/colegio/storage/database/sqlx"
	"github.com/colegio-app/colegio/storage/session"
)

func main() {
	std := log.New(os.Stdout, "WEB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	var appLogger core.Logger
	if core.Conf.GetBool("debug") || core.Conf.GetBool("testMode") {
		appLogger = logsvc.NewConsoleLogger(std)
	} else {
		appLogger = logsvc.NewRollbarLogger(std)
	}

	// set up DB
	db, err := database.Open()
	errAndDie(std, err)
	defer db.Close()
	errAndDie(std, database.Migrate(db))

	// set up services
	admSvc := admin.NewService(sqlxrepos.NewAdminRepository(db))
	stdSvc := student.NewService(sqlxrepos.NewStudentRepository(db))
	pmtSvc := payment.NewService(sqlxrepos.NewPaymentRepository(db), stdSvc)

	// set up session store
	var sessions session.Store
	switch core.Conf.GetString("sessionBackend") {
	case "memory":
		sessions = sessionstore.NewInMemStore()
	default:
		client := redis.NewClient(&redis.Options{
			Addr: core.Conf.GetString("redisAddress"),
			DB:   core.Conf.GetInt("redisDB"),
		})
		sessions = sessionstore.NewRedisStore(client)
	}

	// start web server
	app := echoweb.NewServer(&echoweb.Options{
		Address:    core.Conf.GetString("serverAddress"),
		Logger:     appLogger,
		AdminSvc:   admSvc,
		StudentSvc: stdSvc,
		PaymentSvc: pmtSvc,
		Sessions:   sessions,
		SessionTTL: core.Conf.GetDuration("sessionTTL"),
		CookieName: core.Conf.GetString("sessionCookie"),
	})
	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
