package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrpoint/attendance-backend-go/internal/config"
	appHTTP "github.com/hrpoint/attendance-backend-go/internal/handler/http"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/clock"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/cron"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/database"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/idempotency"
	"github.com/hrpoint/attendance-backend-go/internal/pkg/jwt"
	"github.com/hrpoint/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hrpoint/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/hrpoint/attendance-backend-go/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Invalid ATTENDANCE_TIMEZONE: ", err)
	}
	clk := clock.NewSystem(loc)

	var guard idempotency.Guard
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  1 * time.Second,
			WriteTimeout: 1 * time.Second,
		})
		guard = idempotency.NewRedisGuard(client)
	} else {
		guard = idempotency.NewMemoryGuard()
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, clk, cfg.Attendance.StoreTimeout)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		employeeHandler,
		guard,
		cfg.Attendance.InFlightTTL,
		cfg.App.Env,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, clk).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Server shutdown error: ", err)
	}
}
