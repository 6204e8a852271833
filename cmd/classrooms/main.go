package main

import (
	"aulario/internal/classrooms/handler"
	"aulario/internal/classrooms/repository"
	"aulario/internal/classrooms/service"
	"aulario/internal/classrooms/validator"
	"aulario/pkg/app"
	"aulario/pkg/config"
)

const ServiceName = "classrooms"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Classrooms service")
	classroomService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewClassroomHandler(classroomService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ClassroomService {
	classroomValidator := validator.NewClassroomValidator(cfg.Log)
	classroomRepo := repository.NewMongoClassroomRepository(cfg)
	classroomService := service.NewClassroomService(
		classroomRepo,
		classroomValidator,
		cfg,
	)

	cfg.Log.Info("Classroom service initialized", "database", cfg.MongoDatabaseName)
	return classroomService
}
