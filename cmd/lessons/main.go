package main

import (
	classroomsrepo "aulario/internal/classrooms/repository"
	"aulario/internal/engine"
	"aulario/internal/lessons/handler"
	"aulario/internal/lessons/repository"
	"aulario/internal/lessons/service"
	"aulario/internal/lessons/validator"
	"aulario/pkg/app"
	"aulario/pkg/config"
	"aulario/pkg/kafka"
	kafka_config "aulario/pkg/kafka/config"
	kafka_middleware "aulario/pkg/kafka/middleware"
)

const ServiceName = "lessons"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Lessons service")
	lessonService, plannerService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewLessonHandler(lessonService, plannerService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.LessonService, service.PlannerService) {
	lessonValidator := validator.NewLessonValidator(cfg.Log)
	lessonRepo := repository.NewMongoLessonRepository(cfg)
	lockRepo := repository.NewLessonLockRepository(cfg)
	classroomRepo := classroomsrepo.NewMongoClassroomRepository(cfg)

	eng := engine.New(cfg.DefaultLessonDuration())
	producer := initProducer(cfg)

	lessonService := service.NewLessonService(
		lessonRepo,
		lockRepo,
		classroomRepo,
		lessonValidator,
		eng,
		producer,
		cfg,
	)
	plannerService := service.NewPlannerService(
		lessonRepo,
		classroomRepo,
		eng,
		cfg,
	)

	cfg.Log.Info("Lesson services initialized",
		"database", cfg.MongoDatabaseName,
		"default_lesson_duration", cfg.DefaultLessonDuration(),
	)
	return lessonService, plannerService
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, cfg.LessonEventsTopic, cfg.LessonEventsTopic+".dlq")
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.LessonEventsTopic)
	return producer
}
