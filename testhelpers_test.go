//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/application"
	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"github.com/Sajal-97/Blind-Stick-Server/internal/events"
	"github.com/Sajal-97/Blind-Stick-Server/internal/kafka"
	"github.com/Sajal-97/Blind-Stick-Server/internal/repository"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// navigationStack holds wired-up navigation pipeline components backed by
// stub providers and real persistence and messaging.
type navigationStack struct {
	Service *application.NavigationService
	Audit   *application.AuditTrail
	Cleanup func()
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_navigation",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_navigation sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(&repository.NavigationRecordModel{}))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, events.TopicNavigationEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// Deterministic providers so the pipeline runs end to end without external APIs.

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(context.Context, []byte) (*navigation.TranscriptionResult, error) {
	return &navigation.TranscriptionResult{Text: "take me to Central Park", Language: "en-US"}, nil
}

type stubTranslator struct{}

func (stubTranslator) Translate(_ context.Context, text, target string) (*navigation.TranslationResult, error) {
	return &navigation.TranslationResult{Text: text, TargetLanguage: target}, nil
}

type stubGeocoder struct{}

func (stubGeocoder) Geocode(context.Context, string, navigation.Coordinate) (*navigation.GeocodeResult, error) {
	return &navigation.GeocodeResult{
		Place:    "Central Park, New York, NY, USA",
		Location: navigation.Coordinate{Lat: 40.785091, Lng: -73.968285},
	}, nil
}

type stubRouter struct{}

func (stubRouter) Route(context.Context, navigation.Coordinate, navigation.Coordinate) (*navigation.RouteResult, error) {
	return &navigation.RouteResult{
		OverviewPolyline: "_p~iF~ps|U_ulLnnqC",
		Distance:         "2.1 km",
		Duration:         "26 mins",
		Steps:            []navigation.RouteStep{{Instruction: "Head north", Distance: "2.1 km", Duration: "26 mins"}},
	}, nil
}

// setupNavigationStack wires the pipeline with real persistence and messaging.
func setupNavigationStack(t *testing.T, db *gorm.DB, brokers []string) *navigationStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	repo := repository.NewGormNavigationRepository(db)
	audit := application.NewAuditTrail(repo, logger)
	producer := kafka.NewProducer(brokers, logger)
	publisher := events.NewPublisher(producer, logger)

	service := application.NewNavigationService(
		stubTranscriber{}, stubTranslator{}, stubGeocoder{}, stubRouter{},
		audit, publisher, "en", logger,
	)

	return &navigationStack{
		Service: service,
		Audit:   audit,
		Cleanup: func() {
			audit.Close()
			_ = producer.Close()
		},
	}
}

// waitForRecord polls the navigation_records table until a record for the
// device exists.
func waitForRecord(t *testing.T, db *gorm.DB, deviceID string, timeout time.Duration) repository.NavigationRecordModel {
	t.Helper()
	var result repository.NavigationRecordModel
	require.Eventually(t, func() bool {
		var model repository.NavigationRecordModel
		err := db.Where("device_id = ?", deviceID).First(&model).Error
		if err != nil {
			return false
		}
		result = model
		return true
	}, timeout, 200*time.Millisecond, "no navigation record for device %s", deviceID)
	return result
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
