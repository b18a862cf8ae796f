package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"lms/config"
	"lms/database"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// UpdateKind discriminates the two notification job types.
type UpdateKind string

const (
	UpdateKindCourse UpdateKind = "course_updated"
	UpdateKindLesson UpdateKind = "lesson_updated"
)

// UpdateJob is the payload published to the update topic after a successful
// course or lesson mutation. Delivery is at-least-once; a duplicate job at
// worst produces a duplicate email, which is acceptable.
type UpdateJob struct {
	JobID    string     `json:"job_id"`
	Kind     UpdateKind `json:"kind"`
	CourseID uint       `json:"course_id,omitempty"`
	LessonID uint       `json:"lesson_id,omitempty"`
}

var (
	producer      *kafka.Writer
	producerMutex sync.Mutex
)

// InitNotificationQueue initializes the Kafka writer using brokers from the
// config. With no brokers configured the queue degrades to in-process
// goroutine dispatch (best-effort, useful for local development).
func InitNotificationQueue() {
	producerMutex.Lock()
	defer producerMutex.Unlock()

	if config.AppConfig.KafkaBrokers == "" {
		log.Println("[NOTIFY-QUEUE] Kafka is disabled (KAFKA_BROKERS is empty), using in-process dispatch")
		return
	}

	brokers := splitBrokers(config.AppConfig.KafkaBrokers)
	if len(brokers) == 0 {
		log.Println("[NOTIFY-QUEUE] No valid Kafka brokers configured, using in-process dispatch")
		return
	}

	producer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        config.AppConfig.KafkaUpdateTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}

	log.Printf("[NOTIFY-QUEUE] Kafka producer initialized. Brokers=%v, Topic=%s", brokers, config.AppConfig.KafkaUpdateTopic)
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b := strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// EnqueueCourseUpdate schedules subscriber notifications for a course edit.
// It returns immediately; enqueue failures are logged, never surfaced to the
// request that triggered them.
func EnqueueCourseUpdate(courseID uint) {
	enqueue(UpdateJob{JobID: uuid.NewString(), Kind: UpdateKindCourse, CourseID: courseID})
}

// EnqueueLessonUpdate schedules the debounced notification check for a lesson edit.
func EnqueueLessonUpdate(lessonID uint) {
	enqueue(UpdateJob{JobID: uuid.NewString(), Kind: UpdateKindLesson, LessonID: lessonID})
}

func enqueue(job UpdateJob) {
	producerMutex.Lock()
	writer := producer
	producerMutex.Unlock()

	if writer == nil {
		// In-process fallback: run the job off the request goroutine.
		go func() {
			status := RunUpdateJob(database.Database.Db, job)
			log.Printf("[NOTIFY-QUEUE] Job %s: %s", job.JobID, status)
		}()
		return
	}

	go func() {
		payload, err := json.Marshal(job)
		if err != nil {
			log.Printf("[NOTIFY-QUEUE] Error marshaling job %s: %v", job.JobID, err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err = writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(job.JobID),
			Value: payload,
		})
		if err != nil {
			log.Printf("[NOTIFY-QUEUE] Failed to publish job %s: %v", job.JobID, err)
		}
	}()
}

// RunUpdateJob executes a notification job and returns the outcome status string.
func RunUpdateJob(db *gorm.DB, job UpdateJob) string {
	switch job.Kind {
	case UpdateKindCourse:
		return CourseUpdateNotification(db, job.JobID, job.CourseID)
	case UpdateKindLesson:
		return LessonUpdateNotification(db, job.JobID, job.LessonID)
	default:
		return "Unknown update kind: " + string(job.Kind)
	}
}

// StartNotificationWorker consumes update jobs from Kafka in a background
// goroutine. No-op when Kafka is disabled.
func StartNotificationWorker() {
	if config.AppConfig.KafkaBrokers == "" {
		return
	}

	brokers := splitBrokers(config.AppConfig.KafkaBrokers)
	if len(brokers) == 0 {
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  config.AppConfig.KafkaGroupID,
		Topic:    config.AppConfig.KafkaUpdateTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	log.Printf("[NOTIFY-WORKER] Consuming topic %s as group %s", config.AppConfig.KafkaUpdateTopic, config.AppConfig.KafkaGroupID)

	go func() {
		for {
			msg, err := reader.ReadMessage(context.Background())
			if err != nil {
				log.Printf("[NOTIFY-WORKER] Read error: %v", err)
				time.Sleep(time.Second)
				continue
			}

			var job UpdateJob
			if err := json.Unmarshal(msg.Value, &job); err != nil {
				log.Printf("[NOTIFY-WORKER] Skipping malformed job %s: %v", string(msg.Key), err)
				continue
			}

			status := RunUpdateJob(database.Database.Db, job)
			log.Printf("[NOTIFY-WORKER] Job %s: %s", job.JobID, status)
		}
	}()
}
