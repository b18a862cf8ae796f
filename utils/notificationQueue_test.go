package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitBrokers(t *testing.T) {
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, splitBrokers("kafka-1:9092, kafka-2:9092"))
	require.Equal(t, []string{"kafka-1:9092"}, splitBrokers("kafka-1:9092,"))
	require.Nil(t, splitBrokers(""))
	require.Nil(t, splitBrokers(" , "))
}

func TestRunUpdateJobDispatch(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	course, _ := seedCourseWithSubscriber(t, db, "student@example.com")

	status := RunUpdateJob(db, UpdateJob{JobID: "job-a", Kind: UpdateKindCourse, CourseID: course.ID})
	require.Contains(t, status, "Notifications sent")
	require.Len(t, *captured, 1)

	status = RunUpdateJob(db, UpdateJob{JobID: "job-b", Kind: "course_deleted"})
	require.Contains(t, status, "Unknown update kind")
	require.Len(t, *captured, 1)
}
