package lessonController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	courseValidator "lms/validators/course"
	lessonValidator "lms/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func CreateLesson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if middleware.Resolve(user, middleware.ActionCreate, nil) != middleware.Allow {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Moderators cannot create lessons!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*lessonValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, reqData.CourseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	lesson := models.Lesson{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		Preview:     reqData.Preview,
		VideoLink:   reqData.VideoLink,
		OwnerID:     &user.ID,
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	// The worker decides whether subscribers actually get mailed.
	utils.EnqueueLessonUpdate(lesson.ID)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully!", lesson)
}

func GetAllLessons(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := 1
	limit := 10
	if reqData, ok := c.Locals("validatedList").(*courseValidator.ListRequest); ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	db := middleware.Scope(database.Database.Db.Model(&models.Lesson{}), user)

	var total int64
	db.Count(&total)

	var lessons []models.Lesson
	if err := db.Offset(offset).Limit(limit).Order("course_id asc, title asc").Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", fiber.Map{
		"lessons": lessons,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

func GetLessonDetails(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.Preload("Course").First(&lesson, lessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if middleware.Resolve(user, middleware.ActionRead, lesson.OwnerID) != middleware.Allow {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":       lesson,
		"course_title": lesson.Course.Title,
	})
}

func UpdateLesson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.First(&lesson, lessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if middleware.Resolve(user, middleware.ActionUpdate, lesson.OwnerID) != middleware.Allow {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot edit this lesson!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*lessonValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson.Title = reqData.Title
	lesson.Description = reqData.Description
	lesson.Preview = reqData.Preview
	lesson.VideoLink = reqData.VideoLink

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	utils.EnqueueLessonUpdate(lesson.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", lesson)
}

func DeleteLesson(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonID, err := c.ParamsInt("id")
	if err != nil || lessonID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	var lesson models.Lesson
	if err := database.Database.Db.First(&lesson, lessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if middleware.Resolve(user, middleware.ActionDelete, lesson.OwnerID) != middleware.Allow {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot delete this lesson!", nil)
	}

	if err := database.Database.Db.Delete(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
