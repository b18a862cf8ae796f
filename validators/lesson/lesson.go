package lessonValidator

import (
	"fmt"
	"net/url"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// allowedVideoHosts is the allow-list for lesson video links. Anything outside
// these hosts is rejected at validation time.
var allowedVideoHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
}

// LessonRequest is the parsed create/update payload.
type LessonRequest struct {
	CourseID    uint   `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Preview     string `json:"preview"`
	VideoLink   string `json:"video_link"`
}

// ValidateVideoLink checks that the link points to an allow-listed
// video-hosting domain. An empty link is fine, a lesson may have no video.
func ValidateVideoLink(link string) error {
	if link == "" {
		return nil
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return fmt.Errorf("video link is not a valid URL")
	}

	host := strings.ToLower(parsed.Hostname())
	if !allowedVideoHosts[host] {
		return fmt.Errorf("only youtube.com links are allowed")
	}

	return nil
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course is required!"
		}
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) > 200 {
			errors["title"] = "Title must be at most 200 characters long!"
		}
		if err := ValidateVideoLink(reqData.VideoLink); err != nil {
			errors["video_link"] = err.Error()
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// UpdateLesson applies the same field rules; the course reference of an
// existing lesson may be omitted and is then left unchanged.
func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LessonRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) > 200 {
			errors["title"] = "Title must be at most 200 characters long!"
		}
		if err := ValidateVideoLink(reqData.VideoLink); err != nil {
			errors["video_link"] = err.Error()
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}
