package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one HTML email to every address in to via SendGrid.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendGridAPIKey == "" {
		return fmt.Errorf("sendgrid api key is not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients provided")
	}

	from := mail.NewEmail("LMS", config.AppConfig.EmailSender)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = subject

	personalization := mail.NewPersonalization()
	for _, addr := range to {
		personalization.AddTos(mail.NewEmail("", addr))
	}
	message.AddPersonalizations(personalization)
	message.AddContent(mail.NewContent("text/html", htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}

	return nil
}

// getEmailTemplate wraps body content into the shared HTML frame.
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1F3A5F; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F3A5F; line-height: 1.6; }
			.content h2 { color: #1F3A5F; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5B8DB8; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LMS</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				You receive this email because you are subscribed to course updates.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// CourseUpdateEmailBody renders the notification sent when a whole course changed.
func CourseUpdateEmailBody(courseTitle string) (subject, body string) {
	subject = fmt.Sprintf("Course updated: %s", courseTitle)
	content := fmt.Sprintf(`
		<p>The course <strong>%s</strong> has been updated.</p>
		<p>Check out the new materials!</p>
	`, courseTitle)
	return subject, getEmailTemplate("Course Updated", content)
}

// LessonUpdateEmailBody renders the notification for a single new or changed lesson.
func LessonUpdateEmailBody(courseTitle, lessonTitle string) (subject, body string) {
	subject = fmt.Sprintf("Course updated: %s", courseTitle)
	content := fmt.Sprintf(`
		<p>A new lesson is available in <strong>%s</strong>:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>Check out the new materials!</p>
	`, courseTitle, lessonTitle)
	return subject, getEmailTemplate("New Lesson", content)
}
