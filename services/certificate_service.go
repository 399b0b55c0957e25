package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	config "github.com/shaq-bracu/course-tutor-app/configs"
	"github.com/shaq-bracu/course-tutor-app/database"
	"github.com/shaq-bracu/course-tutor-app/models"
)

const certificateSessionCount = 10

// CheckAndGenerateCertificate issues a course certificate once a student has
// completed enough sessions of the same course. Called fire-and-forget after
// a session is marked complete.
func CheckAndGenerateCertificate(booking models.Booking) {
	var completedCount int64
	database.DB.Model(&models.Booking{}).
		Where("student_id = ? AND course_id = ? AND status = ?",
			booking.StudentID, booking.CourseID, BookingStatusCompleted).
		Count(&completedCount)

	if completedCount < certificateSessionCount {
		return
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", booking.CourseID).Error; err != nil {
		log.Printf("🔥 Certificate: course %s not found: %v", booking.CourseID, err)
		return
	}
	var student, tutor models.User
	if err := database.DB.First(&student, "id = ?", booking.StudentID).Error; err != nil {
		return
	}
	if err := database.DB.First(&tutor, "id = ?", booking.TutorID).Error; err != nil {
		return
	}

	courseTitle := fmt.Sprintf("%s with %s - %d Sessions", course.Title, tutor.FullName, certificateSessionCount)

	var existing models.Certificate
	if err := database.DB.Where("student_id = ? AND course_id = ?", booking.StudentID, booking.CourseID).
		First(&existing).Error; err == nil {
		return
	}

	html, err := renderCertificateHTML(student.FullName, tutor.FullName, courseTitle)
	if err != nil {
		log.Printf("🔥 Certificate: render failed: %v", err)
		return
	}

	pdfBytes, err := printPDF(html)
	if err != nil {
		log.Printf("🔥 Certificate: PDF generation failed: %v", err)
		return
	}

	uploadURL, err := uploadCertificate(pdfBytes, booking.StudentID.String())
	if err != nil {
		log.Printf("🔥 Certificate: upload failed: %v", err)
		return
	}

	cert := models.Certificate{
		StudentID:      booking.StudentID,
		TutorID:        booking.TutorID,
		CourseID:       booking.CourseID,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now(),
		CertificateURL: uploadURL,
	}
	if err := database.DB.Create(&cert).Error; err != nil {
		log.Printf("🔥 Certificate: failed to store record for student %s: %v", booking.StudentID, err)
		return
	}
	log.Printf("✅ Issued certificate '%s' to student %s", courseTitle, booking.StudentID)
}

func renderCertificateHTML(studentName, tutorName, courseTitle string) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		StudentName    string
		TutorName      string
		CourseTitle    string
		CompletionDate string
	}{
		StudentName:    studentName,
		TutorName:      tutorName,
		CourseTitle:    courseTitle,
		CompletionDate: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func printPDF(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", studentID, uuid.New().String()),
		Folder:       "course_tutor_certificates",
		ResourceType: "raw",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
