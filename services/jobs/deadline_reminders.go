package jobs

import (
	"log"
	"time"

	"legaldocs_api_go/config"
	"legaldocs_api_go/models"
	"legaldocs_api_go/services"

	"gorm.io/gorm"
)

// SendDeadlineReminders emails the assignee of every open case whose
// deadline falls within the next 7 days and which has not been reminded yet.
func SendDeadlineReminders(database *gorm.DB, cfg *config.Config) {
	log.Println("Starting deadline reminder job...")

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := today.Add(7 * 24 * time.Hour)

	var cases []models.Case

	// Cases due within the window, still open, assigned, not yet reminded
	err := database.Preload("Client").Preload("AssignedTo").
		Where("deadline IS NOT NULL AND deadline >= ? AND deadline <= ?", today, windowEnd).
		Where("status <> ?", models.CaseStatusCerrado).
		Where("assigned_to_id IS NOT NULL").
		Where("deadline_reminder_sent_at IS NULL").
		Find(&cases).Error

	if err != nil {
		log.Printf("Error fetching cases for deadline reminders: %v", err)
		return
	}

	log.Printf("Found %d case(s) to remind", len(cases))

	for _, c := range cases {
		if c.AssignedTo == nil || c.Deadline == nil {
			continue
		}

		daysRemaining := int(c.Deadline.Sub(today).Hours() / 24)
		email, err := services.BuildDeadlineReminderEmail(c.AssignedTo.Email, services.DeadlineReminderData{
			LawyerName:    c.AssignedTo.Name,
			CaseNumber:    c.CaseNumber,
			CaseTitle:     c.Title,
			ClientName:    c.Client.FullName,
			Deadline:      c.Deadline.Format("2006-01-02"),
			DaysRemaining: daysRemaining,
		})
		if err != nil {
			log.Printf("Failed to build reminder for case %s: %v", c.CaseNumber, err)
			continue
		}

		if err := services.SendEmail(cfg, email); err != nil {
			log.Printf("Failed to send reminder for case %s: %v", c.CaseNumber, err)
			continue
		}

		sentAt := time.Now().UTC()
		database.Model(&c).Update("deadline_reminder_sent_at", sentAt)
		log.Printf("Sent deadline reminder for case %s", c.CaseNumber)
	}

	log.Println("Deadline reminder job completed")
}
