package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/novacare/schedula-backend/internal/models"
	"github.com/novacare/schedula-backend/internal/services"
	"github.com/novacare/schedula-backend/internal/storage"
)

const (
	reminderWindow   = 24 * time.Hour
	reminderInterval = time.Hour
)

// ReminderJob sends WhatsApp reminders for upcoming appointments
type ReminderJob struct {
	store         storage.Store
	twilioService *services.TwilioService
	isRunning     bool
}

// NewReminderJob creates a new reminder job scheduler
func NewReminderJob(store storage.Store, twilioService *services.TwilioService) *ReminderJob {
	return &ReminderJob{
		store:         store,
		twilioService: twilioService,
		isRunning:     false,
	}
}

// Start begins the hourly reminder sweep
func (r *ReminderJob) Start() {
	if r.isRunning {
		log.Println("Reminder job already running")
		return
	}

	r.isRunning = true
	log.Println("Starting appointment reminder job...")

	go r.scheduleReminderSweep()
}

// Stop halts the scheduled job
func (r *ReminderJob) Stop() {
	r.isRunning = false
	log.Println("Stopping appointment reminder job...")
}

// Runs every hour, on the hour
func (r *ReminderJob) scheduleReminderSweep() {
	for r.isRunning {
		now := time.Now()
		nextRun := now.Truncate(reminderInterval).Add(reminderInterval)
		time.Sleep(nextRun.Sub(now))

		if !r.isRunning {
			break
		}

		r.sendReminders()
	}
}

// sendReminders notifies every user with an appointment inside the window
func (r *ReminderJob) sendReminders() {
	log.Println("Sweeping for upcoming appointments...")

	appointments, err := r.store.GetUpcomingAppointments(reminderWindow)
	if err != nil {
		log.Printf("Error getting upcoming appointments: %v", err)
		return
	}

	sentCount := 0
	for _, appointment := range appointments {
		user, err := r.store.GetUser(appointment.UserID)
		if err != nil {
			log.Printf("Error getting user %d for reminder: %v", appointment.UserID, err)
			continue
		}
		if user.Phone == "" {
			continue
		}

		message := buildReminderMessage(appointment)
		if r.twilioService != nil {
			if err := r.twilioService.SendWhatsAppMessage(user.Phone, message); err != nil {
				log.Printf("Error sending reminder for appointment %d: %v", appointment.ID, err)
				continue
			}
		} else {
			log.Printf("📤 Reminder (not sent - Twilio not configured): %s", message)
		}

		if err := r.store.MarkReminderSent(appointment.ID); err != nil {
			log.Printf("Error marking reminder sent for appointment %d: %v", appointment.ID, err)
			continue
		}
		sentCount++
	}

	if sentCount > 0 {
		log.Printf("✅ Sent %d appointment reminders", sentCount)
	}
}

func buildReminderMessage(appointment *models.Appointment) string {
	return fmt.Sprintf("🔔 Reminder: your %s is coming up on %s. Reply to this message if you need to reschedule.",
		appointment.Title,
		appointment.AppointmentDate.Format("Monday, Jan 2 at 3:04 PM"))
}
