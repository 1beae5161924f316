// Seeds the database with sample students, requests and appointments.
//
// Usage: go run ./cmd/seed
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/selyo-ustp/request_service/config"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/helper"
	"github.com/selyo-ustp/request_service/internal/helper/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type sampleStudent struct {
	studentID string
	name      string
	email     string
	program   string
	yearLevel int
}

var sampleStudents = []sampleStudent{
	{"2023301001", "Juan Dela Cruz", "juan.delacruz@ustp.edu.ph", "Bachelor of Science in Information Technology", 2},
	{"2023301002", "Maria Santos", "maria.santos@ustp.edu.ph", "Bachelor of Science in Computer Science", 3},
	{"2022301015", "Carlos Garcia", "carlos.garcia@ustp.edu.ph", "Bachelor of Science in Information Technology", 4},
	{"2024301008", "Angela Reyes", "angela.reyes@ustp.edu.ph", "Bachelor of Science in Computer Science", 1},
	{"2023301045", "Mark Villanueva", "mark.villanueva@ustp.edu.ph", "Bachelor of Science in Information Systems", 2},
	{"2022301022", "Sofia Mendoza", "sofia.mendoza@ustp.edu.ph", "Bachelor of Science in Information Technology", 3},
}

var seedStatuses = []domain.RequestStatus{
	domain.RequestStatusSubmitted,
	domain.RequestStatusUnderReview,
	domain.RequestStatusPendingDean,
	domain.RequestStatusApproved,
	domain.RequestStatusReadyForPickup,
	domain.RequestStatusRejected,
}

func main() {
	cfg := config.LoadConfig()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Request{},
		&domain.RequestDocument{},
		&domain.Appointment{},
		&domain.Announcement{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	log.Println("clearing existing data...")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM request_documents")
	db.Exec("DELETE FROM requests")
	db.Exec("DELETE FROM announcements")
	db.Exec("DELETE FROM audit_logs")
	db.Exec("DELETE FROM users")

	auth := helper.Auth{}
	studentHash, err := auth.HashPassword("password123")
	if err != nil {
		log.Fatalf("hash error: %v", err)
	}
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		log.Fatalf("hash error: %v", err)
	}

	admin := domain.User{
		Role:         domain.RoleAdmin,
		StudentID:    "ADMIN001",
		Name:         "Registrar Admin",
		Email:        "admin@ustp.edu.ph",
		PasswordHash: adminHash,
		Program:      "N/A",
		YearLevel:    1,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("seed admin error: %v", err)
	}
	log.Println("admin:", admin.Email)

	var students []domain.User
	for _, s := range sampleStudents {
		u := domain.User{
			Role:         domain.RoleStudent,
			StudentID:    s.studentID,
			Name:         s.name,
			Email:        s.email,
			PasswordHash: studentHash,
			Program:      s.program,
			YearLevel:    s.yearLevel,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("seed student error: %v", err)
		}
		students = append(students, u)
		log.Printf("student: %s (%s)", u.Name, u.StudentID)
	}

	var typeNames []string
	for name := range domain.RequestTypes {
		typeNames = append(typeNames, name)
	}

	// takenSlots keeps the seed from tripping the slot uniqueness index.
	takenSlots := map[string]bool{}

	requestCount := 0
	for _, student := range students {
		n := rand.Intn(3) + 1 // 1-3 requests per student

		for i := 0; i < n; i++ {
			typeName := typeNames[rand.Intn(len(typeNames))]
			status := seedStatuses[rand.Intn(len(seedStatuses))]

			req := domain.Request{
				StudentID:   student.ID,
				RequestType: typeName,
				Reason:      "Sample request for " + typeName,
				Status:      status,
			}
			if status == domain.RequestStatusRejected {
				req.AdminComment = "Missing required documents"
			}
			if err := db.Create(&req).Error; err != nil {
				log.Fatalf("seed request error: %v", err)
			}
			if status == domain.RequestStatusApproved || status == domain.RequestStatusReadyForPickup {
				code := utils.NewPickupCode(req.ID)
				req.PickupCode = &code
				db.Save(&req)
			}
			requestCount++
			log.Printf("request: %s for %s [%s]", typeName, student.Name, status)

			info := domain.RequestTypes[typeName]
			if !info.RequiresAppointment || status == domain.RequestStatusRejected {
				continue
			}

			// 1-14 days ahead, a slot not yet taken that day
			date := time.Now().AddDate(0, 0, rand.Intn(14)+1).Truncate(24 * time.Hour)
			slot := domain.TimeSlots[rand.Intn(len(domain.TimeSlots))]
			key := fmt.Sprintf("%s|%s", date.Format("2006-01-02"), slot)
			if takenSlots[key] {
				continue
			}
			takenSlots[key] = true

			appt := domain.Appointment{
				StudentID: student.ID,
				RequestID: req.ID,
				Date:      date,
				TimeSlot:  slot,
				Purpose:   typeName,
				Status:    domain.AppointmentStatusScheduled,
				Notes:     "Please bring all required documents",
			}
			if err := db.Create(&appt).Error; err != nil {
				log.Fatalf("seed appointment error: %v", err)
			}

			db.Model(&domain.Request{}).Where("id = ?", req.ID).Updates(map[string]interface{}{
				"appointment_id": appt.ID,
				"status":         domain.RequestStatusApptScheduled,
			})
			log.Printf("appointment: %s on %s %s", typeName, date.Format("2006-01-02"), slot)
		}
	}

	log.Println("database seeded")
	log.Printf("  %d students, %d requests", len(students), requestCount)
	log.Println("login: admin@ustp.edu.ph / admin123")
	log.Println("login: juan.delacruz@ustp.edu.ph / password123")
}
