package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/joshwmy/record-management/internal/authz"
	datasetDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/dataset"
	incidentDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/incident"
	ticketDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/ticket"
	userDatamodel "github.com/joshwmy/record-management/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			for _, model := range []interface{}{
				&incidentDatamodel.Incident{},
				&ticketDatamodel.Ticket{},
				&datasetDatamodel.Dataset{},
			} {
				if err := db.Where("1 = 1").Delete(model).Error; err != nil {
					log.Fatalf("failed to clear data: %v", err)
				}
			}
			fmt.Println("Cleared existing record data")
		}

		seedUsers(db)
		seedIncidents(db)
		seedTickets(db)
		seedDatasets(db)
	},
}

func seedUsers(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe1!"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash seed password: %v", err)
	}

	users := []userDatamodel.User{
		{Username: "admin", PasswordHash: string(hash), Role: string(authz.RoleAdmin)},
		{Username: "cyber_lead", PasswordHash: string(hash), Role: string(authz.RoleCybersecurityAdmin)},
		{Username: "it_lead", PasswordHash: string(hash), Role: string(authz.RoleITAdmin)},
		{Username: "data_lead", PasswordHash: string(hash), Role: string(authz.RoleDatasetsAdmin)},
		{Username: "analyst", PasswordHash: string(hash), Role: string(authz.RoleUser)},
	}

	for _, u := range users {
		var count int64
		db.Model(&userDatamodel.User{}).Where("username = ?", u.Username).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Username, err)
		}
		fmt.Printf("Seeded user: %s (%s)\n", u.Username, u.Role)
	}
}

func seedIncidents(db *gorm.DB) {
	now := time.Now()
	incidents := []incidentDatamodel.Incident{
		{IncidentID: "INC-1001", Timestamp: now.Add(-48 * time.Hour), Severity: "High", Category: "Phishing", Status: "Open", Description: "Credential phishing campaign targeting finance staff"},
		{IncidentID: "INC-1002", Timestamp: now.Add(-24 * time.Hour), Severity: "Critical", Category: "Malware", Status: "In Progress", Description: "Ransomware indicators on a build server"},
		{IncidentID: "INC-1003", Timestamp: now.Add(-6 * time.Hour), Severity: "Low", Category: "Misconfiguration", Status: "Resolved", Description: "Public bucket exposed internal docs"},
	}

	for _, inc := range incidents {
		var count int64
		db.Model(&incidentDatamodel.Incident{}).Where("incident_id = ?", inc.IncidentID).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&inc).Error; err != nil {
			log.Fatalf("failed to seed incident %s: %v", inc.IncidentID, err)
		}
		fmt.Printf("Seeded incident: %s\n", inc.IncidentID)
	}
}

func seedTickets(db *gorm.DB) {
	now := time.Now()
	fourHours := 4
	tickets := []ticketDatamodel.Ticket{
		{TicketID: "TCK-2001", Priority: "High", Status: "Open", CreatedAt: now.Add(-72 * time.Hour), AssignedTo: "it_lead", Description: "VPN concentrator dropping connections"},
		{TicketID: "TCK-2002", Priority: "Medium", Status: "Resolved", CreatedAt: now.Add(-30 * time.Hour), AssignedTo: "it_lead", Description: "Laptop provisioning for new hires", ResolutionTimeHours: &fourHours},
		{TicketID: "TCK-2003", Priority: "Low", Status: "Closed", CreatedAt: now.Add(-10 * time.Hour), Description: "Printer driver update request"},
	}

	for _, t := range tickets {
		var count int64
		db.Model(&ticketDatamodel.Ticket{}).Where("ticket_id = ?", t.TicketID).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			log.Fatalf("failed to seed ticket %s: %v", t.TicketID, err)
		}
		fmt.Printf("Seeded ticket: %s\n", t.TicketID)
	}
}

func seedDatasets(db *gorm.DB) {
	now := time.Now()
	datasets := []datasetDatamodel.Dataset{
		{Name: "quarterly_incidents", Rows: 1200, Columns: 8, UploadedBy: "data_lead", UploadDate: now.Add(-96 * time.Hour)},
		{Name: "helpdesk_export", Rows: 5400, Columns: 12, UploadedBy: "data_lead", UploadDate: now.Add(-20 * time.Hour)},
	}

	for _, d := range datasets {
		var count int64
		db.Model(&datasetDatamodel.Dataset{}).Where("name = ?", d.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&d).Error; err != nil {
			log.Fatalf("failed to seed dataset %s: %v", d.Name, err)
		}
		fmt.Printf("Seeded dataset: %s\n", d.Name)
	}
}
