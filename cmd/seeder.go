package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the directory and category catalog with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := sqlx.Connect("pgx", cfg.Database.Source)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		adminID := seedUser(db, "Admin User", "ADMIN", nil)
		managerID := seedUser(db, "Maya Manager", "MANAGER", nil)
		seedUser(db, "Evan Employee", "EMPLOYEE", &managerID)

		fmt.Println("Seeded directory: admin", adminID, "manager", managerID)

		categories := []struct {
			Name string
			Desc string
		}{
			{"travel", "business travel and transportation"},
			{"meals", "meals and entertainment"},
			{"office", "office supplies and equipment"},
			{"other", "miscellaneous expenses"},
		}

		for _, c := range categories {
			var exists int
			if err := db.QueryRow("SELECT 1 FROM expense_categories WHERE name = $1", c.Name).Scan(&exists); err == nil {
				continue
			}
			if _, err := db.Exec("INSERT INTO expense_categories (name, description, is_active, created_at) VALUES ($1, $2, true, now())", c.Name, c.Desc); err != nil {
				log.Fatalf("failed to insert expense category %s: %v", c.Name, err)
			}
			fmt.Printf("Seeded expense category: %s\n", c.Name)
		}

		fmt.Println("Seed complete")
	},
}

func seedUser(db *sqlx.DB, name, role string, managerID *int64) int64 {
	var id int64
	err := db.QueryRow("SELECT id FROM users WHERE name = $1 AND role = $2", name, role).Scan(&id)
	if err == nil {
		fmt.Printf("user %q already exists (id %d)\n", name, id)
		return id
	}

	err = db.QueryRow(
		"INSERT INTO users (name, role, manager_id, created_at) VALUES ($1, $2, $3, now()) RETURNING id",
		name, role, managerID,
	).Scan(&id)
	if err != nil {
		log.Fatalf("failed to insert user %s: %v", name, err)
	}

	fmt.Printf("Seeded user: %s (%s, id %d)\n", name, role, id)
	return id
}
