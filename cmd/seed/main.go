package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/Diego-Alvarez-1/ChambaInfo/config"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/helpers"
)

// Seeds a demo employer, a demo worker, and one active job for local work.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	employerID := upsertUser(db, hash, "11111111", "ANA", "TORRES", "RIOS", "anatorres", "911111111", "ana@example.com", "EMPLOYER")
	workerID := upsertUser(db, hash, "22222222", "JUAN", "PEREZ", "GOMEZ", "juanperez", "922222222", "juan@example.com", "WORKER")
	fmt.Printf("seeded users: employer=%d worker=%d password=password123\n", employerID, workerID)

	var jobID int64
	err = db.QueryRow(`
		INSERT INTO jobs (title, description, contact_phone, show_phone, location, salary, employer_id, active)
		VALUES ('Gasfitero para baño', 'Reparación de tuberías en Surco', '911111111', true, 'Lima', 'S/ 150 por día', $1, true)
		RETURNING id
	`, employerID).Scan(&jobID)
	if err != nil {
		log.Fatalf("failed to seed job: %v", err)
	}
	fmt.Printf("seeded job: id=%d\n", jobID)
}

func upsertUser(db *sql.DB, hash, dni, given, paternal, maternal, handle, phone, email, role string) int64 {
	var id int64
	full := given + " " + paternal + " " + maternal
	err := db.QueryRow(`
		INSERT INTO users (national_id, given_names, paternal_surname, maternal_surname,
			full_name, handle, password_hash, phone, email, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (national_id) DO UPDATE SET updated_at = now()
		RETURNING id
	`, dni, given, paternal, maternal, full, handle, hash, phone, email, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", dni, err)
	}
	return id
}
