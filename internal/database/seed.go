package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/sihul/sihul-backend/internal/utils"
)

// Seed loads reference data when the corresponding tables are empty.  It
// writes through the DB handle directly: bulk-loaded rows are trusted and
// do not pass through the scheduling validator.
func Seed(db *sql.DB, bcryptCost int) error {
	if err := seedUsers(db, bcryptCost); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := seedAcademic(db); err != nil {
		return fmt.Errorf("seed academic data: %w", err)
	}
	if err := seedRooms(db); err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}
	return nil
}

func tableEmpty(db *sql.DB, table string) (bool, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func seedUsers(db *sql.DB, cost int) error {
	empty, err := tableEmpty(db, "users")
	if err != nil || !empty {
		return err
	}
	log.Println("seeding default users")
	users := []struct {
		email, password, name, role string
	}{
		{"admin@sihul.edu", "admin123", "Administrador General", "ADMIN"},
		{"coordinador@sihul.edu", "coord123", "Coordinador Académico", "COORDINATOR"},
		{"mgarcia@sihul.edu", "docente123", "María García", "TEACHER"},
		{"jperez@sihul.edu", "docente123", "Juan Pérez", "TEACHER"},
	}
	for _, u := range users {
		hash, err := utils.HashPassword(u.password, cost)
		if err != nil {
			return err
		}
		if _, err := db.Exec(
			"INSERT INTO users (email, password_hash, full_name, role) VALUES (?,?,?,?)",
			u.email, hash, u.name, u.role); err != nil {
			return err
		}
	}
	return nil
}

func seedAcademic(db *sql.DB) error {
	empty, err := tableEmpty(db, "faculties")
	if err != nil || !empty {
		return err
	}
	log.Println("seeding faculties, programs, subjects and groups")
	res, err := db.Exec("INSERT INTO faculties (name) VALUES (?)", "Facultad de Ingeniería")
	if err != nil {
		return err
	}
	facultyID, _ := res.LastInsertId()

	res, err = db.Exec(
		"INSERT INTO programs (faculty_id, name, code) VALUES (?,?,?)",
		facultyID, "Ingeniería de Software", "ISW")
	if err != nil {
		return err
	}
	programID, _ := res.LastInsertId()

	subjects := []struct {
		code, name string
		credits    int
	}{
		{"ISW-101", "Programación I", 4},
		{"ISW-201", "Bases de Datos", 4},
		{"ISW-301", "Arquitectura de Software", 3},
	}
	for _, s := range subjects {
		if _, err := db.Exec(
			"INSERT INTO subjects (program_id, code, name, credits) VALUES (?,?,?,?)",
			programID, s.code, s.name, s.credits); err != nil {
			return err
		}
	}

	for _, g := range []string{"ISW-A", "ISW-B"} {
		if _, err := db.Exec(
			"INSERT INTO student_groups (program_id, name, term) VALUES (?,?,?)",
			programID, g, "2026-2"); err != nil {
			return err
		}
	}

	if _, err := db.Exec(
		"INSERT INTO academic_periods (year, term, starts_on, ends_on, is_active) VALUES (?,?,?,?,1)",
		2026, 2, "2026-08-03", "2026-12-11"); err != nil {
		return err
	}
	return nil
}

func seedRooms(db *sql.DB) error {
	empty, err := tableEmpty(db, "rooms")
	if err != nil || !empty {
		return err
	}
	log.Println("seeding rooms")
	rooms := []struct {
		name, building, kind string
		capacity             int
	}{
		{"Sala 301", "Bloque A", "CLASSROOM", 50},
		{"Sala 302", "Bloque A", "CLASSROOM", 40},
		{"Lab Redes", "Bloque B", "LAB", 25},
		{"Auditorio Central", "Bloque C", "AUDITORIUM", 200},
	}
	for _, r := range rooms {
		if _, err := db.Exec(
			"INSERT INTO rooms (name, building, kind, capacity) VALUES (?,?,?,?)",
			r.name, r.building, r.kind, r.capacity); err != nil {
			return err
		}
	}
	return nil
}
