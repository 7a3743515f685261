package database

import (
	"database/sql"
	"fmt"
)

// RunMigrations ensures all application tables exist.  Statements are
// idempotent so the server can run them unconditionally at startup.
func RunMigrations(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			role ENUM('ADMIN','COORDINATOR','TEACHER','STUDENT') NOT NULL DEFAULT 'STUDENT',
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS refresh_tokens (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			token_hash CHAR(64) NOT NULL UNIQUE,
			expires_at DATETIME NOT NULL,
			revoked_at DATETIME NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS faculties (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS programs (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			faculty_id BIGINT UNSIGNED NOT NULL,
			name VARCHAR(255) NOT NULL,
			code VARCHAR(32) NOT NULL UNIQUE,
			CONSTRAINT fk_program_faculty FOREIGN KEY (faculty_id) REFERENCES faculties(id)
		)`,
		`CREATE TABLE IF NOT EXISTS subjects (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			program_id BIGINT UNSIGNED NOT NULL,
			code VARCHAR(32) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			credits INT UNSIGNED NOT NULL DEFAULT 0,
			CONSTRAINT fk_subject_program FOREIGN KEY (program_id) REFERENCES programs(id)
		)`,
		`CREATE TABLE IF NOT EXISTS student_groups (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			program_id BIGINT UNSIGNED NOT NULL,
			name VARCHAR(64) NOT NULL UNIQUE,
			term VARCHAR(16) NOT NULL DEFAULT '',
			CONSTRAINT fk_group_program FOREIGN KEY (program_id) REFERENCES programs(id)
		)`,
		`CREATE TABLE IF NOT EXISTS academic_periods (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			year INT UNSIGNED NOT NULL,
			term INT UNSIGNED NOT NULL,
			starts_on DATE NOT NULL,
			ends_on DATE NOT NULL,
			is_active TINYINT(1) NOT NULL DEFAULT 0,
			CONSTRAINT uq_period UNIQUE (year, term)
		)`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(128) NOT NULL,
			building VARCHAR(128) NOT NULL DEFAULT '',
			kind ENUM('CLASSROOM','LAB','AUDITORIUM') NOT NULL DEFAULT 'CLASSROOM',
			capacity INT UNSIGNED NOT NULL DEFAULT 0,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			CONSTRAINT uq_room UNIQUE (building, name)
		)`,
		`CREATE TABLE IF NOT EXISTS resources (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			room_id BIGINT UNSIGNED NULL,
			name VARCHAR(128) NOT NULL,
			kind VARCHAR(64) NOT NULL DEFAULT '',
			quantity INT UNSIGNED NOT NULL DEFAULT 1,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			CONSTRAINT fk_resource_room FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS schedules (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			group_id BIGINT UNSIGNED NOT NULL,
			subject_id BIGINT UNSIGNED NOT NULL,
			teacher_id BIGINT UNSIGNED NULL,
			room_id BIGINT UNSIGNED NOT NULL,
			day VARCHAR(16) NOT NULL,
			starts_at TIME NOT NULL,
			ends_at TIME NOT NULL,
			headcount INT UNSIGNED NULL,
			status ENUM('PENDING','APPROVED') NOT NULL DEFAULT 'APPROVED',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT fk_schedule_group FOREIGN KEY (group_id) REFERENCES student_groups(id),
			CONSTRAINT fk_schedule_subject FOREIGN KEY (subject_id) REFERENCES subjects(id),
			CONSTRAINT fk_schedule_teacher FOREIGN KEY (teacher_id) REFERENCES users(id),
			CONSTRAINT fk_schedule_room FOREIGN KEY (room_id) REFERENCES rooms(id),
			CONSTRAINT ck_schedule_window CHECK (ends_at > starts_at)
		)`,
		`CREATE TABLE IF NOT EXISTS fused_schedules (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			group1_id BIGINT UNSIGNED NOT NULL,
			group2_id BIGINT UNSIGNED NOT NULL,
			group3_id BIGINT UNSIGNED NULL,
			subject_id BIGINT UNSIGNED NOT NULL,
			teacher_id BIGINT UNSIGNED NULL,
			room_id BIGINT UNSIGNED NOT NULL,
			day VARCHAR(16) NOT NULL,
			starts_at TIME NOT NULL,
			ends_at TIME NOT NULL,
			headcount INT UNSIGNED NOT NULL DEFAULT 0,
			comment VARCHAR(255) NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			CONSTRAINT fk_fused_group1 FOREIGN KEY (group1_id) REFERENCES student_groups(id),
			CONSTRAINT fk_fused_group2 FOREIGN KEY (group2_id) REFERENCES student_groups(id),
			CONSTRAINT fk_fused_group3 FOREIGN KEY (group3_id) REFERENCES student_groups(id),
			CONSTRAINT fk_fused_subject FOREIGN KEY (subject_id) REFERENCES subjects(id),
			CONSTRAINT fk_fused_room FOREIGN KEY (room_id) REFERENCES rooms(id)
		)`,
		`CREATE TABLE IF NOT EXISTS loans (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			room_id BIGINT UNSIGNED NOT NULL,
			day VARCHAR(16) NOT NULL,
			starts_at TIME NOT NULL,
			ends_at TIME NOT NULL,
			reason VARCHAR(255) NOT NULL DEFAULT '',
			status ENUM('PENDING','APPROVED','REJECTED') NOT NULL DEFAULT 'PENDING',
			schedule_id BIGINT UNSIGNED NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_loan_user FOREIGN KEY (user_id) REFERENCES users(id),
			CONSTRAINT fk_loan_room FOREIGN KEY (room_id) REFERENCES rooms(id),
			CONSTRAINT fk_loan_schedule FOREIGN KEY (schedule_id) REFERENCES schedules(id) ON DELETE SET NULL
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			is_read TINYINT(1) NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT fk_notification_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("error running migrations: %w", err)
		}
	}
	return nil
}
