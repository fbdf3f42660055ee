package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"gradely/internal/classes"
	"gradely/internal/grades"
	"gradely/internal/shared/config"
	"gradely/internal/shared/database"
	"gradely/internal/students"
	"gradely/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Gradely Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"grades",
		"classes",
		"students",
		"role_permissions",
		"user_roles",
		"permissions",
		"roles",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	roleIDs, err := s.SeedRoles()
	if err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	if err := s.SeedPermissions(roleIDs); err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}

	studentIDs, err := s.SeedStudents()
	if err != nil {
		return fmt.Errorf("failed to seed students: %w", err)
	}

	userIDs, err := s.SeedUsers(roleIDs, studentIDs)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	classIDs, err := s.SeedClasses(userIDs["teacher"])
	if err != nil {
		return fmt.Errorf("failed to seed classes: %w", err)
	}

	if err := s.SeedGrades(studentIDs, classIDs, userIDs["teacher"]); err != nil {
		return fmt.Errorf("failed to seed grades: %w", err)
	}

	// Clear Redis so stale deny-list and rate-limit state never survives
	// a reseed
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedRoles creates the four enforced roles
func (s *Seeder) SeedRoles() (map[string]uuid.UUID, error) {
	fmt.Println("  🔑 Seeding roles...")

	roleIDs := make(map[string]uuid.UUID)

	rolesData := []struct {
		name        users.RoleName
		description string
	}{
		{users.RoleAdmin, "Full administrative access"},
		{users.RoleTeacher, "Manage classes and record grades"},
		{users.RoleStudent, "View own academic records"},
		{users.RoleUser, "Default role with basic access"},
	}

	for _, roleData := range rolesData {
		role := users.Role{
			ID:          uuid.New(),
			Name:        roleData.name.String(),
			Description: roleData.description,
		}

		if err := s.db.PostgreSQL.Create(&role).Error; err != nil {
			return nil, fmt.Errorf("failed to create role %s: %w", role.Name, err)
		}

		roleIDs[role.Name] = role.ID
		fmt.Printf("    ✅ Created role: %s\n", role.Name)
	}

	return roleIDs, nil
}

// SeedPermissions creates permissions and links them to roles
func (s *Seeder) SeedPermissions(roleIDs map[string]uuid.UUID) error {
	fmt.Println("  🛂 Seeding permissions...")

	permissionsData := []struct {
		code        string
		description string
		roles       []users.RoleName
	}{
		{"users:manage", "Manage user accounts and roles", []users.RoleName{users.RoleAdmin}},
		{"records:read", "Read students, classes and grades", []users.RoleName{users.RoleAdmin, users.RoleTeacher, users.RoleStudent, users.RoleUser}},
		{"records:write", "Create and update students, classes and grades", []users.RoleName{users.RoleAdmin, users.RoleTeacher}},
		{"grades:write", "Record and update grades", []users.RoleName{users.RoleAdmin, users.RoleTeacher}},
	}

	for _, permData := range permissionsData {
		permission := users.Permission{
			ID:          uuid.New(),
			Code:        permData.code,
			Description: permData.description,
		}

		if err := s.db.PostgreSQL.Create(&permission).Error; err != nil {
			return fmt.Errorf("failed to create permission %s: %w", permission.Code, err)
		}

		for _, roleName := range permData.roles {
			link := users.RolePermission{
				ID:           uuid.New(),
				RoleID:       roleIDs[roleName.String()],
				PermissionID: permission.ID,
				Active:       true,
			}
			if err := s.db.PostgreSQL.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link permission %s to role %s: %w", permission.Code, roleName, err)
			}
		}

		fmt.Printf("    ✅ Created permission: %s\n", permission.Code)
	}

	return nil
}

// SeedStudents creates student records
func (s *Seeder) SeedStudents() (map[string]uuid.UUID, error) {
	fmt.Println("  🎓 Seeding students...")

	studentIDs := make(map[string]uuid.UUID)

	studentsData := []struct {
		key              string
		enrollmentNumber string
		fullName         string
		email            string
	}{
		{"student1", "ENR-2026-001", "Ana Silva", "ana.silva@school.edu"},
		{"student2", "ENR-2026-002", "Bruno Costa", "bruno.costa@school.edu"},
		{"student3", "ENR-2026-003", "Carla Mendes", "carla.mendes@school.edu"},
	}

	for _, studentData := range studentsData {
		student := students.Student{
			ID:               uuid.New(),
			EnrollmentNumber: studentData.enrollmentNumber,
			FullName:         studentData.fullName,
			Email:            studentData.email,
			EnrolledAt:       time.Now(),
			Active:           true,
		}

		if err := s.db.PostgreSQL.Create(&student).Error; err != nil {
			return nil, fmt.Errorf("failed to create student %s: %w", studentData.email, err)
		}

		studentIDs[studentData.key] = student.ID
		fmt.Printf("    ✅ Created student: %s (%s)\n", student.FullName, student.EnrollmentNumber)
	}

	return studentIDs, nil
}

// SeedUsers creates one user per role and assigns the roles
func (s *Seeder) SeedUsers(roleIDs map[string]uuid.UUID, studentIDs map[string]uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	studentID := studentIDs["student1"]

	usersData := []struct {
		key       string
		username  string
		fullName  string
		email     string
		role      users.RoleName
		studentID *uuid.UUID
	}{
		{"admin", "admin", "Admin User", "admin@school.edu", users.RoleAdmin, nil},
		{"teacher", "prof.oliveira", "Diego Oliveira", "diego.oliveira@school.edu", users.RoleTeacher, nil},
		{"student", "ana.silva", "Ana Silva", "ana.silva@school.edu", users.RoleStudent, &studentID},
		{"user", "guest", "Guest Account", "guest@school.edu", users.RoleUser, nil},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			Username:  userData.username,
			Email:     userData.email,
			FullName:  userData.fullName,
			Password:  string(hashedPassword),
			Active:    true,
			StudentID: userData.studentID,
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		assignment := users.UserRole{
			ID:     uuid.New(),
			UserID: user.ID,
			RoleID: roleIDs[userData.role.String()],
		}
		if err := s.db.PostgreSQL.Create(&assignment).Error; err != nil {
			return nil, fmt.Errorf("failed to assign role %s to %s: %w", userData.role, user.Username, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Username, userData.role)
	}

	return userIDs, nil
}

// SeedClasses creates classes taught by the seeded teacher
func (s *Seeder) SeedClasses(teacherUserID uuid.UUID) (map[string]uuid.UUID, error) {
	fmt.Println("  🏫 Seeding classes...")

	classIDs := make(map[string]uuid.UUID)

	classesData := []struct {
		key     string
		code    string
		name    string
		subject string
		room    string
	}{
		{"math", "MATH-101", "Algebra I", "Mathematics", "A-204"},
		{"history", "HIST-101", "World History", "History", "B-101"},
		{"physics", "PHYS-201", "Mechanics", "Physics", "Lab-2"},
	}

	for _, classData := range classesData {
		class := classes.Class{
			ID:        uuid.New(),
			Code:      classData.code,
			Name:      classData.name,
			Subject:   classData.subject,
			Term:      "2026-1",
			TeacherID: &teacherUserID,
			Room:      classData.room,
			Capacity:  30,
			Active:    true,
		}

		if err := s.db.PostgreSQL.Create(&class).Error; err != nil {
			return nil, fmt.Errorf("failed to create class %s: %w", classData.code, err)
		}

		classIDs[classData.key] = class.ID
		fmt.Printf("    ✅ Created class: %s (%s)\n", class.Name, class.Code)
	}

	return classIDs, nil
}

// SeedGrades records sample grades for the seeded students
func (s *Seeder) SeedGrades(studentIDs, classIDs map[string]uuid.UUID, graderID uuid.UUID) error {
	fmt.Println("  📝 Seeding grades...")

	gradesData := []struct {
		student string
		class   string
		score   float64
	}{
		{"student1", "math", 92.5},
		{"student1", "history", 85.0},
		{"student2", "math", 78.0},
		{"student2", "physics", 64.5},
		{"student3", "history", 55.0},
	}

	for _, gradeData := range gradesData {
		grade := grades.Grade{
			ID:        uuid.New(),
			StudentID: studentIDs[gradeData.student],
			ClassID:   classIDs[gradeData.class],
			Term:      "2026-1",
			Score:     gradeData.score,
			Letter:    grades.LetterFor(gradeData.score),
			GradedBy:  graderID,
		}

		if err := s.db.PostgreSQL.Create(&grade).Error; err != nil {
			return fmt.Errorf("failed to create grade for %s in %s: %w", gradeData.student, gradeData.class, err)
		}

		fmt.Printf("    ✅ Recorded grade: %s -> %s (%.1f %s)\n",
			gradeData.student, gradeData.class, grade.Score, grade.Letter)
	}

	return nil
}
