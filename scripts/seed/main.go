// Command seed creates the portal schema and loads the demo dataset
// used by the mobile client during development.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/northside-portal/portal-api/pkg/config"
	"github.com/northside-portal/portal-api/pkg/database"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
        id UUID PRIMARY KEY,
        username TEXT NOT NULL UNIQUE,
        password_hash TEXT NOT NULL,
        name TEXT NOT NULL,
        role TEXT NOT NULL DEFAULT 'student',
        last_login TIMESTAMPTZ,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS student_info (
        user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
        first_name TEXT NOT NULL,
        last_name TEXT NOT NULL,
        middle_initial TEXT,
        student_number TEXT,
        grade_level TEXT,
        dob DATE,
        school TEXT,
        profile_pic_url TEXT
    )`,
	`CREATE TABLE IF NOT EXISTS flex_periods (
        id UUID PRIMARY KEY,
        name TEXT NOT NULL,
        status TEXT NOT NULL DEFAULT 'upcoming',
        version BIGINT NOT NULL DEFAULT 0,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS flex_options (
        id UUID PRIMARY KEY,
        period_id UUID NOT NULL REFERENCES flex_periods(id) ON DELETE CASCADE,
        title TEXT NOT NULL,
        room TEXT NOT NULL,
        teacher TEXT NOT NULL,
        capacity INT NOT NULL,
        position INT NOT NULL DEFAULT 0
    )`,
	`CREATE TABLE IF NOT EXISTS flex_enrollments (
        period_id UUID NOT NULL REFERENCES flex_periods(id) ON DELETE CASCADE,
        option_id UUID NOT NULL REFERENCES flex_options(id) ON DELETE CASCADE,
        student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        PRIMARY KEY (period_id, student_id)
    )`,
	`CREATE TABLE IF NOT EXISTS articles (
        id UUID PRIMARY KEY,
        slug TEXT NOT NULL UNIQUE,
        title TEXT NOT NULL,
        author TEXT NOT NULL,
        date TIMESTAMPTZ NOT NULL,
        image TEXT,
        content TEXT NOT NULL,
        tag TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS events (
        id UUID PRIMARY KEY,
        title TEXT NOT NULL,
        date TIMESTAMPTZ NOT NULL,
        time TEXT NOT NULL DEFAULT '',
        location TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS grades (
        id UUID PRIMARY KEY,
        student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        course TEXT NOT NULL,
        teacher TEXT NOT NULL,
        grade TEXT NOT NULL,
        letter_grade TEXT NOT NULL,
        is_failing BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS grade_categories (
        id UUID PRIMARY KEY,
        grade_id UUID NOT NULL REFERENCES grades(id) ON DELETE CASCADE,
        name TEXT NOT NULL,
        percentage NUMERIC NOT NULL,
        score TEXT NOT NULL DEFAULT ''
    )`,
	`CREATE TABLE IF NOT EXISTS grade_assignments (
        id UUID PRIMARY KEY,
        grade_id UUID NOT NULL REFERENCES grades(id) ON DELETE CASCADE,
        name TEXT NOT NULL,
        category TEXT NOT NULL,
        due_date DATE,
        score TEXT NOT NULL DEFAULT ''
    )`,
	`CREATE TABLE IF NOT EXISTS attendance (
        id UUID PRIMARY KEY,
        student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        date TIMESTAMPTZ NOT NULL,
        status TEXT NOT NULL,
        course TEXT NOT NULL DEFAULT '',
        teacher TEXT NOT NULL DEFAULT '',
        time TEXT NOT NULL DEFAULT '',
        details TEXT NOT NULL DEFAULT '',
        excused BOOLEAN NOT NULL DEFAULT FALSE,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS schedule_entries (
        id UUID PRIMARY KEY,
        student_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        course TEXT NOT NULL,
        teacher TEXT NOT NULL,
        room TEXT NOT NULL,
        start_time TEXT NOT NULL,
        end_time TEXT NOT NULL,
        position INT NOT NULL DEFAULT 0
    )`,
}

var truncate = `TRUNCATE users, student_info, flex_periods, flex_options, flex_enrollments,
    articles, events, grades, grade_categories, grade_assignments, attendance, schedule_entries CASCADE`

func main() {
	var reset bool
	flag.BoolVar(&reset, "reset", true, "truncate existing data before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("failed to create schema: %v", err)
		}
	}
	log.Println("schema ready")

	if reset {
		if _, err := db.ExecContext(ctx, truncate); err != nil {
			log.Fatalf("failed to clear existing data: %v", err)
		}
		log.Println("existing data cleared")
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		log.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback() //nolint:errcheck

	studentID, err := seedUsers(ctx, tx)
	if err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	if err := seedGrades(ctx, tx, studentID); err != nil {
		log.Fatalf("failed to seed grades: %v", err)
	}
	if err := seedEvents(ctx, tx); err != nil {
		log.Fatalf("failed to seed events: %v", err)
	}
	if err := seedArticles(ctx, tx); err != nil {
		log.Fatalf("failed to seed articles: %v", err)
	}
	if err := seedFlexes(ctx, tx); err != nil {
		log.Fatalf("failed to seed flex periods: %v", err)
	}
	if err := seedAttendance(ctx, tx, studentID); err != nil {
		log.Fatalf("failed to seed attendance: %v", err)
	}
	if err := seedSchedule(ctx, tx, studentID); err != nil {
		log.Fatalf("failed to seed schedule: %v", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("failed to commit: %v", err)
	}
	log.Println("database seeded successfully")
}

func seedUsers(ctx context.Context, tx *sqlx.Tx) (string, error) {
	studentID := uuid.NewString()
	adminID := uuid.NewString()

	studentHash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	const insertUser = `INSERT INTO users (id, username, password_hash, name, role)
        VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertUser, studentID, "student", string(studentHash), "John", "student"); err != nil {
		return "", err
	}
	if _, err := tx.ExecContext(ctx, insertUser, adminID, "admin", string(adminHash), "Admin", "admin"); err != nil {
		return "", err
	}

	const insertInfo = `INSERT INTO student_info (user_id, first_name, last_name, middle_initial,
        student_number, grade_level, dob, school, profile_pic_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	dob := time.Date(2009, time.January, 28, 0, 0, 0, 0, time.UTC)
	if _, err := tx.ExecContext(ctx, insertInfo, studentID, "John", "Appleseed", "J",
		"1234567", "Sophomore", dob, "Northside Prep", nil); err != nil {
		return "", err
	}

	log.Println("users created: student, admin")
	return studentID, nil
}

type gradeSeed struct {
	course      string
	teacher     string
	grade       string
	letterGrade string
	isFailing   bool
	categories  []categorySeed
	assignments []assignmentSeed
}

type categorySeed struct {
	name       string
	percentage float64
	score      string
}

type assignmentSeed struct {
	name     string
	category string
	dueDate  time.Time
	score    string
}

func seedGrades(ctx context.Context, tx *sqlx.Tx, studentID string) error {
	day := func(m time.Month, d int) time.Time {
		return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
	}
	grades := []gradeSeed{
		{
			course: "HS1 Algebra 1", teacher: "Dr. Stanley", grade: "98", letterGrade: "A",
			categories: []categorySeed{
				{"Summative", 99, "A+"},
				{"Formative", 95, "A"},
				{"Homework", 100, "A+"},
			},
			assignments: []assignmentSeed{
				{"Ch 1 Test", "Summative", day(time.July, 25), "95/100"},
				{"Lab 1", "Formative", day(time.July, 20), "8/10"},
			},
		},
		{
			course: "HS1 US History", teacher: "Mr. Porter", grade: "85.5", letterGrade: "B",
			categories: []categorySeed{
				{"Summative", 88, "B+"},
				{"Formative", 80, "B-"},
				{"Participation", 90, "A-"},
			},
			assignments: []assignmentSeed{
				{"Civil War Essay", "Summative", day(time.July, 15), "88/100"},
				{"Constitution Quiz", "Formative", day(time.July, 10), "80/100"},
			},
		},
		{
			course: "HS1 AP Lang", teacher: "Mrs. Franklin", grade: "91.7", letterGrade: "A-",
			categories: []categorySeed{
				{"Essays", 90, "A-"},
				{"MC Tests", 94, "A"},
				{"Classwork", 92, "A-"},
			},
			assignments: []assignmentSeed{
				{"Rhetoric Analysis", "Essays", day(time.July, 18), "90/100"},
				{"Vocabulary Quiz", "MC Tests", day(time.July, 12), "94/100"},
			},
		},
		{
			course: "HS1 Physics", teacher: "Dr. George", grade: "93.2", letterGrade: "A",
			categories: []categorySeed{
				{"Labs", 95, ""},
				{"Tests", 92, ""},
			},
			assignments: []assignmentSeed{
				{"Motion Lab", "Labs", day(time.July, 22), "95/100"},
				{"Newton's Laws Test", "Tests", day(time.July, 17), "92/100"},
			},
		},
		{
			course: "HS1 Physical Education", teacher: "Coach Davis", grade: "100", letterGrade: "A+",
			categories: []categorySeed{
				{"Participation", 100, ""},
			},
			assignments: []assignmentSeed{
				{"Fitness Test", "Participation", day(time.July, 14), "100/100"},
			},
		},
		{
			course: "HS1 Colloquium", teacher: "Mr. Phillips", grade: "89", letterGrade: "B+",
			categories: []categorySeed{
				{"Presentations", 90, ""},
				{"Reflections", 88, ""},
			},
			assignments: []assignmentSeed{
				{"Group Presentation", "Presentations", day(time.July, 11), "90/100"},
				{"Weekly Reflection", "Reflections", day(time.July, 8), "88/100"},
			},
		},
		{
			course: "HS1 Art 1", teacher: "Ms. Wang", grade: "72", letterGrade: "C-", isFailing: true,
			categories: []categorySeed{
				{"Projects", 70, "C-"},
				{"Sketchbook", 75, "C"},
			},
			assignments: []assignmentSeed{
				{"Self Portrait", "Projects", day(time.July, 19), "70/100"},
				{"Perspective Drawing", "Sketchbook", day(time.July, 16), "75/100"},
			},
		},
	}

	const insertGrade = `INSERT INTO grades (id, student_id, course, teacher, grade, letter_grade, is_failing)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	const insertCategory = `INSERT INTO grade_categories (id, grade_id, name, percentage, score)
        VALUES ($1, $2, $3, $4, $5)`
	const insertAssignment = `INSERT INTO grade_assignments (id, grade_id, name, category, due_date, score)
        VALUES ($1, $2, $3, $4, $5, $6)`

	for _, g := range grades {
		gradeID := uuid.NewString()
		if _, err := tx.ExecContext(ctx, insertGrade, gradeID, studentID,
			g.course, g.teacher, g.grade, g.letterGrade, g.isFailing); err != nil {
			return err
		}
		for _, c := range g.categories {
			if _, err := tx.ExecContext(ctx, insertCategory, uuid.NewString(), gradeID,
				c.name, c.percentage, c.score); err != nil {
				return err
			}
		}
		for _, a := range g.assignments {
			if _, err := tx.ExecContext(ctx, insertAssignment, uuid.NewString(), gradeID,
				a.name, a.category, a.dueDate, a.score); err != nil {
				return err
			}
		}
	}

	log.Printf("grades created: %d courses", len(grades))
	return nil
}

func seedEvents(ctx context.Context, tx *sqlx.Tx) error {
	today := time.Now().Truncate(24 * time.Hour)
	events := []struct {
		title       string
		date        time.Time
		time        string
		location    string
		description string
	}{
		{"School Play Rehearsal", today, "3:00 PM - 5:00 PM", "Auditorium", "Rehearsal for the upcoming spring musical"},
		{"Chess Club Meeting", today, "3:15 PM", "Library", "Weekly chess club meeting"},
		{"Parent-Teacher Conference", today.AddDate(0, 0, 7), "4:00 PM - 7:00 PM", "Main Hall", "Spring semester parent-teacher conferences"},
		{"Science Fair", today.AddDate(0, 0, 14), "9:00 AM - 3:00 PM", "Gymnasium", "Annual science fair exhibition"},
	}

	const insert = `INSERT INTO events (id, title, date, time, location, description)
        VALUES ($1, $2, $3, $4, $5, $6)`
	for _, e := range events {
		if _, err := tx.ExecContext(ctx, insert, uuid.NewString(),
			e.title, e.date, e.time, e.location, e.description); err != nil {
			return err
		}
	}

	log.Printf("events created: %d", len(events))
	return nil
}

func seedArticles(ctx context.Context, tx *sqlx.Tx) error {
	day := func(d int) time.Time {
		return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
	}
	articles := []struct {
		slug    string
		title   string
		author  string
		date    time.Time
		image   string
		content string
		tag     string
	}{
		{"building-damage-insights", "Building Damage Insights from the Principal", "Dr. Weissman", day(18),
			"/api/placeholder/400/200", "<p>Detailed content about the recent building damage...</p><p>Further paragraphs go here.</p>", "HEADLINE"},
		{"gym-flooding", "Flooding hits the new gymnasium", "Campus News", day(17),
			"/api/placeholder/100/100", "<p>Details about the gym flooding incident...</p>", "TRENDING"},
		{"pool-sharks", "SHARKS!? In new swimming pool", "Satire Dept.", day(16),
			"/api/placeholder/100/100", "<p>Okay, not real sharks, but...</p>", "TRENDING"},
		{"spring-musical", "The Spring Musical announcement", "Arts Dept.", day(15),
			"/api/placeholder/100/100", "<p>This year's spring musical will be...</p>", "TRENDING"},
		{"kahoot-reward-8", "What's a Kahoot Worth 8 ratio completion reward?", "Academics", day(15),
			"", "<p>Details about the Kahoot rewards...</p>", "NEWS"},
		{"kahoot-reward-6", "What's a Kahoot Worth 6 ratio completion reward?", "Academics", day(14),
			"", "<p>More details about Kahoot...</p>", "NEWS"},
		{"kahoot-reward-9", "What's a Kahoot Worth 9 ratio completion reward?", "Academics", day(13),
			"", "<p>Even more details...</p>", "NEWS"},
	}

	const insert = `INSERT INTO articles (id, slug, title, author, date, image, content, tag)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`
	for _, a := range articles {
		if _, err := tx.ExecContext(ctx, insert, uuid.NewString(),
			a.slug, a.title, a.author, a.date, a.image, a.content, a.tag); err != nil {
			return err
		}
	}

	log.Printf("articles created: %d", len(articles))
	return nil
}

func seedFlexes(ctx context.Context, tx *sqlx.Tx) error {
	type optionSeed struct {
		title    string
		room     string
		teacher  string
		capacity int
	}
	periods := []struct {
		name    string
		status  string
		options []optionSeed
	}{
		{
			name: "Flex 2", status: "available",
			options: []optionSeed{
				{"Study Hall", "Room 201", "Ms. Johnson", 30},
				{"Math Help", "Room 103", "Mr. Smith", 20},
				{"Science Lab", "Room 305", "Dr. Miller", 15},
				{"Chess Club", "Library", "Mr. Thompson", 12},
			},
		},
		{
			name: "Flex 3", status: "available",
			options: []optionSeed{
				{"Quiet Study", "Room 101", "Mr. Lee", 25},
			},
		},
		{name: "Flex 4", status: "upcoming"},
	}

	const insertPeriod = `INSERT INTO flex_periods (id, name, status) VALUES ($1, $2, $3)`
	const insertOption = `INSERT INTO flex_options (id, period_id, title, room, teacher, capacity, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, p := range periods {
		periodID := uuid.NewString()
		if _, err := tx.ExecContext(ctx, insertPeriod, periodID, p.name, p.status); err != nil {
			return err
		}
		for i, o := range p.options {
			if _, err := tx.ExecContext(ctx, insertOption, uuid.NewString(), periodID,
				o.title, o.room, o.teacher, o.capacity, i); err != nil {
				return err
			}
		}
	}

	log.Printf("flex periods created: %d", len(periods))
	return nil
}

func seedAttendance(ctx context.Context, tx *sqlx.Tx, studentID string) error {
	type record struct {
		date    time.Time
		status  string
		course  string
		teacher string
		time    string
		details string
		excused bool
	}
	records := []record{
		{time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), "tardy", "HS1 Algebra", "Dr. George",
			"8:05 AM", "Arrived 5 minutes late.", false},
		{time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), "tardy", "HS1 Physics", "Dr. George",
			"9:10 AM", "Arrived 10 minutes late, missed quiz instructions.", false},
		{time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), "absent", "HS1 US History", "Mr. Porter",
			"", "Full day absence", true},
		{time.Date(2024, time.April, 10, 0, 0, 0, 0, time.UTC), "absent", "HS1 AP Lang", "Mrs. Franklin",
			"", "Full day absence", false},
	}
	for d := 1; d <= 31; d++ {
		if d == 15 {
			continue
		}
		records = append(records, record{
			date: time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC), status: "present",
			course: "All courses", teacher: "Multiple",
		})
	}

	const insert = `INSERT INTO attendance (id, student_id, date, status, course, teacher, time, details, excused)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, r := range records {
		if _, err := tx.ExecContext(ctx, insert, uuid.NewString(), studentID,
			r.date, r.status, r.course, r.teacher, r.time, r.details, r.excused); err != nil {
			return err
		}
	}

	log.Printf("attendance records created: %d", len(records))
	return nil
}

func seedSchedule(ctx context.Context, tx *sqlx.Tx, studentID string) error {
	entries := []struct {
		course  string
		teacher string
		room    string
		start   string
		end     string
	}{
		{"HS1 Algebra 1", "Dr. Stanley", "Room 210", "8:00 AM", "8:50 AM"},
		{"HS1 US History", "Mr. Porter", "Room 114", "9:00 AM", "9:50 AM"},
		{"HS1 AP Lang", "Mrs. Franklin", "Room 302", "10:00 AM", "10:50 AM"},
		{"HS1 Physics", "Dr. George", "Room 305", "11:00 AM", "11:50 AM"},
		{"HS1 Physical Education", "Coach Davis", "Gymnasium", "12:40 PM", "1:30 PM"},
		{"HS1 Colloquium", "Mr. Phillips", "Room 120", "1:40 PM", "2:30 PM"},
		{"HS1 Art 1", "Ms. Wang", "Room 008", "2:40 PM", "3:30 PM"},
	}

	const insert = `INSERT INTO schedule_entries (id, student_id, course, teacher, room, start_time, end_time, position)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, e := range entries {
		if _, err := tx.ExecContext(ctx, insert, uuid.NewString(), studentID,
			e.course, e.teacher, e.room, e.start, e.end, i); err != nil {
			return err
		}
	}

	log.Printf("schedule entries created: %d", len(entries))
	return nil
}
