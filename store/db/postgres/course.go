package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/acadassist/acadassist/store"
)

func (d *DB) GetCurrentSemester(ctx context.Context) (*store.Semester, error) {
	query := `
		SELECT semester_id, semester_name
		FROM semesters
		WHERE start_date <= CURRENT_DATE AND end_date >= CURRENT_DATE
		LIMIT 1`

	semester := &store.Semester{}
	err := d.db.QueryRowContext(ctx, query).Scan(&semester.ID, &semester.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current semester")
	}
	return semester, nil
}

// ListCurrentCourses returns the student's active enrollments in the given
// semester, ordered by course code.
func (d *DB) ListCurrentCourses(ctx context.Context, studentID, semesterID int32) ([]*store.CourseRecord, error) {
	query := `
		SELECT
			c.course_id,
			c.course_code,
			c.title,
			c.description,
			c.credit_hours,
			u.first_name || ' ' || u.last_name AS instructor_name,
			ip.office_location,
			ip.office_hours
		FROM enrollments e
		JOIN courses c ON e.course_id = c.course_id
		LEFT JOIN course_instructors ci ON c.course_id = ci.course_id
		LEFT JOIN users u ON ci.instructor_id = u.user_id
		LEFT JOIN instructor_profiles ip ON u.user_id = ip.user_id
		WHERE e.student_id = $1
		AND c.semester_id = $2
		AND e.status = 'active'
		ORDER BY c.course_code`

	rows, err := d.db.QueryContext(ctx, query, studentID, semesterID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list current courses")
	}
	defer rows.Close()

	list := []*store.CourseRecord{}
	for rows.Next() {
		course := &store.CourseRecord{}
		if err := rows.Scan(
			&course.CourseID,
			&course.CourseCode,
			&course.Title,
			&course.Description,
			&course.CreditHours,
			&course.InstructorName,
			&course.OfficeLocation,
			&course.OfficeHours,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan course")
		}
		list = append(list, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// ListStudentCourses returns every enrollment of the student across all
// semesters and statuses, most recent semester first.
func (d *DB) ListStudentCourses(ctx context.Context, studentID int32) ([]*store.CourseRecord, error) {
	query := `
		SELECT
			c.course_id,
			c.course_code,
			c.title,
			c.description,
			c.credit_hours,
			u2.first_name || ' ' || u2.last_name AS instructor_name,
			ip.office_location,
			ip.office_hours,
			e.status AS enrollment_status,
			e.enrollment_date,
			s.semester_name
		FROM enrollments e
		JOIN courses c ON e.course_id = c.course_id
		LEFT JOIN course_instructors ci ON c.course_id = ci.course_id
		LEFT JOIN users u2 ON ci.instructor_id = u2.user_id
		LEFT JOIN instructor_profiles ip ON u2.user_id = ip.user_id
		LEFT JOIN semesters s ON c.semester_id = s.semester_id
		WHERE e.student_id = $1
		ORDER BY c.semester_id DESC, c.course_code`

	rows, err := d.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list student courses")
	}
	defer rows.Close()

	list := []*store.CourseRecord{}
	for rows.Next() {
		course := &store.CourseRecord{}
		var enrollmentDate sql.NullTime
		if err := rows.Scan(
			&course.CourseID,
			&course.CourseCode,
			&course.Title,
			&course.Description,
			&course.CreditHours,
			&course.InstructorName,
			&course.OfficeLocation,
			&course.OfficeHours,
			&course.EnrollmentStatus,
			&enrollmentDate,
			&course.SemesterName,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan course")
		}
		if enrollmentDate.Valid {
			formatted := enrollmentDate.Time.Format(time.RFC3339)
			course.EnrollmentDate = &formatted
		}
		list = append(list, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// GetStudentInfo returns the aggregated student record with a concatenated
// enrolled-courses summary.
func (d *DB) GetStudentInfo(ctx context.Context, studentCode string) (*store.StudentInfo, error) {
	query := `
		SELECT
			u.user_id,
			u.username,
			u.email,
			u.first_name,
			u.last_name,
			sp.student_id,
			sp.date_of_birth,
			sp.address,
			sp.phone,
			sp.enrollment_date,
			sp.current_semester,
			STRING_AGG(
				c.course_code || ' - ' || c.title || ' (' ||
				CASE e.status
					WHEN 'active' THEN 'Currently Enrolled'
					WHEN 'completed' THEN 'Completed'
					WHEN 'dropped' THEN 'Dropped'
					ELSE e.status
				END || ')',
				', '
			) AS enrolled_courses
		FROM users u
		JOIN student_profiles sp ON u.user_id = sp.user_id
		LEFT JOIN enrollments e ON u.user_id = e.student_id
		LEFT JOIN courses c ON e.course_id = c.course_id
		WHERE sp.student_id = $1
		GROUP BY u.user_id, u.username, u.email, u.first_name, u.last_name,
			sp.student_id, sp.date_of_birth, sp.address, sp.phone,
			sp.enrollment_date, sp.current_semester`

	info := &store.StudentInfo{}
	var dateOfBirth, enrollmentDate sql.NullTime
	err := d.db.QueryRowContext(ctx, query, studentCode).Scan(
		&info.UserID,
		&info.Username,
		&info.Email,
		&info.FirstName,
		&info.LastName,
		&info.StudentCode,
		&dateOfBirth,
		&info.Address,
		&info.Phone,
		&enrollmentDate,
		&info.CurrentSemester,
		&info.EnrolledCourses,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get student info")
	}
	if dateOfBirth.Valid {
		formatted := dateOfBirth.Time.Format("2006-01-02")
		info.DateOfBirth = &formatted
	}
	if enrollmentDate.Valid {
		formatted := enrollmentDate.Time.Format("2006-01-02")
		info.EnrollmentDate = &formatted
	}
	return info, nil
}
