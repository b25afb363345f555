package store

// User is the account row matched by an identifier lookup.
type User struct {
	ID        int32  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    int32  `json:"role_id"`
}

// FullName returns "First Last".
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Semester is an academic term.
type Semester struct {
	ID   int32  `json:"semester_id"`
	Name string `json:"semester_name"`
}

// StudentInfo is the aggregated record served by /student-info.
type StudentInfo struct {
	UserID          int32   `json:"user_id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	StudentCode     string  `json:"student_id"`
	DateOfBirth     *string `json:"date_of_birth"`
	Address         *string `json:"address"`
	Phone           *string `json:"phone"`
	EnrollmentDate  *string `json:"enrollment_date"`
	CurrentSemester *int32  `json:"current_semester"`
	EnrolledCourses *string `json:"enrolled_courses"`
}
