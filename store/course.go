package store

// CourseRecord is one course row in a course report. Optional fields are set
// only when the owning join (instructor assignment, instructor profile,
// semester) resolves; formatting must tolerate their absence.
type CourseRecord struct {
	CourseID         int32   `json:"course_id"`
	CourseCode       string  `json:"course_code"`
	Title            string  `json:"title"`
	Description      *string `json:"description,omitempty"`
	CreditHours      int32   `json:"credit_hours"`
	InstructorName   *string `json:"instructor_name,omitempty"`
	OfficeLocation   *string `json:"office_location,omitempty"`
	OfficeHours      *string `json:"office_hours,omitempty"`
	EnrollmentStatus *string `json:"enrollment_status,omitempty"`
	EnrollmentDate   *string `json:"enrollment_date,omitempty"`
	SemesterName     *string `json:"semester_name,omitempty"`
}
