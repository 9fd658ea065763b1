package schema

// Demo returns the built-in teaching catalog: a small student records
// model with enough type variety to exercise every semantic check
// (numeric and string columns, a float GPA for mixed-numeric
// comparisons).
func Demo() *Registry {
	reg := NewRegistry()

	students, _ := NewTable("students", []Column{
		{Name: "id", Type: TypeInteger, Size: 4},
		{Name: "name", Type: TypeString, Size: 120},
		{Name: "age", Type: TypeInteger, Size: 4},
		{Name: "gpa", Type: TypeFloat, Size: 8},
	})
	courses, _ := NewTable("courses", []Column{
		{Name: "id", Type: TypeInteger, Size: 4},
		{Name: "title", Type: TypeString, Size: 120},
		{Name: "credits", Type: TypeInteger, Size: 4},
	})
	enrollments, _ := NewTable("enrollments", []Column{
		{Name: "student_id", Type: TypeInteger, Size: 4},
		{Name: "course_id", Type: TypeInteger, Size: 4},
		{Name: "grade", Type: TypeString, Size: 2},
	})

	// The demo tables are literals with unique names; the errors
	// cannot fire.
	_ = reg.Add(students)
	_ = reg.Add(courses)
	_ = reg.Add(enrollments)
	return reg
}
