package data

// Feature names of the classroom dataset.
const (
	Attendance        = "Attendance (%)"
	StudyHours        = "Study Hours/Week"
	AttentionSpan     = "Attention Span (%)"
	FinalGrade        = "Final Grade"
	FinalGradeEncoded = "Final Grade Encoded"
)

// GradeEncoding orders the letter grades of the classroom dataset.
var GradeEncoding = map[string]int{"C-": 1, "B-": 2, "B+": 3, "A+": 4}

// Students returns the four-student classroom dataset, labelled A to D.
// Every feature increases from A to D.
func Students() *FeatureTable {
	t, err := NewFeatureTable(
		[]string{Attendance, StudyHours, AttentionSpan},
		[][]float64{
			{40, 2, 45},
			{55, 4, 55},
			{60, 6, 70},
			{85, 8, 80},
		},
		[]string{"A", "B", "C", "D"},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// StudentGrades returns the final grade of each student in Students order.
// Grades are metadata and never a PCA input.
func StudentGrades() []string {
	return []string{"C-", "B-", "B+", "A+"}
}
