package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/exam"
	"github.com/darasahq/darasa/core/user"
)

func Test_analyticsApi_sessionAttendance(t *testing.T) {
	setup(t)

	staff := createUser(t, "Staff", "staff@test.cd", user.RoleStaff, "s3cr3t")
	teacher := createUser(t, "Teach", "teach@test.cd", user.RoleTeacher, "s3cr3t")
	student := createUser(t, "Hero", "hero@test.cd", user.RoleStudent, "s3cr3t")
	staffToken := getToken(t, staff)

	session := ddb.AddSession(classroom.ClassSession{
		BatchID:   "b1",
		TeacherID: teacher.ID,
		Topic:     "Quadratic Equations",
		StartsAt:  time.Now().UTC(),
	})
	a1 := ddb.AddAttendance(classroom.Attendance{
		SessionID:  session.ID,
		StudentID:  student.ID,
		Status:     classroom.AttendancePresent,
		RecordedAt: time.Now().UTC(),
	})

	path := "/v1/analytics/sessions/" + session.ID + "/attendance"
	tests := []httpTest{
		{name: "Auth required", path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Staff required", path: path, token: getToken(t, teacher), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied)},
		{name: "Attendance listed", path: path, token: staffToken, wantCode: http.StatusOK, wantData: marchallList(t, a1)},
		{name: "Unknown session lists empty", path: "/v1/analytics/sessions/nope/attendance", token: staffToken, wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_analyticsApi_testResults(t *testing.T) {
	setup(t)

	staff := createUser(t, "Staff", "staff@test.cd", user.RoleStaff, "s3cr3t")
	teacher := createUser(t, "Teach", "teach@test.cd", user.RoleTeacher, "s3cr3t")
	student := createUser(t, "Hero", "hero@test.cd", user.RoleStudent, "s3cr3t")
	staffToken := getToken(t, staff)

	test := ddb.AddTest(exam.Test{Title: "Algebra Midterm", CreatorID: teacher.ID, Type: exam.TypeClassroom})

	// grade the student as a teacher to produce an attempt
	gradeBody := marchallObj(t, exam.Grade{Answers: map[string]interface{}{"q1": "c"}, Score: 14})
	req, rec := newAuthRequest(http.MethodPost, "/v1/tests/"+test.ID+"/grade?student_id="+student.ID, getToken(t, teacher), gradeBody)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("grading failed! code = %v", rec.Code)
	}
	graded := rec.Body.Bytes()

	path := "/v1/analytics/tests/" + test.ID + "/results"
	tests := []httpTest{
		{name: "Auth required", path: path, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Staff required", path: path, token: getToken(t, student), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied)},
		{name: "Results listed", path: path, token: staffToken, wantCode: http.StatusOK, wantData: []byte("[" + string(graded) + "]")},
		{name: "Unknown test lists empty", path: "/v1/analytics/tests/nope/results", token: staffToken, wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
