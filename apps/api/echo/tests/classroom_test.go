package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/user"
)

func Test_classroomApi_notes(t *testing.T) {
	setup(t)

	teacher := createUser(t, "Teach", "teach@test.cd", user.RoleTeacher, "s3cr3t")
	student := createUser(t, "Hero", "hero@test.cd", user.RoleStudent, "s3cr3t")
	staff := createUser(t, "Staff", "staff@test.cd", user.RoleStaff, "s3cr3t")
	teacherToken := getToken(t, teacher)

	session := ddb.AddSession(classroom.ClassSession{
		BatchID:   "b1",
		TeacherID: teacher.ID,
		Topic:     "Quadratic Equations",
		StartsAt:  time.Now().UTC(),
	})

	newNote := func(sessionID, fileURL string) []byte {
		return marchallObj(t, classroom.NewNote{SessionID: sessionID, FileURL: fileURL})
	}

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodPost, path: "/v1/content/notes",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Teacher required", method: http.MethodPost, path: "/v1/content/notes", token: getToken(t, student),
			body:     newNote(session.ID, "https://files.test.cd/notes.pdf"),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{
			name: "required fields", method: http.MethodPost, path: "/v1/content/notes", token: teacherToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"session_id": "this field is required", "file_url": "this field is required"}),
		},
		{
			name: "invalid file URL", method: http.MethodPost, path: "/v1/content/notes", token: teacherToken,
			body:     newNote(session.ID, "not-a-url"),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"file_url": "file_url must be a valid URL"}),
		},
		{
			name: "unknown session", method: http.MethodPost, path: "/v1/content/notes", token: teacherToken,
			body:     newNote("nope", "https://files.test.cd/notes.pdf"),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	var uploaded classroom.Note

	t.Run("Note uploaded", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/content/notes", teacherToken, newNote(session.ID, "https://files.test.cd/notes.pdf"))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusCreated)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &uploaded); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if uploaded.ID == "" {
			t.Error("failed! empty note ID")
		}
		if uploaded.TeacherID != teacher.ID {
			t.Errorf("failed! teacher_id = %v; want %v", uploaded.TeacherID, teacher.ID)
		}
	})

	notesPath := "/v1/classes/" + session.ID + "/notes"
	listTests := []httpTest{
		{name: "Teacher reads notes", token: teacherToken, wantCode: http.StatusOK, wantData: marchallList(t, uploaded)},
		{name: "Student reads notes", token: getToken(t, student), wantCode: http.StatusOK, wantData: marchallList(t, uploaded)},
		{name: "Staff not allowed", token: getToken(t, staff), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied)},
		{name: "Unknown session lists empty", path: "/v1/classes/nope/notes", token: teacherToken, wantCode: http.StatusOK, wantData: marchallList(t)},
	}
	for _, tt := range listTests {
		tt.method = http.MethodGet
		if tt.path == "" {
			tt.path = notesPath
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
