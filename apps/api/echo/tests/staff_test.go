package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/darasahq/darasa/core/enquiry"
	"github.com/darasahq/darasa/core/user"
)

var errPermissionDenied = httpErr{Error: "permission denied"}

func Test_staffApi_enquiries(t *testing.T) {
	setup(t)

	staff := createUser(t, "Staff", "staff@test.cd", user.RoleStaff, "s3cr3t")
	student := createUser(t, "Hero", "hero@test.cd", user.RoleStudent, "s3cr3t")
	staffToken := getToken(t, staff)

	newEnquiry := marchallObj(t, enquiry.NewEnquiry{
		StudentName: "Jane Doe",
		ContactInfo: "jane@test.cd",
		Details:     "interested in evening classes",
	})

	// empty state
	tests := []httpTest{
		{name: "Auth required", method: http.MethodGet, path: "/v1/enquiries", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Staff required", method: http.MethodGet, path: "/v1/enquiries", token: getToken(t, student),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied),
		},
		{name: "Empty list", method: http.MethodGet, path: "/v1/enquiries", token: staffToken, wantCode: http.StatusOK, wantData: marchallList(t)},
		{
			name: "required fields", method: http.MethodPost, path: "/v1/enquiries", token: staffToken,
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"student_name": "this field is required", "contact_info": "this field is required"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	var created enquiry.Enquiry

	t.Run("Enquiry created open", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/enquiries", staffToken, newEnquiry)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusCreated)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if created.ID == "" {
			t.Error("failed! empty enquiry ID")
		}
		if created.Status != enquiry.StatusOpen {
			t.Errorf("failed! status = %v; want %v", created.Status, enquiry.StatusOpen)
		}
		if created.CreatedBy != staff.ID {
			t.Errorf("failed! created_by = %v; want %v", created.CreatedBy, staff.ID)
		}
		if created.ScheduledDemoAt.Valid {
			t.Error("failed! scheduled_demo_at should not be set")
		}
	})

	t.Run("Enquiry listed", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, created)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/enquiries", staffToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	demoAt := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	scheduleBody := marchallObj(t, enquiry.DemoSchedule{ScheduledDemoAt: demoAt})

	t.Run("Schedule unknown enquiry", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}
		req, rec := newAuthRequest(http.MethodPut, "/v1/enquiries/nope/schedule", staffToken, scheduleBody)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Demo scheduled", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/enquiries/"+created.ID+"/schedule", staffToken, scheduleBody)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var enq enquiry.Enquiry
		if err := json.Unmarshal(rec.Body.Bytes(), &enq); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if enq.Status != enquiry.StatusScheduled {
			t.Errorf("failed! status = %v; want %v", enq.Status, enquiry.StatusScheduled)
		}
		if !enq.ScheduledDemoAt.Valid || !enq.ScheduledDemoAt.Time.Equal(demoAt) {
			t.Errorf("failed! scheduled_demo_at = %v; want %v", enq.ScheduledDemoAt, demoAt)
		}
	})

	t.Run("Re-schedule overwrites", func(t *testing.T) {
		newDemoAt := demoAt.Add(24 * time.Hour)
		body := marchallObj(t, enquiry.DemoSchedule{ScheduledDemoAt: newDemoAt})
		req, rec := newAuthRequest(http.MethodPut, "/v1/enquiries/"+created.ID+"/schedule", staffToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var enq enquiry.Enquiry
		if err := json.Unmarshal(rec.Body.Bytes(), &enq); err != nil {
			t.Fatalf("json.Unmarshal(): %v", err)
		}
		if !enq.ScheduledDemoAt.Valid || !enq.ScheduledDemoAt.Time.Equal(newDemoAt) {
			t.Errorf("failed! scheduled_demo_at = %v; want %v", enq.ScheduledDemoAt, newDemoAt)
		}
	})
}

func Test_staffApi_batches(t *testing.T) {
	setup(t)

	staff := createUser(t, "Staff", "staff@test.cd", user.RoleStaff, "s3cr3t")
	teacher := createUser(t, "Teach", "teach@test.cd", user.RoleTeacher, "s3cr3t")
	staffToken := getToken(t, staff)

	b1 := ddb.AddBatch(enquiry.Batch{Name: "Algebra Evening", Status: enquiry.BatchStatusActive})
	b2 := ddb.AddBatch(enquiry.Batch{Name: "Physics Morning"})

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Staff required", token: getToken(t, teacher), wantCode: http.StatusForbidden, wantData: marchallObj(t, errPermissionDenied)},
		{name: "Batches listed", token: staffToken, wantCode: http.StatusOK, wantData: marchallList(t, b1, b2)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/batches"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
