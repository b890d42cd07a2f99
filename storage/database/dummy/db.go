// Package dummydb provides in-memory repositories for tests.
package dummydb

import (
	"sync"

	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/enquiry"
	"github.com/darasahq/darasa/core/exam"
	"github.com/darasahq/darasa/core/user"
)

type (
	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	enquiryTable struct {
		sync.RWMutex
		enquiries map[string]*enquiry.Enquiry
		batches   map[string]*enquiry.Batch
	}

	classroomTable struct {
		sync.RWMutex
		sessions   map[string]*classroom.ClassSession
		notes      map[string]*classroom.Note
		attendance map[string]*classroom.Attendance
	}

	examTable struct {
		sync.RWMutex
		tests     map[string]*exam.Test
		questions map[string]*exam.Question
		attempts  map[string]*exam.TestAttempt
	}

	DB struct {
		user      *userTable
		enquiry   *enquiryTable
		classroom *classroomTable
		exam      *examTable
	}
)

func NewDB() *DB {
	return &DB{
		user: &userTable{table: make(map[string]*user.User)},
		enquiry: &enquiryTable{
			enquiries: make(map[string]*enquiry.Enquiry),
			batches:   make(map[string]*enquiry.Batch),
		},
		classroom: &classroomTable{
			sessions:   make(map[string]*classroom.ClassSession),
			notes:      make(map[string]*classroom.Note),
			attendance: make(map[string]*classroom.Attendance),
		},
		exam: &examTable{
			tests:     make(map[string]*exam.Test),
			questions: make(map[string]*exam.Question),
			attempts:  make(map[string]*exam.TestAttempt),
		},
	}
}
