package db

import "errors"

// ErrNoRecords is returned when the student_records table is empty.
var ErrNoRecords = errors.New("no student records stored")
