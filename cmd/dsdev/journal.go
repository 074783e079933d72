package main

import (
	"github.com/dsetlabs/dset/internal/db"
	"github.com/dsetlabs/dset/internal/journal"
)

// recordedRun opens the journal and begins an entry for operation. The
// returned finish func records the outcome; it swallows journal errors
// so bookkeeping never masks the operation's own result.
func recordedRun(operation string) (finish func(status, detail string), err error) {
	dbConn, err := db.InitDB()
	if err != nil {
		return nil, err
	}
	repo := journal.NewRepository(dbConn)
	id, err := repo.Begin(operation)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	return func(status, detail string) {
		_ = repo.Finish(id, status, detail)
		_ = repo.Close()
	}, nil
}
