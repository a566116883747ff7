// Package memory keeps every collection in process. It backs local development
// and the router level tests.
package memory

import "github.com/geocoder89/staffhub/internal/repo"

func NewStore() *repo.Store {
	return repo.NewStore(
		NewUsersRepo(),
		NewTasksRepo(),
		NewPayrollRepo(),
		NewPaymentsRepo(),
		NewMessagesRepo(),
		nil,
		nil,
	)
}
