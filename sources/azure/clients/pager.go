package clients

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Pager is a generic interface for paging through Azure API results.
// T represents the response type returned by NextPage.
type Pager[T any] interface {
	More() bool
	NextPage(ctx context.Context) (T, error)
}

// FirstPage reads only the first page of a pager. Continuation pages are not
// followed; when the service reports more, that is logged with what.
func FirstPage[T any](ctx context.Context, pager Pager[T], what string) (T, error) {
	var page T
	if !pager.More() {
		return page, nil
	}

	page, err := pager.NextPage(ctx)
	if err != nil {
		return page, err
	}

	if pager.More() {
		log.WithContext(ctx).WithField("ovm.azure.collection", what).Warn("Management API returned more pages than were read")
	}

	return page, nil
}
