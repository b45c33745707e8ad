package client

import (
	"context"
	"strconv"

	"github.com/fivetwenty-io/sonarqube-client/internal/constants"
	"github.com/fivetwenty-io/sonarqube-client/internal/http"
	"github.com/fivetwenty-io/sonarqube-client/pkg/sonarqube"
)

// fetchAll follows the paging envelope of e until every item has been read.
// The first request leaves p and ps to the server defaults; later requests
// ask for pageIndex+1 with the page size the server reported.
func fetchAll[T any](ctx context.Context, httpClient *http.Client, e endpoint, vars params) ([]T, error) {
	items := []T{}
	pageVars := vars
	requested := 1

	for {
		resp, err := call(ctx, httpClient, e, pageVars)
		if err != nil {
			return nil, err
		}

		page, err := decode[sonarqube.PaginatedResponse[T]](resp)
		if err != nil {
			return nil, err
		}

		if page == nil {
			return items, nil
		}

		items = append(items, page.Components...)

		// A server that ignores p would otherwise be polled forever.
		if !page.Paging.HasNext() || page.Paging.PageIndex < requested {
			return items, nil
		}

		requested = page.Paging.PageIndex + 1
		pageVars = vars.
			with(constants.QueryParamPage, strconv.Itoa(requested)).
			with(constants.QueryParamPageSize, strconv.Itoa(page.Paging.PageSize))
	}
}
